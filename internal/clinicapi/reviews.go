package clinicapi

import (
	"context"
	"net/http"
	"net/url"

	"clinic-admin/internal/domain"
)

const reviewsPath = "/api/admin/reviews"

// ListReviews lista las reseñas; status vacío significa todas.
func (c *Client) ListReviews(ctx context.Context, token, status string) ([]domain.Review, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}
	var out []domain.Review
	err := c.do(ctx, request{method: http.MethodGet, path: reviewsPath, endpoint: "reviews.list", token: token, query: query}, &out)
	return out, err
}

func (c *Client) UpdateReviewStatus(ctx context.Context, token string, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, request{method: http.MethodPut, path: idPath(reviewsPath, id) + "/status", endpoint: "reviews.status", token: token, body: body}, nil)
}

func (c *Client) DeleteReview(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath(reviewsPath, id), endpoint: "reviews.delete", token: token}, nil)
}
