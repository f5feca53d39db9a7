package domain

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

var ReviewStatuses = []string{ReviewPending, ReviewApproved, ReviewRejected}

type Review struct {
	ID        int64     `json:"id"`
	Rating    Number    `json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt Timestamp `json:"createdAt"`
	Patient   *Person   `json:"Patient,omitempty"`
	Doctor    *Person   `json:"Doctor,omitempty"`
}

// IsReviewStatus indica si status es un estado de reseña reconocido.
func IsReviewStatus(status string) bool {
	for _, s := range ReviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}
