package clinicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"clinic-admin/internal/domain"
)

const statisticsPath = "/api/admin/statistics"

func (c *Client) GeneralStatistics(ctx context.Context, token string) (domain.GeneralStats, error) {
	var out domain.GeneralStats
	err := c.do(ctx, request{method: http.MethodGet, path: statisticsPath + "/general", endpoint: "statistics.general", token: token}, &out)
	return out, err
}

// AppointmentAnalytics devuelve la serie de citas agrupada por period.
func (c *Client) AppointmentAnalytics(ctx context.Context, token, period string) ([]domain.AppointmentAnalyticsRow, error) {
	var out struct {
		Data []map[string]json.RawMessage `json:"data"`
	}
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     statisticsPath + "/appointments",
		endpoint: "statistics.appointments",
		token:    token,
		query:    url.Values{"period": {period}},
	}, &out)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AppointmentAnalyticsRow, 0, len(out.Data))
	for _, raw := range out.Data {
		row := domain.AppointmentAnalyticsRow{Label: rawLabel(raw[period])}
		for key, dst := range map[string]*domain.Number{
			"count":     &row.Count,
			"completed": &row.Completed,
			"cancelled": &row.Cancelled,
		} {
			if v, ok := raw[key]; ok {
				if err := dst.UnmarshalJSON(v); err != nil {
					return nil, fmt.Errorf("decode statistics.appointments %s: %w", key, err)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) DoctorPerformance(ctx context.Context, token string) ([]domain.DoctorPerformance, error) {
	var out []domain.DoctorPerformance
	err := c.do(ctx, request{method: http.MethodGet, path: statisticsPath + "/doctors", endpoint: "statistics.doctors", token: token}, &out)
	return out, err
}

func (c *Client) PopularSpecialties(ctx context.Context, token string) ([]domain.PopularSpecialty, error) {
	var out []domain.PopularSpecialty
	err := c.do(ctx, request{method: http.MethodGet, path: statisticsPath + "/specialties", endpoint: "statistics.specialties", token: token}, &out)
	return out, err
}

// rawLabel acepta etiquetas de periodo como string o como número (p. ej. el año).
func rawLabel(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
