package clinicapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic-admin/internal/clinicapi/clinicapitest"
	"clinic-admin/internal/domain"
)

func newTestClient(t *testing.T) (*Client, *clinicapitest.Server) {
	t.Helper()
	srv := clinicapitest.NewServer()
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zap.NewNop()), srv
}

func TestLoginReturnsAccountAndToken(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddAccount(clinicapitest.Account{ID: 7, FirstName: "Ana", LastName: "Ruiz", Email: "ana@clinic.test", Password: "secret", Role: "admin"})

	res, err := client.Login(context.Background(), domain.Credentials{Email: "ana@clinic.test", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != clinicapitest.Token || res.Account.ID != 7 || res.Account.Role != "admin" {
		t.Fatalf("unexpected login result %+v", res)
	}
	calls := srv.Calls()
	if len(calls) != 1 || calls[0].Authorization != "" {
		t.Fatalf("login must not carry a bearer token, got %+v", calls)
	}
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Login(context.Background(), domain.Credentials{Email: "x@clinic.test", Password: "nope"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Неверный email или пароль" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestNetworkFailureIsErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, zap.NewNop())
	_, err := client.ListDoctors(context.Background(), "tok")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestAuthorizedRequestsCarryBearerToken(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddSpecialty(domain.Specialty{Name: "Cardiology", Description: "Heart"})

	specs, err := client.ListSpecialties(context.Background(), clinicapitest.Token)
	if err != nil {
		t.Fatalf("list specialties: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "Cardiology" {
		t.Fatalf("unexpected specialties %+v", specs)
	}
	calls := srv.Calls()
	if calls[0].Authorization != "Bearer "+clinicapitest.Token {
		t.Fatalf("expected bearer header, got %q", calls[0].Authorization)
	}

	_, err = client.ListSpecialties(context.Background(), "expired")
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 api error, got %v", err)
	}
}

func TestPlainTextErrorBodyIsPassedThrough(t *testing.T) {
	client, srv := newTestClient(t)
	srv.Fail(http.MethodDelete, "/api/admin/doctors/5", http.StatusConflict, "doctor has appointments")

	err := client.DeleteDoctor(context.Background(), clinicapitest.Token, 5)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "doctor has appointments" || apiErr.Status != http.StatusConflict {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestListReviewsSendsStatusFilter(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddReview(domain.Review{Status: domain.ReviewPending, Comment: "ok"})
	srv.AddReview(domain.Review{Status: domain.ReviewApproved, Comment: "great"})

	reviews, err := client.ListReviews(context.Background(), clinicapitest.Token, domain.ReviewApproved)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Comment != "great" {
		t.Fatalf("unexpected reviews %+v", reviews)
	}
	if q := srv.Calls()[0].Query; q != "status=approved" {
		t.Fatalf("expected status query, got %q", q)
	}

	if _, err := client.ListReviews(context.Background(), clinicapitest.Token, ""); err != nil {
		t.Fatalf("list all reviews: %v", err)
	}
	if q := srv.Calls()[1].Query; q != "" {
		t.Fatalf("expected no query for unfiltered list, got %q", q)
	}
}

func TestUpdateReviewStatusUsesStatusEndpoint(t *testing.T) {
	client, srv := newTestClient(t)
	rv := srv.AddReview(domain.Review{Status: domain.ReviewPending})

	if err := client.UpdateReviewStatus(context.Background(), clinicapitest.Token, rv.ID, domain.ReviewApproved); err != nil {
		t.Fatalf("update review: %v", err)
	}
	call := srv.Calls()[0]
	if call.Method != http.MethodPut || !strings.HasSuffix(call.Path, "/status") {
		t.Fatalf("unexpected call %+v", call)
	}
	if !strings.Contains(call.Body, `"status":"approved"`) {
		t.Fatalf("unexpected body %s", call.Body)
	}
}

func TestAppointmentAnalyticsReadsPeriodColumn(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AnalyticsRaw["year"] = `{"data":[{"year":2024,"count":"10","completed":7,"cancelled":"1"},{"year":2025,"count":4,"completed":"2","cancelled":0}]}`

	rows, err := client.AppointmentAnalytics(context.Background(), clinicapitest.Token, "year")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Label != "2024" || rows[0].Count != 10 || rows[0].Completed != 7 || rows[0].Cancelled != 1 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if srv.Calls()[0].Query != "period=year" {
		t.Fatalf("expected period query, got %q", srv.Calls()[0].Query)
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"Доступ запрещён"}`, "Доступ запрещён"},
		{`{"error":"forbidden"}`, "forbidden"},
		{"plain text\n", "plain text"},
		{"", "status 500"},
	}
	for _, tc := range cases {
		if got := errorMessage(500, []byte(tc.body)); got != tc.want {
			t.Fatalf("errorMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
