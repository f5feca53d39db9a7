package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"clinic-admin/internal/domain"
)

func TestDoctorsCreateThenFreshList(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	sp := app.api.AddSpecialty(domain.Specialty{Name: "Cardiology"})

	form := url.Values{
		"firstName":   {"Gregory"},
		"lastName":    {"House"},
		"email":       {"house@clinic.test"},
		"phone":       {"555"},
		"experience":  {"10"},
		"education":   {"Hopkins"},
		"specialtyId": {strconv.FormatInt(sp.ID, 10)},
	}
	w := app.do(http.MethodPost, "/admin/doctors", form, cookie)
	if w.Code != http.StatusSeeOther || !strings.HasPrefix(w.Header().Get("Location"), "/admin/doctors?") {
		t.Fatalf("expected redirect to list, got %d %q", w.Code, w.Header().Get("Location"))
	}

	w = app.do(http.MethodGet, w.Header().Get("Location"), nil, cookie)
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "Gregory House") || !strings.Contains(body, "Cardiology") {
		t.Fatalf("list should show the server record, got %d", w.Code)
	}
	if !strings.Contains(body, "Registro creado.") {
		t.Fatalf("expected success notice")
	}
}

func TestDoctorsCreateMissingFieldKeepsForm(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	app.api.ResetCalls()

	form := url.Values{"firstName": {"Lisa"}, "lastName": {"Cuddy"}}
	w := app.do(http.MethodPost, "/admin/doctors", form, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="Lisa"`) || !strings.Contains(w.Body.String(), "email is required") {
		t.Fatalf("form values and message should be rendered")
	}
	if n := app.api.CallCount("POST /api/admin/doctors"); n != 0 {
		t.Fatalf("doctor must not be created, got %d posts", n)
	}
}

func TestDoctorsCreateRejectsDisplayNameEmail(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	sp := app.api.AddSpecialty(domain.Specialty{Name: "Cardiology"})
	app.api.ResetCalls()

	form := url.Values{
		"firstName":   {"Gregory"},
		"lastName":    {"House"},
		"email":       {"Dr House <house@clinic.test>"},
		"phone":       {"555"},
		"experience":  {"10"},
		"education":   {"Hopkins"},
		"specialtyId": {strconv.FormatInt(sp.ID, 10)},
	}
	w := app.do(http.MethodPost, "/admin/doctors", form, cookie)
	if w.Code != http.StatusUnprocessableEntity || !strings.Contains(w.Body.String(), "email is invalid") {
		t.Fatalf("expected 422 with email message, got %d", w.Code)
	}
	if n := app.api.CallCount("POST /api/admin/doctors"); n != 0 {
		t.Fatalf("doctor must not be created, got %d posts", n)
	}
	if len(app.api.Doctors()) != 0 {
		t.Fatalf("server should hold no doctors")
	}
}

func TestSpecialtiesEditMode(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	sp := app.api.AddSpecialty(domain.Specialty{Name: "Neuro", Description: "Brain"})
	id := strconv.FormatInt(sp.ID, 10)

	w := app.do(http.MethodGet, "/admin/specialties?edit="+id, nil, cookie)
	if !strings.Contains(w.Body.String(), `action="/admin/specialties/`+id+`"`) {
		t.Fatalf("row should render as an edit form")
	}

	app.api.Fail("PUT", "/api/admin/specialties/"+id, http.StatusConflict, `{"message":"name taken"}`)
	w = app.do(http.MethodPost, "/admin/specialties/"+id, url.Values{"name": {"Neurology"}, "description": {"Brain"}}, cookie)
	if w.Code != http.StatusUnprocessableEntity || !strings.Contains(w.Body.String(), "name taken") {
		t.Fatalf("expected server message, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="Neurology"`) {
		t.Fatalf("edit mode should keep submitted values")
	}

	app.api.Recover("PUT", "/api/admin/specialties/"+id)
	w = app.do(http.MethodPost, "/admin/specialties/"+id, url.Values{"name": {"Neurology"}, "description": {"Brain"}}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after update, got %d", w.Code)
	}
	if app.api.Specialties()[0].Name != "Neurology" {
		t.Fatalf("specialty not updated")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	u := app.api.AddUser(domain.User{FirstName: "Del", LastName: "Me", Email: "d@m.test", Role: domain.RolePatient})
	id := strconv.FormatInt(u.ID, 10)

	w := app.do(http.MethodGet, "/admin/users/"+id+"/delete", nil, cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `name="confirm" value="yes"`) {
		t.Fatalf("expected confirmation page, got %d", w.Code)
	}

	app.api.ResetCalls()
	w = app.do(http.MethodPost, "/admin/users/"+id+"/delete", url.Values{}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirmation, got %d", w.Code)
	}
	if n := app.api.CallCount("DELETE /api/admin/users/" + id); n != 0 {
		t.Fatalf("unconfirmed delete reached the api")
	}

	w = app.do(http.MethodPost, "/admin/users/"+id+"/delete", url.Values{"confirm": {"yes"}}, cookie)
	if w.Code != http.StatusSeeOther || len(app.api.Users()) != 0 {
		t.Fatalf("expected user deleted, got %d", w.Code)
	}
}

func TestAppointmentsFilterIsSingleFetch(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	app.api.AddAppointment(domain.Appointment{Status: domain.AppointmentScheduled, Patient: &domain.Person{FirstName: "Uno", LastName: "P"}})
	app.api.AddAppointment(domain.Appointment{Status: domain.AppointmentCancelled, Patient: &domain.Person{FirstName: "Dos", LastName: "P"}})
	app.api.ResetCalls()

	w := app.do(http.MethodGet, "/admin/appointments?status=cancelled", nil, cookie)
	body := w.Body.String()
	if !strings.Contains(body, "Dos P") || strings.Contains(body, "Uno P") {
		t.Fatalf("filter not applied")
	}
	if n := app.api.CallCount("GET /api/admin/appointments"); n != 1 {
		t.Fatalf("expected one fetch, got %d", n)
	}
}

func TestReviewsModeration(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	r := app.api.AddReview(domain.Review{Status: domain.ReviewPending, Comment: "Muy bien"})
	id := strconv.FormatInt(r.ID, 10)

	w := app.do(http.MethodPost, "/admin/reviews/"+id, url.Values{"status": {"approved"}, "filter": {"pending"}}, cookie)
	if w.Code != http.StatusSeeOther || !strings.Contains(w.Header().Get("Location"), "status=pending") {
		t.Fatalf("expected redirect keeping filter, got %d %q", w.Code, w.Header().Get("Location"))
	}
	w = app.do(http.MethodGet, "/admin/reviews?status=approved", nil, cookie)
	if !strings.Contains(w.Body.String(), "Muy bien") {
		t.Fatalf("approved review should be listed")
	}
}

func TestStatisticsFailureShowsOnlyError(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	w := app.do(http.MethodGet, "/admin/statistics?period=week", nil, cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Citas por Semana") {
		t.Fatalf("unexpected statistics page %d", w.Code)
	}

	app.api.Fail("GET", "/api/admin/statistics/specialties", http.StatusInternalServerError, `{"message":"db down"}`)
	w = app.do(http.MethodGet, "/admin/statistics", nil, cookie)
	body := w.Body.String()
	if !strings.Contains(body, "db down") || strings.Contains(body, "Rendimiento de médicos") {
		t.Fatalf("expected only the error to render")
	}
	if strings.Contains(body, `<select name="period">`) {
		t.Fatalf("period selector must not render next to the error")
	}
}

func TestListFailureRendersPageError(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	app.api.Fail("GET", "/api/admin/users", http.StatusUnauthorized, `{"message":"Token expirado"}`)

	w := app.do(http.MethodGet, "/admin/users", nil, cookie)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Token expirado") {
		t.Fatalf("expected page error, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<table>") {
		t.Fatalf("no table should render on list failure")
	}
}

func TestUsersAliasAndAuditDisabled(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	if w := app.do(http.MethodGet, "/users", nil, cookie); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Nuevo administrador") {
		t.Fatalf("alias should render the users page, got %d", w.Code)
	}
	if w := app.do(http.MethodGet, "/admin/audit", nil, cookie); !strings.Contains(w.Body.String(), "no está configurado") {
		t.Fatalf("audit page should say it is disabled")
	}
}
