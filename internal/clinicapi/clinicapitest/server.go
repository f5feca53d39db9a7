// Package clinicapitest ofrece una API de clínica en memoria para tests.
package clinicapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"clinic-admin/internal/domain"
)

// Token es el bearer token que emite el login del servidor falso.
const Token = "test-token"

// Account es una cuenta con la que se puede hacer login.
type Account struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// Call es una petición recibida por el servidor.
type Call struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

type failure struct {
	status  int
	message string
}

// Server es una implementación mínima de la API REST de la clínica.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	nextID       int64
	calls        []Call
	failures     map[string]failure
	accounts     []Account
	doctors      []domain.Doctor
	specialties  []domain.Specialty
	users        []domain.User
	appointments []domain.Appointment
	reviews      []domain.Review

	General      domain.GeneralStats
	Performance  []domain.DoctorPerformance
	Popular      []domain.PopularSpecialty
	AnalyticsRaw map[string]string
}

// NewServer arranca el servidor; el test debe llamar Close.
func NewServer() *Server {
	s := &Server{
		nextID:       100,
		failures:     make(map[string]failure),
		AnalyticsRaw: make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/specialties", s.auth(s.listSpecialties))

	mux.HandleFunc("GET /api/admin/doctors", s.auth(s.listDoctors))
	mux.HandleFunc("POST /api/admin/doctors", s.auth(s.createDoctor))
	mux.HandleFunc("PUT /api/admin/doctors/{id}", s.auth(s.updateDoctor))
	mux.HandleFunc("DELETE /api/admin/doctors/{id}", s.auth(s.deleteDoctor))

	mux.HandleFunc("GET /api/admin/specialties", s.auth(s.listSpecialties))
	mux.HandleFunc("POST /api/admin/specialties", s.auth(s.createSpecialty))
	mux.HandleFunc("PUT /api/admin/specialties/{id}", s.auth(s.updateSpecialty))
	mux.HandleFunc("DELETE /api/admin/specialties/{id}", s.auth(s.deleteSpecialty))

	mux.HandleFunc("GET /api/admin/users", s.auth(s.listUsers))
	mux.HandleFunc("POST /api/admin/users", s.auth(s.createUser))
	mux.HandleFunc("PUT /api/admin/users/{id}", s.auth(s.updateUser))
	mux.HandleFunc("DELETE /api/admin/users/{id}", s.auth(s.deleteUser))

	mux.HandleFunc("GET /api/admin/appointments", s.auth(s.listAppointments))
	mux.HandleFunc("PUT /api/admin/appointments/{id}", s.auth(s.updateAppointment))
	mux.HandleFunc("DELETE /api/admin/appointments/{id}", s.auth(s.deleteAppointment))

	mux.HandleFunc("GET /api/admin/reviews", s.auth(s.listReviews))
	mux.HandleFunc("PUT /api/admin/reviews/{id}/status", s.auth(s.updateReview))
	mux.HandleFunc("DELETE /api/admin/reviews/{id}", s.auth(s.deleteReview))

	mux.HandleFunc("GET /api/admin/statistics/general", s.auth(s.general))
	mux.HandleFunc("GET /api/admin/statistics/appointments", s.auth(s.analytics))
	mux.HandleFunc("GET /api/admin/statistics/doctors", s.auth(s.performance))
	mux.HandleFunc("GET /api/admin/statistics/specialties", s.auth(s.popular))

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// AddAccount registra una cuenta para el endpoint de login.
func (s *Server) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
}

func (s *Server) AddSpecialty(sp domain.Specialty) domain.Specialty {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.ID == 0 {
		sp.ID = s.id()
	}
	s.specialties = append(s.specialties, sp)
	return sp
}

func (s *Server) AddDoctor(d domain.Doctor) domain.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		d.ID = s.id()
	}
	s.doctors = append(s.doctors, d)
	return d
}

func (s *Server) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users = append(s.users, u)
	return u
}

func (s *Server) AddAppointment(a domain.Appointment) domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.id()
	}
	s.appointments = append(s.appointments, a)
	return a
}

func (s *Server) AddReview(r domain.Review) domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.id()
	}
	s.reviews = append(s.reviews, r)
	return r
}

// Fail hace que "METHOD /path" responda con status y message hasta Recover.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

// Calls devuelve una copia de las peticiones recibidas.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount cuenta las peticiones a "METHOD /path"; con key vacío, todas.
func (s *Server) CallCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == "" {
		return len(s.calls)
	}
	n := 0
	for _, c := range s.calls {
		if c.Method+" "+c.Path == key {
			n++
		}
	}
	return n
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) Doctors() []domain.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Doctor(nil), s.doctors...)
}

func (s *Server) Specialties() []domain.Specialty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Specialty(nil), s.specialties...)
}

func (s *Server) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := ""
		if r.Body != nil {
			body = readAll(r)
			r.Body = readCloser(body)
		}
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if failing {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.message))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Нет токена, авторизация отклонена"})
			return
		}
		next(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == creds.Email && a.Password == creds.Password {
			writeJSON(w, http.StatusOK, map[string]any{
				"patient": map[string]any{
					"id":        a.ID,
					"firstName": a.FirstName,
					"lastName":  a.LastName,
					"email":     a.Email,
					"role":      a.Role,
				},
				"token": Token,
			})
			return
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Неверный email или пароль"})
}

func (s *Server) listDoctors(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		for _, sp := range s.specialties {
			if sp.ID == d.SpecialtyID {
				spec := sp
				d.Specialty = &spec
			}
		}
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createDoctor(w http.ResponseWriter, r *http.Request) {
	var in domain.DoctorInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors = append(s.doctors, doctorFrom(s.id(), in))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) updateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.DoctorInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doctors {
		if s.doctors[i].ID == id {
			s.doctors[i] = doctorFrom(id, in)
			writeJSON(w, http.StatusOK, s.doctors[i])
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doctors {
		if s.doctors[i].ID == id {
			s.doctors = append(s.doctors[:i], s.doctors[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) listSpecialties(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Specialty{}, s.specialties...))
}

func (s *Server) createSpecialty(w http.ResponseWriter, r *http.Request) {
	var in domain.SpecialtyInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sp := domain.Specialty{ID: s.id(), Name: in.Name, Description: in.Description}
	s.specialties = append(s.specialties, sp)
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) updateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.SpecialtyInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.specialties {
		if s.specialties[i].ID == id {
			s.specialties[i].Name = in.Name
			s.specialties[i].Description = in.Description
			writeJSON(w, http.StatusOK, s.specialties[i])
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.specialties {
		if s.specialties[i].ID == id {
			s.specialties = append(s.specialties[:i], s.specialties[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.User{}, s.users...))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, userFrom(s.id(), in))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.UserInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = userFrom(id, in)
			writeJSON(w, http.StatusOK, s.users[i])
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) listAppointments(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Appointment{}, s.appointments...))
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i].Status = in.Status
			writeJSON(w, http.StatusOK, s.appointments[i])
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Review, 0, len(s.reviews))
	for _, rv := range s.reviews {
		if status == "" || rv.Status == status {
			out = append(out, rv)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews[i].Status = in.Status
			writeJSON(w, http.StatusOK, s.reviews[i])
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) general(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.General)
}

// analytics responde AnalyticsRaw[period] tal cual o una fila por defecto.
func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	s.mu.Lock()
	raw, ok := s.AnalyticsRaw[period]
	s.mu.Unlock()
	if !ok {
		raw = fmt.Sprintf(`{"data":[{%q:"current","count":"3","completed":"2","cancelled":"1"}]}`, period)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(raw))
}

func (s *Server) performance(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.DoctorPerformance{}, s.Performance...))
}

func (s *Server) popular(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.PopularSpecialty{}, s.Popular...)
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentsCount > out[j].AppointmentsCount })
	writeJSON(w, http.StatusOK, out)
}

func doctorFrom(id int64, in domain.DoctorInput) domain.Doctor {
	return domain.Doctor{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		Experience:  domain.Number(in.Experience),
		Education:   in.Education,
		SpecialtyID: in.SpecialtyID,
	}
}

func userFrom(id int64, in domain.UserInput) domain.User {
	return domain.User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		Role:      in.Role,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return false
	}
	return true
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
