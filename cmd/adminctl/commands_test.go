package main

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/clinicapi/clinicapitest"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
	"clinic-admin/internal/session"
)

type harness struct {
	api   *clinicapitest.Server
	store session.Store
	mgr   *session.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := clinicapitest.NewServer()
	t.Cleanup(api.Close)
	api.AddAccount(clinicapitest.Account{ID: 1, FirstName: "Ana", LastName: "Admin", Email: "admin@clinic.test", Password: "secret", Role: domain.RoleAdmin})
	api.AddAccount(clinicapitest.Account{ID: 2, FirstName: "Pablo", LastName: "Paciente", Email: "patient@clinic.test", Password: "secret", Role: domain.RolePatient})

	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	client := clinicapi.NewClient(api.URL, 5*time.Second, zap.NewNop())
	return &harness{api: api, store: store, mgr: session.NewManager(store, client, zap.NewNop())}
}

// run simula una invocación del binario: restaura la sesión y ejecuta args.
func (h *harness) run(t *testing.T, input string, args ...string) (int, string) {
	t.Helper()
	ctx := context.Background()
	client := clinicapi.NewClient(h.api.URL, 5*time.Second, zap.NewNop())
	cur := h.mgr.Bind(defaultSessionKey)
	cur.Init(ctx)

	var out bytes.Buffer
	app := &cli{
		current:      cur,
		doctors:      service.NewDoctorService(nil, client, nil),
		specialties:  service.NewSpecialtyService(nil, client, nil),
		users:        service.NewUserService(nil, client, nil),
		appointments: service.NewAppointmentService(nil, client, nil),
		reviews:      service.NewReviewService(nil, client, nil),
		stats:        service.NewStatisticsService(nil, client),
		in:           bufio.NewReader(strings.NewReader(input)),
		out:          &out,
	}
	code := app.run(ctx, args)
	return code, out.String()
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	h := newHarness(t)

	code, out := h.run(t, "admin@clinic.test\nsecret\n", "login")
	if code != 0 || !strings.Contains(out, "Bienvenido, Ana Admin") {
		t.Fatalf("login failed: %d %s", code, out)
	}

	code, out = h.run(t, "", "whoami")
	if code != 0 || !strings.Contains(out, "admin@clinic.test") {
		t.Fatalf("session should be restored: %s", out)
	}

	if code, _ := h.run(t, "", "logout"); code != 0 {
		t.Fatalf("logout failed")
	}
	_, out = h.run(t, "", "whoami")
	if !strings.Contains(out, "Sin sesión") {
		t.Fatalf("expected no session after logout, got %s", out)
	}
}

func TestLoginNonAdminRefused(t *testing.T) {
	h := newHarness(t)
	code, out := h.run(t, "patient@clinic.test\nsecret\n", "login")
	if code != 1 || !strings.Contains(out, "acceso restringido") {
		t.Fatalf("expected refusal, got %d %s", code, out)
	}
	if _, err := h.store.Load(context.Background(), defaultSessionKey); err == nil {
		t.Fatalf("non-admin session must not be persisted")
	}
}

func TestListRequiresSession(t *testing.T) {
	h := newHarness(t)
	code, out := h.run(t, "", "list", "doctors")
	if code != 1 || !strings.Contains(out, "adminctl login") {
		t.Fatalf("expected login hint, got %s", out)
	}
	if h.api.CallCount("") != 0 {
		t.Fatalf("expected no requests")
	}
}

func TestListAndDeleteWithConfirmation(t *testing.T) {
	h := newHarness(t)
	h.run(t, "admin@clinic.test\nsecret\n", "login")
	sp := h.api.AddSpecialty(domain.Specialty{Name: "Cardiology", Description: "Heart"})

	_, out := h.run(t, "", "list", "specialties")
	if !strings.Contains(out, "Cardiology") {
		t.Fatalf("expected specialty listed: %s", out)
	}

	id := strconv.FormatInt(sp.ID, 10)
	_, out = h.run(t, "n\n", "delete", "specialties", id)
	if !strings.Contains(out, "Cancelado") || len(h.api.Specialties()) != 1 {
		t.Fatalf("declined delete must keep the record: %s", out)
	}
	_, out = h.run(t, "s\n", "delete", "specialties", id)
	if !strings.Contains(out, "Eliminado") || len(h.api.Specialties()) != 0 {
		t.Fatalf("confirmed delete should remove %s: %s", id, out)
	}
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t)
	h.run(t, "admin@clinic.test\nsecret\n", "login")

	code, out := h.run(t, "", "stats", "week")
	if code != 0 || !strings.Contains(out, "WEEK") || !strings.Contains(out, "current") {
		t.Fatalf("unexpected stats output: %d %s", code, out)
	}
}

func TestSessionLocation(t *testing.T) {
	dir, key, err := sessionLocation(filepath.Join("/tmp", "clinic", "ops.json"))
	if err != nil || dir != filepath.Join("/tmp", "clinic") || key != "ops" {
		t.Fatalf("unexpected location %q %q %v", dir, key, err)
	}
	_, key, _ = sessionLocation("/tmp/clinic/bad name.json")
	if key != defaultSessionKey {
		t.Fatalf("expected default key, got %q", key)
	}
}

func TestUnknownCommandPrintsUsage(t *testing.T) {
	h := newHarness(t)
	code, out := h.run(t, "", "frobnicate")
	if code != 2 || !strings.Contains(out, "uso: adminctl") {
		t.Fatalf("expected usage, got %d", code)
	}
}
