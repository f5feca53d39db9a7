package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/clinicapi/clinicapitest"
	"clinic-admin/internal/domain"
)

func newTestManager(t *testing.T) (*Manager, Store, *clinicapitest.Server) {
	t.Helper()
	srv := clinicapitest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddAccount(clinicapitest.Account{ID: 1, FirstName: "Ana", LastName: "Ruiz", Email: "admin@clinic.test", Password: "secret", Role: domain.RoleAdmin})
	srv.AddAccount(clinicapitest.Account{ID: 2, FirstName: "Luis", LastName: "Gil", Email: "patient@clinic.test", Password: "secret", Role: domain.RolePatient})
	store := NewMemoryStore()
	client := clinicapi.NewClient(srv.URL, 2*time.Second, zap.NewNop())
	return NewManager(store, client, zap.NewNop()), store, srv
}

func TestLogin_AdminCreatesAndPersistsSession(t *testing.T) {
	ctx := context.Background()
	mgr, store, _ := newTestManager(t)
	cur := mgr.Bind("browser-1")

	sess, err := cur.Login(ctx, domain.Credentials{Email: " admin@clinic.test ", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.ID != 1 || sess.Token != clinicapitest.Token || !sess.IsAdmin() {
		t.Fatalf("unexpected session %+v", sess)
	}
	persisted, err := store.Load(ctx, "browser-1")
	if err != nil || persisted != sess {
		t.Fatalf("expected persisted copy %+v, got %+v (%v)", sess, persisted, err)
	}
	if got, ok := cur.Get(); !ok || got != sess {
		t.Fatalf("in-memory copy out of sync: %+v", got)
	}
}

func TestLogin_NonAdminIsRejectedWithoutSession(t *testing.T) {
	ctx := context.Background()
	mgr, store, _ := newTestManager(t)
	cur := mgr.Bind("browser-1")

	_, err := cur.Login(ctx, domain.Credentials{Email: "patient@clinic.test", Password: "secret"})
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if _, err := store.Load(ctx, "browser-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-admin login must not persist anything, got %v", err)
	}
	if _, ok := cur.Get(); ok {
		t.Fatalf("non-admin login must not activate a session")
	}
}

func TestLogin_ServerRejectionIsAuthenticationError(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	_, err := mgr.Login(context.Background(), "k", domain.Credentials{Email: "admin@clinic.test", Password: "wrong"})
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if authErr.Message != "Неверный email или пароль" || authErr.Status != http.StatusBadRequest {
		t.Fatalf("server message must pass through verbatim, got %+v", authErr)
	}
}

func TestLogin_NetworkFailure(t *testing.T) {
	srv := clinicapitest.NewServer()
	url := srv.URL
	srv.Close()
	mgr := NewManager(NewMemoryStore(), clinicapi.NewClient(url, time.Second, zap.NewNop()), zap.NewNop())

	_, err := mgr.Login(context.Background(), "k", domain.Credentials{Email: "admin@clinic.test", Password: "secret"})
	if !errors.Is(err, clinicapi.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestLogin_ValidationHappensBeforeAnyRequest(t *testing.T) {
	mgr, _, srv := newTestManager(t)

	for _, creds := range []domain.Credentials{
		{Email: "", Password: "secret"},
		{Email: "not-an-email", Password: "secret"},
		{Email: "Ana <admin@clinic.test>", Password: "secret"},
		{Email: "admin@clinic.test", Password: "  "},
	} {
		_, err := mgr.Login(context.Background(), "k", creds)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError for %+v, got %v", creds, err)
		}
	}
	if n := srv.CallCount(""); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestRestore_SurvivesReloadWithoutReauthenticating(t *testing.T) {
	ctx := context.Background()
	mgr, _, srv := newTestManager(t)
	if _, err := mgr.Bind("browser-1").Login(ctx, domain.Credentials{Email: "admin@clinic.test", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	srv.ResetCalls()

	reloaded := mgr.Bind("browser-1")
	if !reloaded.Init(ctx) {
		t.Fatalf("expected session to be restored")
	}
	if reloaded.Token() != clinicapitest.Token || !reloaded.IsAdmin() {
		t.Fatalf("unexpected restored session %+v", reloaded)
	}
	if n := srv.CallCount(""); n != 0 {
		t.Fatalf("restore must not call the api, got %d calls", n)
	}
}

func TestRestore_MalformedFailsOpenToAnonymous(t *testing.T) {
	ctx := context.Background()
	mgr, store, _ := newTestManager(t)
	store.(*memoryStore).items["browser-1"] = []byte("{{{")

	cur := mgr.Bind("browser-1")
	if cur.Init(ctx) {
		t.Fatalf("malformed record must restore as anonymous")
	}
	if _, err := store.Load(ctx, "browser-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed record should be discarded, got %v", err)
	}
	if cur.Token() != "" {
		t.Fatalf("expected empty token")
	}
}

func TestLogout_ClearsBothCopiesIdempotently(t *testing.T) {
	ctx := context.Background()
	mgr, store, srv := newTestManager(t)
	cur := mgr.Bind("browser-1")
	if _, err := cur.Login(ctx, domain.Credentials{Email: "admin@clinic.test", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	srv.ResetCalls()

	for i := 0; i < 2; i++ {
		if err := cur.Logout(ctx); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
		if _, ok := cur.Get(); ok {
			t.Fatalf("in-memory session must be cleared")
		}
		if _, err := store.Load(ctx, "browser-1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("persisted session must be removed, got %v", err)
		}
	}
	if n := srv.CallCount(""); n != 0 {
		t.Fatalf("logout must not call the api, got %d", n)
	}
}

func TestCurrent_FailedLoginKeepsPreviousSession(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	cur := mgr.Bind("cli")
	if _, err := cur.Login(ctx, domain.Credentials{Email: "admin@clinic.test", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := cur.Login(ctx, domain.Credentials{Email: "admin@clinic.test", Password: "bad"}); err == nil {
		t.Fatalf("expected failure")
	}
	if !cur.IsAdmin() {
		t.Fatalf("previous session must survive a failed login")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "id": 1}).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, ok := TokenExpiry(token)
	if !ok || !got.Equal(exp) {
		t.Fatalf("expected %v, got %v (%v)", exp, got, ok)
	}
	if _, ok := TokenExpiry("opaque-token"); ok {
		t.Fatalf("opaque tokens have no expiry")
	}
}
