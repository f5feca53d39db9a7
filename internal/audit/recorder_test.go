package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"clinic-admin/internal/domain"
)

type mockWriter struct {
	msgs []kafka.Message
	err  error
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.msgs = append(m.msgs, msgs...)
	return m.err
}

type mockRepo struct {
	entries []domain.AuditEntry
	err     error
}

func (m *mockRepo) Create(_ context.Context, e domain.AuditEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) ListRecent(_ context.Context, _ int) ([]domain.AuditEntry, error) {
	return m.entries, m.err
}

var actor = domain.Session{ID: 9, Email: "admin@clinic.test", Role: domain.RoleAdmin, Token: "tok"}

func TestNewEntry(t *testing.T) {
	e := NewEntry(actor, domain.AuditDelete, "doctors", 42)
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", e)
	}
	if e.ActorID != 9 || e.TargetID != "42" || e.Resource != "doctors" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if NewEntry(actor, domain.AuditCreate, "doctors", 0).TargetID != "" {
		t.Fatalf("create entries carry no target id")
	}
}

func TestKafkaRecorderPublishesJSON(t *testing.T) {
	w := &mockWriter{}
	rec := NewKafkaRecorder(w, "clinic-admin.audit")
	entry := NewEntry(actor, domain.AuditUpdate, "reviews", 3)

	if err := rec.Record(context.Background(), entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(w.msgs) != 1 || w.msgs[0].Topic != "clinic-admin.audit" || string(w.msgs[0].Key) != "reviews" {
		t.Fatalf("unexpected messages %+v", w.msgs)
	}
	var decoded domain.AuditEntry
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil || decoded.ID != entry.ID {
		t.Fatalf("unexpected payload %s (%v)", w.msgs[0].Value, err)
	}
}

func TestMultiJoinsErrorsAndSkipsNop(t *testing.T) {
	repo := &mockRepo{}
	failing := &mockWriter{err: errors.New("broker down")}
	rec := Multi(Nop(), NewRepositoryRecorder(repo), NewKafkaRecorder(failing, "t"), nil)

	err := rec.Record(context.Background(), NewEntry(actor, domain.AuditCreate, "specialties", 0))
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if len(repo.entries) != 1 {
		t.Fatalf("repository must still receive the entry")
	}

	if _, ok := Multi(Nop(), nil).(nopRecorder); !ok {
		t.Fatalf("expected Nop when no real recorder is given")
	}
	if _, ok := NewKafkaRecorder(nil, "t").(nopRecorder); !ok {
		t.Fatalf("expected Nop without writer")
	}
}
