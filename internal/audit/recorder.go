package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/repository"
)

// Recorder registra mutaciones hechas desde la consola.
type Recorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// Reader lista las entradas más recientes.
type Reader interface {
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// NewEntry completa id y fecha de una entrada.
func NewEntry(actor domain.Session, action, resource string, targetID int64) domain.AuditEntry {
	target := ""
	if targetID > 0 {
		target = strconv.FormatInt(targetID, 10)
	}
	return domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     action,
		Resource:   resource,
		TargetID:   target,
		CreatedAt:  time.Now().UTC(),
	}
}

type nopRecorder struct{}

// Nop descarta las entradas; se usa cuando no hay destino configurado.
func Nop() Recorder {
	return nopRecorder{}
}

func (nopRecorder) Record(context.Context, domain.AuditEntry) error {
	return nil
}

type repositoryRecorder struct {
	repo repository.AuditRepository
}

// NewRepositoryRecorder escribe cada entrada en el repositorio de auditoría.
func NewRepositoryRecorder(repo repository.AuditRepository) Recorder {
	if repo == nil {
		return Nop()
	}
	return &repositoryRecorder{repo: repo}
}

func (r *repositoryRecorder) Record(ctx context.Context, entry domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.repo.Create(ctx, entry)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaRecorder struct {
	writer messageWriter
	topic  string
}

// NewKafkaWriter construye el writer de Kafka para el topic de auditoría.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewKafkaRecorder publica cada entrada como JSON, con el recurso como key.
func NewKafkaRecorder(writer messageWriter, topic string) Recorder {
	if writer == nil || topic == "" {
		return Nop()
	}
	return &kafkaRecorder{writer: writer, topic: topic}
}

func (r *kafkaRecorder) Record(ctx context.Context, entry domain.AuditEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.writer.WriteMessages(ctx, kafka.Message{
		Topic: r.topic,
		Key:   []byte(entry.Resource),
		Value: value,
	})
}

type multiRecorder []Recorder

// Multi envía cada entrada a todos los destinos y une sus errores.
func Multi(recorders ...Recorder) Recorder {
	var out multiRecorder
	for _, r := range recorders {
		if r == nil {
			continue
		}
		if _, ok := r.(nopRecorder); ok {
			continue
		}
		out = append(out, r)
	}
	switch len(out) {
	case 0:
		return Nop()
	case 1:
		return out[0]
	}
	return out
}

func (m multiRecorder) Record(ctx context.Context, entry domain.AuditEntry) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
