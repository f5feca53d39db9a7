package domain

import "time"

const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEntry registra una mutación realizada desde la consola.
type AuditEntry struct {
	ID         string    `json:"id"`
	ActorID    int64     `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	TargetID   string    `json:"target_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
