package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-admin/internal/domain"
)

// AuditRepository define el contrato de persistencia del registro de auditoría.
type AuditRepository interface {
	Create(ctx context.Context, entry domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type pgExecQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgAuditRepository implementa AuditRepository usando pgxpool.
type PgAuditRepository struct {
	pool pgExecQuerier
}

func NewPgAuditRepository(pool *pgxpool.Pool) *PgAuditRepository {
	return &PgAuditRepository{pool: pool}
}

// EnsureSchema crea la tabla de auditoría si no existe.
func (r *PgAuditRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS console_audit (
			id          TEXT PRIMARY KEY,
			actor_id    BIGINT NOT NULL,
			actor_email TEXT NOT NULL,
			action      TEXT NOT NULL,
			resource    TEXT NOT NULL,
			target_id   TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL
		)
	`
	_, err := r.pool.Exec(ctx, ddl)
	return err
}

func (r *PgAuditRepository) Create(ctx context.Context, entry domain.AuditEntry) error {
	const query = `
		INSERT INTO console_audit (id, actor_id, actor_email, action, resource, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.ActorEmail,
		entry.Action,
		entry.Resource,
		entry.TargetID,
		entry.CreatedAt,
	)
	return err
}

func (r *PgAuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, actor_id, actor_email, action, resource, target_id, created_at
		FROM console_audit
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(
			&e.ID,
			&e.ActorID,
			&e.ActorEmail,
			&e.Action,
			&e.Resource,
			&e.TargetID,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
