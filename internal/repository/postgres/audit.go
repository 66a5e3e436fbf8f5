package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
)

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(base BaseRepository) repository.AuditRepository {
	return &auditRepository{base}
}

func (r *auditRepository) Insert(ctx context.Context, event *model.AccessEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO access_events (id, actor_id, action, resource, resource_id, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.ActorID, event.Action, event.Resource, event.ResourceID, event.Outcome, event.CreatedAt,
	)
	return err
}
