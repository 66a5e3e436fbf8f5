package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
)

// Service persists the access audit trail. Recording never fails the calling
// operation: a trail write error is logged and swallowed.
type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, actorID uuid.UUID, action, resource, resourceID, outcome string) {
	if s == nil || s.repo == nil {
		return
	}

	event := &model.AccessEvent{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Outcome:    outcome,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("resource", resource).
			Msg("failed to record access event")
	}
}
