package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessEvent is one entry in the access audit trail.
type AccessEvent struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ActorID    uuid.UUID `json:"actor_id" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	Resource   string    `json:"resource" db:"resource"`
	ResourceID string    `json:"resource_id" db:"resource_id"`
	Outcome    string    `json:"outcome" db:"outcome"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

const (
	AuditOutcomeAllowed = "allowed"
	AuditOutcomeDenied  = "denied"
)
