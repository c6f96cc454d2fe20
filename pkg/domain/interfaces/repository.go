package interfaces

import (
	"context"

	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	ActionAudit() ActionAuditRepository

	Close() error
}

// ActionAuditRepository defines the interface for audit trail data access
type ActionAuditRepository interface {
	// Create persists the initial audit record for a staged action
	Create(ctx context.Context, audit *model.ActionAudit) error

	// UpdateOutcome records the terminal outcome of an action
	UpdateOutcome(ctx context.Context, actionID model.ActionID, outcome types.StagingStatus, recordID, errorNote string) error

	// GetByActionID retrieves an audit record by action ID
	GetByActionID(ctx context.Context, actionID model.ActionID) (*model.ActionAudit, error)

	// ListBySession retrieves audit records for a session, newest first
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*model.ActionAudit, error)

	// ListByUser retrieves audit records for a user, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.ActionAudit, error)
}
