package model

import (
	"time"

	"github.com/remedian-lab/remedian/pkg/domain/types"
)

// ActionAudit is the persistent audit trail record for a staged action.
// One record is created per staging and updated once with the terminal
// outcome. Audit writes are best-effort and never gate the staging flow.
type ActionAudit struct {
	ActionID   ActionID
	SessionID  string
	UserID     string
	ActionType types.ActionType
	Preview    string
	Outcome    types.StagingStatus
	RecordID   string // set when the action was executed successfully
	ErrorNote  string // set when execution failed
	StagedAt   time.Time
	ResolvedAt *time.Time
}

// NewActionAudit builds the initial audit record for a freshly staged action
func NewActionAudit(action *PendingAction) *ActionAudit {
	return &ActionAudit{
		ActionID:   action.ActionID,
		SessionID:  action.SessionID,
		UserID:     action.UserID,
		ActionType: action.ActionType,
		Preview:    action.Preview,
		Outcome:    action.Status(),
		StagedAt:   action.CreatedAt,
	}
}
