package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/remedian-lab/remedian/pkg/domain/types"
)

// ActionID is a UUID-based identifier for a staged action
type ActionID string

// NewActionID generates a new UUID v7 ActionID. UUIDv7 is time-ordered and
// collision-free for the lifetime of the store.
func NewActionID() ActionID {
	return ActionID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the action ID
func (id ActionID) String() string {
	return string(id)
}

// ActionPayload is the action-type-specific request carried by a staged
// action. The staging engine never interprets it; Preview() is rendered once
// at staging time and SearchText() feeds the duplicate advisor.
type ActionPayload interface {
	ActionType() types.ActionType
	Preview() string
	SearchText() string
}

// PendingAction represents a proposed mutation recorded but not yet applied,
// awaiting explicit confirmation. It is immutable once constructed; the store
// is the single owner of its lifecycle.
type PendingAction struct {
	ActionID            ActionID
	ActionType          types.ActionType
	SessionID           string
	UserID              string
	Payload             ActionPayload
	Preview             string // rendered at staging time, never regenerated
	CreatedAt           time.Time
	ExpiresAt           time.Time
	DuplicateCandidates []DuplicateCandidate
}

// NewPendingAction builds an immutable pending action. The preview is
// rendered from the payload exactly once here.
func NewPendingAction(sessionID, userID string, payload ActionPayload, now time.Time, ttl time.Duration) *PendingAction {
	return &PendingAction{
		ActionID:   NewActionID(),
		ActionType: payload.ActionType(),
		SessionID:  sessionID,
		UserID:     userID,
		Payload:    payload,
		Preview:    payload.Preview(),
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// Expired reports whether the action's TTL has passed at the given time
func (a *PendingAction) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// BelongsTo reports whether the action was staged by the given session
func (a *PendingAction) BelongsTo(sessionID string) bool {
	return a.SessionID != "" && a.SessionID == sessionID
}

// HasDuplicateWarning reports whether duplicate candidates were attached at
// staging time
func (a *PendingAction) HasDuplicateWarning() bool {
	return len(a.DuplicateCandidates) > 0
}

// Status returns the caller-visible status of a freshly staged action:
// DUPLICATE_WARNING when candidates are attached, STAGED otherwise.
func (a *PendingAction) Status() types.StagingStatus {
	if a.HasDuplicateWarning() {
		return types.StagingStatusDuplicateWarning
	}
	return types.StagingStatusStaged
}

// ConfirmationPrompt renders the user-facing prompt embedding the preview,
// the action ID, and the expiry time.
func (a *PendingAction) ConfirmationPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here is the %s I'm ready to apply:\n\n", a.ActionType.Label())
	sb.WriteString(a.Preview)

	if a.HasDuplicateWarning() {
		sb.WriteString("\n⚠️ **Potential duplicates found:**\n")
		for _, dup := range a.DuplicateCandidates {
			fmt.Fprintf(&sb, "- **%s**: %s (%.0f%% similar)\n", dup.RecordID, dup.Title, dup.Score*100)
		}
	}

	fmt.Fprintf(&sb, "\n**To confirm, reply:** `confirm %s`\n", a.ActionID)
	fmt.Fprintf(&sb, "**To cancel, reply:** `cancel %s`\n", a.ActionID)
	fmt.Fprintf(&sb, "\n_This action will expire at %s._", a.ExpiresAt.UTC().Format(time.RFC3339))
	return sb.String()
}

// DuplicateCandidate is a possibly-redundant existing record returned by the
// duplicate advisor, with a similarity score in [0, 1].
type DuplicateCandidate struct {
	RecordID string
	Title    string
	Score    float64
}
