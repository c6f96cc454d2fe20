package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
)

type auditRepository struct {
	mu      sync.RWMutex
	records map[model.ActionID]*model.ActionAudit
}

func newAuditRepository() *auditRepository {
	return &auditRepository{
		records: make(map[model.ActionID]*model.ActionAudit),
	}
}

// copyAudit creates a deep copy of an audit record
func copyAudit(a *model.ActionAudit) *model.ActionAudit {
	copied := *a
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		copied.ResolvedAt = &t
	}
	return &copied
}

func (r *auditRepository) Create(ctx context.Context, audit *model.ActionAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[audit.ActionID]; exists {
		return goerr.New("audit record already exists", goerr.V("actionID", audit.ActionID))
	}

	r.records[audit.ActionID] = copyAudit(audit)
	return nil
}

func (r *auditRepository) UpdateOutcome(ctx context.Context, actionID model.ActionID, outcome types.StagingStatus, recordID, errorNote string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[actionID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "audit record not found", goerr.V("actionID", actionID))
	}

	now := time.Now().UTC()
	record.Outcome = outcome
	record.RecordID = recordID
	record.ErrorNote = errorNote
	record.ResolvedAt = &now
	return nil
}

func (r *auditRepository) GetByActionID(ctx context.Context, actionID model.ActionID) (*model.ActionAudit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[actionID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "audit record not found", goerr.V("actionID", actionID))
	}
	return copyAudit(record), nil
}

func (r *auditRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]*model.ActionAudit, error) {
	return r.list(func(a *model.ActionAudit) bool { return a.SessionID == sessionID }, limit)
}

func (r *auditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.ActionAudit, error) {
	return r.list(func(a *model.ActionAudit) bool { return a.UserID == userID }, limit)
}

func (r *auditRepository) list(match func(*model.ActionAudit) bool, limit int) ([]*model.ActionAudit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.ActionAudit
	for _, record := range r.records {
		if match(record) {
			result = append(result, copyAudit(record))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StagedAt.After(result[j].StagedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
