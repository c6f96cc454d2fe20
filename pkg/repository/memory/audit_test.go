package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/repository/memory"
)

func newAudit(sessionID, userID string, stagedAt time.Time) *model.ActionAudit {
	return &model.ActionAudit{
		ActionID:   model.NewActionID(),
		SessionID:  sessionID,
		UserID:     userID,
		ActionType: types.ActionTypeIncidentCreate,
		Preview:    "**Summary:** Printer offline",
		Outcome:    types.StagingStatusStaged,
		StagedAt:   stagedAt,
	}
}

func TestAuditCreateAndGet(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	audit := newAudit("session-1", "user-1", time.Now().UTC())
	gt.NoError(t, repo.ActionAudit().Create(ctx, audit)).Required()

	got, err := repo.ActionAudit().GetByActionID(ctx, audit.ActionID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.SessionID).Equal("session-1")
	gt.Value(t, got.Outcome).Equal(types.StagingStatusStaged)
	gt.Value(t, got.ResolvedAt).Nil()
}

func TestAuditCreateRejectsDuplicateID(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	audit := newAudit("session-1", "user-1", time.Now().UTC())
	gt.NoError(t, repo.ActionAudit().Create(ctx, audit)).Required()
	gt.Error(t, repo.ActionAudit().Create(ctx, audit))
}

func TestAuditUpdateOutcome(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	audit := newAudit("session-1", "user-1", time.Now().UTC())
	gt.NoError(t, repo.ActionAudit().Create(ctx, audit)).Required()

	err := repo.ActionAudit().UpdateOutcome(ctx, audit.ActionID, types.StagingStatusExecuted, "INC000123", "")
	gt.NoError(t, err).Required()

	got, err := repo.ActionAudit().GetByActionID(ctx, audit.ActionID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Outcome).Equal(types.StagingStatusExecuted)
	gt.Value(t, got.RecordID).Equal("INC000123")
	gt.Value(t, got.ResolvedAt != nil).Equal(true)
}

func TestAuditUpdateOutcomeNotFound(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	err := repo.ActionAudit().UpdateOutcome(ctx, model.NewActionID(), types.StagingStatusExecuted, "", "")
	gt.Error(t, err).Required()
	gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
}

func TestAuditGetReturnsCopy(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	audit := newAudit("session-1", "user-1", time.Now().UTC())
	gt.NoError(t, repo.ActionAudit().Create(ctx, audit)).Required()

	got, err := repo.ActionAudit().GetByActionID(ctx, audit.ActionID)
	gt.NoError(t, err).Required()
	got.Outcome = types.StagingStatusCancelled

	again, err := repo.ActionAudit().GetByActionID(ctx, audit.ActionID)
	gt.NoError(t, err).Required()
	gt.Value(t, again.Outcome).Equal(types.StagingStatusStaged)
}

func TestAuditListBySessionNewestFirst(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		audit := newAudit("session-1", "user-1", base.Add(time.Duration(i)*time.Minute))
		gt.NoError(t, repo.ActionAudit().Create(ctx, audit)).Required()
	}
	other := newAudit("session-2", "user-2", base)
	gt.NoError(t, repo.ActionAudit().Create(ctx, other)).Required()

	audits, err := repo.ActionAudit().ListBySession(ctx, "session-1", 0)
	gt.NoError(t, err).Required()
	gt.Array(t, audits).Length(3)
	gt.Bool(t, audits[0].StagedAt.After(audits[1].StagedAt)).True()
	gt.Bool(t, audits[1].StagedAt.After(audits[2].StagedAt)).True()
}

func TestAuditListByUserWithLimit(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		audit := newAudit("session-1", "user-1", base.Add(time.Duration(i)*time.Minute))
		gt.NoError(t, repo.ActionAudit().Create(ctx, audit)).Required()
	}

	audits, err := repo.ActionAudit().ListByUser(ctx, "user-1", 2)
	gt.NoError(t, err).Required()
	gt.Array(t, audits).Length(2)
	gt.Value(t, audits[0].StagedAt).Equal(base.Add(4 * time.Minute))
}
