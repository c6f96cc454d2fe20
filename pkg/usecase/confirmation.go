package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/service/ratelimit"
	"github.com/remedian-lab/remedian/pkg/service/staging"
	"github.com/remedian-lab/remedian/pkg/utils/errutil"
	"github.com/remedian-lab/remedian/pkg/utils/logging"
)

// ConfirmationUseCase is the staging and confirmation engine. Every mutation
// against the ITSM system passes through it twice: once to stage a preview,
// once to resolve the staged action by explicit confirm or cancel.
type ConfirmationUseCase struct {
	repo      interfaces.Repository
	store     *staging.Store
	limiter   *ratelimit.Limiter
	validator interfaces.Validator
	advisor   interfaces.DuplicateAdvisor
	executor  interfaces.Executor

	ttl                  time.Duration
	maxPendingPerSession int
	duplicateThreshold   float64
	maxDuplicates        int
	now                  func() time.Time
}

// ConfirmationOption is a functional option for ConfirmationUseCase
type ConfirmationOption func(*ConfirmationUseCase)

// WithTTL sets how long a staged action stays confirmable
func WithTTL(ttl time.Duration) ConfirmationOption {
	return func(uc *ConfirmationUseCase) {
		uc.ttl = ttl
	}
}

// WithMaxPendingPerSession caps concurrently staged actions per session.
// Staging beyond the cap is rejected; existing actions are never evicted.
func WithMaxPendingPerSession(max int) ConfirmationOption {
	return func(uc *ConfirmationUseCase) {
		uc.maxPendingPerSession = max
	}
}

// WithDuplicateThreshold sets the minimum similarity score for a candidate
// to appear in a duplicate warning
func WithDuplicateThreshold(threshold float64) ConfirmationOption {
	return func(uc *ConfirmationUseCase) {
		uc.duplicateThreshold = threshold
	}
}

// WithMaxDuplicates caps how many candidates are attached to a warning
func WithMaxDuplicates(max int) ConfirmationOption {
	return func(uc *ConfirmationUseCase) {
		uc.maxDuplicates = max
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ConfirmationOption {
	return func(uc *ConfirmationUseCase) {
		uc.now = now
	}
}

// NewConfirmationUseCase creates the engine with its collaborators
func NewConfirmationUseCase(repo interfaces.Repository, store *staging.Store, limiter *ratelimit.Limiter, validator interfaces.Validator, advisor interfaces.DuplicateAdvisor, executor interfaces.Executor, opts ...ConfirmationOption) *ConfirmationUseCase {
	uc := &ConfirmationUseCase{
		repo:      repo,
		store:     store,
		limiter:   limiter,
		validator: validator,
		advisor:   advisor,
		executor:  executor,

		ttl:                  5 * time.Minute,
		maxPendingPerSession: 5,
		duplicateThreshold:   0.85,
		maxDuplicates:        5,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// StageResult is the outcome of a staging attempt. A rejected attempt
// carries its reason in Status and Errors; nothing is stored and nothing
// counts against the rate budget.
type StageResult struct {
	Status   types.StagingStatus
	Action   *model.PendingAction
	Prompt   string
	Errors   []string
	Warnings []string
}

// Stage validates the payload, gathers duplicate advice for create actions,
// and records a pending action awaiting confirmation. The rate limit is
// checked before validation so a limited user learns so immediately, but an
// attempt is counted only when staging succeeds.
func (uc *ConfirmationUseCase) Stage(ctx context.Context, sessionID, userID string, payload model.ActionPayload) (*StageResult, error) {
	logger := logging.From(ctx)

	if sessionID == "" {
		return nil, goerr.Wrap(ErrMissingSession, "cannot stage action")
	}
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUser, "cannot stage action")
	}
	if payload == nil {
		return nil, goerr.Wrap(ErrNilPayload, "cannot stage action")
	}

	actionType := payload.ActionType()
	if !actionType.IsValid() {
		return nil, goerr.Wrap(ErrInvalidActionType, "cannot stage action",
			goerr.V("actionType", actionType))
	}

	if actionType.IsCreate() && uc.limiter.IsLimited(userID) {
		status := uc.limiter.Status(userID)
		logger.Info("staging rejected by rate limit",
			"user_id", userID, "limit", status.Limit)
		return &StageResult{
			Status: types.StagingStatusRateLimited,
			Errors: []string{"Hourly creation limit reached. Please try again later."},
		}, nil
	}

	validation := uc.validatePayload(payload)
	if len(validation.Errors) > 0 {
		return &StageResult{
			Status:   types.StagingStatusValidationError,
			Errors:   validation.Errors,
			Warnings: validation.Warnings,
		}, nil
	}

	if uc.store.CountBySession(sessionID) >= uc.maxPendingPerSession {
		return &StageResult{
			Status: types.StagingStatusSessionLimit,
			Errors: []string{"Too many unresolved pending actions in this session. Confirm or cancel an existing action first."},
		}, nil
	}

	action := model.NewPendingAction(sessionID, userID, payload, uc.now(), uc.ttl)

	if actionType.IsCreate() {
		action.DuplicateCandidates = uc.findDuplicates(ctx, payload.SearchText(), actionType.Family())
	}

	if err := uc.store.Put(action); err != nil {
		return nil, goerr.Wrap(err, "failed to stage action",
			goerr.V(ActionIDKey, action.ActionID))
	}

	if actionType.IsCreate() {
		uc.limiter.RecordAttempt(userID)
	}

	if err := uc.repo.ActionAudit().Create(ctx, model.NewActionAudit(action)); err != nil {
		errutil.Handle(ctx, err, "failed to write audit record for staged action")
	}

	logger.Info("staged action",
		"action_id", action.ActionID,
		"action_type", actionType.String(),
		"session_id", sessionID,
		"duplicates", len(action.DuplicateCandidates))

	return &StageResult{
		Status:   action.Status(),
		Action:   action,
		Prompt:   action.ConfirmationPrompt(),
		Warnings: validation.Warnings,
	}, nil
}

// findDuplicates queries the advisor and filters by threshold. Advisor
// failures degrade to no warning; they never block staging.
func (uc *ConfirmationUseCase) findDuplicates(ctx context.Context, text, recordType string) []model.DuplicateCandidate {
	if uc.advisor == nil {
		return nil
	}

	candidates, err := uc.advisor.Search(ctx, text, recordType, uc.maxDuplicates)
	if err != nil {
		errutil.Handle(ctx, err, "duplicate search failed, staging without advisory")
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	var result []model.DuplicateCandidate
	for _, c := range candidates {
		if c.Score < uc.duplicateThreshold {
			continue
		}
		result = append(result, model.DuplicateCandidate{
			RecordID: c.ID,
			Title:    c.Title,
			Score:    c.Score,
		})
		if len(result) >= uc.maxDuplicates {
			break
		}
	}
	return result
}

// ResolveResult is the outcome of a confirm or cancel
type ResolveResult struct {
	Status   types.StagingStatus
	Message  string
	RecordID string
}

// Confirm executes the staged action. The action is consumed regardless of
// the execution outcome: a failed execution requires staging anew, never a
// blind retry against a consumed ID.
func (uc *ConfirmationUseCase) Confirm(ctx context.Context, sessionID string, actionID model.ActionID) (*ResolveResult, error) {
	logger := logging.From(ctx)

	action, err := uc.store.TakeIfOwned(actionID, sessionID)
	if err != nil {
		return uc.resolveTakeError(ctx, actionID, err)
	}

	result, err := uc.executor.Apply(ctx, action.ActionType, action.Payload)
	if err != nil {
		uc.recordOutcome(ctx, actionID, types.StagingStatusFailed, "", err.Error())
		errutil.Handle(ctx, err, "execution failed for confirmed action")
		return &ResolveResult{
			Status:  types.StagingStatusFailed,
			Message: "Failed to apply the action. Please stage it again if you want to retry.",
		}, nil
	}

	if !result.Success {
		uc.recordOutcome(ctx, actionID, types.StagingStatusFailed, "", result.ErrorDetail)
		logger.Warn("backend rejected confirmed action",
			"action_id", actionID, "detail", result.ErrorDetail)
		return &ResolveResult{
			Status:  types.StagingStatusFailed,
			Message: result.UserMessage(),
		}, nil
	}

	uc.recordOutcome(ctx, actionID, types.StagingStatusExecuted, result.RecordID, "")
	logger.Info("executed confirmed action",
		"action_id", actionID,
		"record_id", result.RecordID,
		"record_type", result.RecordType)

	return &ResolveResult{
		Status:   types.StagingStatusExecuted,
		Message:  result.UserMessage(),
		RecordID: result.RecordID,
	}, nil
}

// Cancel discards the staged action without executing it
func (uc *ConfirmationUseCase) Cancel(ctx context.Context, sessionID string, actionID model.ActionID) (*ResolveResult, error) {
	action, err := uc.store.TakeIfOwned(actionID, sessionID)
	if err != nil {
		return uc.resolveTakeError(ctx, actionID, err)
	}

	uc.recordOutcome(ctx, actionID, types.StagingStatusCancelled, "", "")
	logging.From(ctx).Info("cancelled action",
		"action_id", actionID,
		"action_type", action.ActionType.String())

	return &ResolveResult{
		Status:  types.StagingStatusCancelled,
		Message: "Action cancelled. Nothing was created or modified.",
	}, nil
}

// resolveTakeError maps store errors to terminal statuses. Absence and
// foreign ownership are the same status so action IDs cannot be probed.
func (uc *ConfirmationUseCase) resolveTakeError(ctx context.Context, actionID model.ActionID, err error) (*ResolveResult, error) {
	switch {
	case errors.Is(err, staging.ErrExpired):
		uc.recordOutcome(ctx, actionID, types.StagingStatusExpired, "", "")
		return &ResolveResult{
			Status:  types.StagingStatusExpired,
			Message: "This action has expired. Please stage it again.",
		}, nil

	case errors.Is(err, staging.ErrNotFound):
		return &ResolveResult{
			Status:  types.StagingStatusNotFound,
			Message: "No pending action found with that ID.",
		}, nil

	default:
		return nil, goerr.Wrap(err, "failed to resolve action",
			goerr.V(ActionIDKey, actionID))
	}
}

// recordOutcome updates the audit trail; failures are logged, not returned
func (uc *ConfirmationUseCase) recordOutcome(ctx context.Context, actionID model.ActionID, outcome types.StagingStatus, recordID, errorNote string) {
	if err := uc.repo.ActionAudit().UpdateOutcome(ctx, actionID, outcome, recordID, errorNote); err != nil {
		errutil.Handle(ctx, err, "failed to update audit outcome")
	}
}

// ListPendingActions returns the session's non-expired staged actions,
// newest first, optionally filtered by record family ("incident" or
// "work_order").
func (uc *ConfirmationUseCase) ListPendingActions(ctx context.Context, sessionID string, family string) ([]*model.PendingAction, error) {
	if sessionID == "" {
		return nil, goerr.Wrap(ErrMissingSession, "cannot list pending actions")
	}

	actions := uc.store.ListBySession(sessionID)
	if family == "" {
		return actions, nil
	}

	var filtered []*model.PendingAction
	for _, a := range actions {
		if a.ActionType.Family() == family {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// RateLimitStatus reports the user's remaining creation budget
func (uc *ConfirmationUseCase) RateLimitStatus(userID string) model.RateLimitStatus {
	return uc.limiter.Status(userID)
}

// SweepExpired removes expired staged actions. Run periodically; expiry is
// already enforced lazily, so this only reclaims memory.
func (uc *ConfirmationUseCase) SweepExpired(ctx context.Context) {
	if removed := uc.store.Sweep(); removed > 0 {
		logging.From(ctx).Debug("swept expired pending actions", "removed", removed)
	}
}
