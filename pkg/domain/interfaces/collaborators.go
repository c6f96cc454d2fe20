package interfaces

import (
	"context"

	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
)

// FieldValidation is the result of validating a single input field
type FieldValidation struct {
	Accepted  bool
	Errors    []string
	Warnings  []string
	Sanitized string
}

// Validator screens and sanitizes user-supplied field values before any
// state is created. Rejection carries field-level error messages.
type Validator interface {
	ValidateField(field string, value string) FieldValidation
}

// Candidate is a scored similar record returned by the duplicate advisor
type Candidate struct {
	ID    string
	Title string
	Score float64
}

// DuplicateAdvisor finds existing records similar to the given text.
// Results are sorted by descending score. The advisor is advisory only:
// failures and matches never block staging.
type DuplicateAdvisor interface {
	Search(ctx context.Context, text string, recordType string, limit int) ([]Candidate, error)
}

// Executor performs the actual mutation against the backing ITSM system
// after an action is confirmed. There is no mechanism to cancel an in-flight
// call; failures are reported, not retried.
type Executor interface {
	Apply(ctx context.Context, actionType types.ActionType, payload model.ActionPayload) (*model.ExecutionResult, error)
}
