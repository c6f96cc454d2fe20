package model

import "fmt"

// ExecutionResult is the outcome of applying a confirmed action to the
// backing ITSM system.
type ExecutionResult struct {
	Success     bool
	RecordID    string // display ID of the created/updated record (e.g. INC000001234)
	RecordType  string // record family (e.g. "incident", "work_order")
	Message     string // user-facing message
	ErrorDetail string // backend error detail, empty on success
}

// UserMessage returns a user-friendly message about the result
func (r *ExecutionResult) UserMessage() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Success {
		if r.RecordID != "" {
			return fmt.Sprintf("Successfully created %s", r.RecordID)
		}
		return "Successfully applied"
	}
	if r.ErrorDetail != "" {
		return fmt.Sprintf("Failed to apply record: %s", r.ErrorDetail)
	}
	return "Failed to apply record: unknown error"
}

// RateLimitStatus reports a user's creation budget within the current hour
// window.
type RateLimitStatus struct {
	Limit     int
	Remaining int
	Limited   bool
}
