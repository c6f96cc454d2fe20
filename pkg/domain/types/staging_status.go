package types

import "fmt"

// StagingStatus represents the caller-visible outcome of a staging or
// resolution operation
type StagingStatus string

const (
	StagingStatusStaged           StagingStatus = "STAGED"
	StagingStatusDuplicateWarning StagingStatus = "DUPLICATE_WARNING"
	StagingStatusExecuted         StagingStatus = "EXECUTED"
	StagingStatusCancelled        StagingStatus = "CANCELLED"
	StagingStatusExpired          StagingStatus = "EXPIRED"
	StagingStatusNotFound         StagingStatus = "NOT_FOUND"
	StagingStatusFailed           StagingStatus = "FAILED"
	StagingStatusRateLimited      StagingStatus = "RATE_LIMITED"
	StagingStatusValidationError  StagingStatus = "VALIDATION_ERROR"
	StagingStatusSessionLimit     StagingStatus = "SESSION_LIMIT"
)

// AllStagingStatuses returns all valid staging statuses
func AllStagingStatuses() []StagingStatus {
	return []StagingStatus{
		StagingStatusStaged,
		StagingStatusDuplicateWarning,
		StagingStatusExecuted,
		StagingStatusCancelled,
		StagingStatusExpired,
		StagingStatusNotFound,
		StagingStatusFailed,
		StagingStatusRateLimited,
		StagingStatusValidationError,
		StagingStatusSessionLimit,
	}
}

// IsValid checks if the staging status is valid
func (s StagingStatus) IsValid() bool {
	switch s {
	case StagingStatusStaged,
		StagingStatusDuplicateWarning,
		StagingStatusExecuted,
		StagingStatusCancelled,
		StagingStatusExpired,
		StagingStatusNotFound,
		StagingStatusFailed,
		StagingStatusRateLimited,
		StagingStatusValidationError,
		StagingStatusSessionLimit:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends an action's lifecycle.
// STAGED and DUPLICATE_WARNING are the only non-terminal statuses.
func (s StagingStatus) IsTerminal() bool {
	switch s {
	case StagingStatusStaged, StagingStatusDuplicateWarning:
		return false
	default:
		return true
	}
}

// String returns the string representation of the staging status
func (s StagingStatus) String() string {
	return string(s)
}

// ParseStagingStatus parses a string into a StagingStatus
func ParseStagingStatus(s string) (StagingStatus, error) {
	status := StagingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid staging status: %s", s)
	}
	return status, nil
}
