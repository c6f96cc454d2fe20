package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Input errors
	ErrInvalidActionType = goerr.New("invalid action type")
	ErrMissingSession    = goerr.New("session ID is required")
	ErrMissingUser       = goerr.New("user ID is required")
	ErrNilPayload        = goerr.New("action payload is required")
)

// Context keys for error values
const (
	ActionIDKey  = "action_id"
	SessionIDKey = "session_id"
)
