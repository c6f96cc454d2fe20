package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrPolicyNotFound  = goerr.New("policy file not found")
	ErrInvalidPolicy   = goerr.New("invalid policy configuration")
	ErrInvalidTTL      = goerr.New("confirmation TTL must be positive")
	ErrInvalidBudget   = goerr.New("creation budget must be at least 1")
	ErrInvalidCap      = goerr.New("pending action cap must be at least 1")
	ErrInvalidScore    = goerr.New("duplicate threshold must be within (0, 1]")
	ErrMissingEndpoint = goerr.New("endpoint URL is required")
)

// Context keys for error values
const (
	PolicyPathKey = "policy_path"
	EndpointKey   = "endpoint"
)
