package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/remedian-lab/remedian/pkg/service/ratelimit"
	"github.com/remedian-lab/remedian/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Engine holds CLI flags for the confirmation engine policy. A TOML policy
// file may override the flag values; non-zero file values win.
type Engine struct {
	policyPath string

	ttlMinutes         int
	maxPendingPerUser  int
	maxCreationsHourly int
	rateLimitDisabled  bool
	duplicateThreshold float64
	maxDuplicates      int
}

// Policy is the TOML representation of the engine policy. Zero values mean
// "keep the flag value".
type Policy struct {
	TTLMinutes           int     `toml:"ttl_minutes"`
	MaxPendingPerSession int     `toml:"max_pending_per_session"`
	MaxCreationsPerHour  int     `toml:"max_creations_per_hour"`
	DisableRateLimit     bool    `toml:"disable_rate_limit"`
	DuplicateThreshold   float64 `toml:"duplicate_threshold"`
	MaxDuplicates        int     `toml:"max_duplicates"`
}

// Flags returns CLI flags for engine configuration
func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a TOML policy file overriding engine flags",
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_POLICY"),
			Destination: &e.policyPath,
		},
		&cli.IntFlag{
			Name:        "ttl-minutes",
			Usage:       "Minutes a staged action stays confirmable",
			Value:       5,
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_TTL_MINUTES"),
			Destination: &e.ttlMinutes,
		},
		&cli.IntFlag{
			Name:        "max-pending-per-session",
			Usage:       "Maximum staged actions per session",
			Value:       5,
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_MAX_PENDING_PER_SESSION"),
			Destination: &e.maxPendingPerUser,
		},
		&cli.IntFlag{
			Name:        "max-creations-per-hour",
			Usage:       "Per-user budget of staged creations per clock hour",
			Value:       10,
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_MAX_CREATIONS_PER_HOUR"),
			Destination: &e.maxCreationsHourly,
		},
		&cli.BoolFlag{
			Name:        "disable-rate-limit",
			Usage:       "Disable the per-user creation budget (development only)",
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_DISABLE_RATE_LIMIT"),
			Destination: &e.rateLimitDisabled,
		},
		&cli.FloatFlag{
			Name:        "duplicate-threshold",
			Usage:       "Minimum similarity score to surface a duplicate warning",
			Value:       0.85,
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_DUPLICATE_THRESHOLD"),
			Destination: &e.duplicateThreshold,
		},
		&cli.IntFlag{
			Name:        "max-duplicates",
			Usage:       "Maximum duplicate candidates attached to a staged action",
			Value:       5,
			Category:    "Engine",
			Sources:     cli.EnvVars("REMEDIAN_MAX_DUPLICATES"),
			Destination: &e.maxDuplicates,
		},
	}
}

// LogAttrs returns log attributes for the engine configuration
func (e *Engine) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("ttl_minutes", e.ttlMinutes),
		slog.Int("max_pending_per_session", e.maxPendingPerUser),
		slog.Int("max_creations_per_hour", e.maxCreationsHourly),
		slog.Bool("rate_limit_disabled", e.rateLimitDisabled),
		slog.Float64("duplicate_threshold", e.duplicateThreshold),
		slog.Int("max_duplicates", e.maxDuplicates),
	}
}

// Validate checks the Policy values that are set
func (p *Policy) Validate() error {
	if p.TTLMinutes < 0 {
		return goerr.Wrap(ErrInvalidTTL, "ttl_minutes", goerr.V("value", p.TTLMinutes))
	}
	if p.MaxPendingPerSession < 0 {
		return goerr.Wrap(ErrInvalidCap, "max_pending_per_session", goerr.V("value", p.MaxPendingPerSession))
	}
	if p.MaxCreationsPerHour < 0 {
		return goerr.Wrap(ErrInvalidBudget, "max_creations_per_hour", goerr.V("value", p.MaxCreationsPerHour))
	}
	if p.DuplicateThreshold < 0 || p.DuplicateThreshold > 1 {
		return goerr.Wrap(ErrInvalidScore, "duplicate_threshold", goerr.V("value", p.DuplicateThreshold))
	}
	if p.MaxDuplicates < 0 {
		return goerr.Wrap(ErrInvalidPolicy, "max_duplicates must not be negative", goerr.V("value", p.MaxDuplicates))
	}
	return nil
}

// LoadPolicy loads an engine policy from a TOML file
func LoadPolicy(path string) (*Policy, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrPolicyNotFound, "failed to read policy file", goerr.V(PolicyPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V(PolicyPathKey, path))
	}

	var policy Policy
	if err := toml.Unmarshal(data, &policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML policy", goerr.V(PolicyPathKey, path))
	}

	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "policy validation failed", goerr.V(PolicyPathKey, path))
	}

	return &policy, nil
}

func (e *Engine) apply(p *Policy) {
	if p.TTLMinutes > 0 {
		e.ttlMinutes = p.TTLMinutes
	}
	if p.MaxPendingPerSession > 0 {
		e.maxPendingPerUser = p.MaxPendingPerSession
	}
	if p.MaxCreationsPerHour > 0 {
		e.maxCreationsHourly = p.MaxCreationsPerHour
	}
	if p.DisableRateLimit {
		e.rateLimitDisabled = true
	}
	if p.DuplicateThreshold > 0 {
		e.duplicateThreshold = p.DuplicateThreshold
	}
	if p.MaxDuplicates > 0 {
		e.maxDuplicates = p.MaxDuplicates
	}
}

func (e *Engine) validate() error {
	if e.ttlMinutes < 1 {
		return goerr.Wrap(ErrInvalidTTL, "ttl-minutes", goerr.V("value", e.ttlMinutes))
	}
	if e.maxPendingPerUser < 1 {
		return goerr.Wrap(ErrInvalidCap, "max-pending-per-session", goerr.V("value", e.maxPendingPerUser))
	}
	if e.maxCreationsHourly < 1 {
		return goerr.Wrap(ErrInvalidBudget, "max-creations-per-hour", goerr.V("value", e.maxCreationsHourly))
	}
	if e.duplicateThreshold <= 0 || e.duplicateThreshold > 1 {
		return goerr.Wrap(ErrInvalidScore, "duplicate-threshold", goerr.V("value", e.duplicateThreshold))
	}
	if e.maxDuplicates < 1 {
		return goerr.Wrap(ErrInvalidPolicy, "max-duplicates must be at least 1", goerr.V("value", e.maxDuplicates))
	}
	return nil
}

// Configure resolves the engine policy and builds the rate limiter and
// confirmation options from it.
func (e *Engine) Configure() (*ratelimit.Limiter, []usecase.ConfirmationOption, error) {
	if e.policyPath != "" {
		policy, err := LoadPolicy(e.policyPath)
		if err != nil {
			return nil, nil, err
		}
		e.apply(policy)
	}

	if err := e.validate(); err != nil {
		return nil, nil, err
	}

	var limiterOpts []ratelimit.Option
	if e.rateLimitDisabled {
		limiterOpts = append(limiterOpts, ratelimit.WithDisabled())
	}
	limiter := ratelimit.New(e.maxCreationsHourly, limiterOpts...)

	confirmOpts := []usecase.ConfirmationOption{
		usecase.WithTTL(time.Duration(e.ttlMinutes) * time.Minute),
		usecase.WithMaxPendingPerSession(e.maxPendingPerUser),
		usecase.WithDuplicateThreshold(e.duplicateThreshold),
		usecase.WithMaxDuplicates(e.maxDuplicates),
	}

	return limiter, confirmOpts, nil
}
