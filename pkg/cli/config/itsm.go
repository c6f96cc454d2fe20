package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/service/itsm"
	"github.com/urfave/cli/v3"
)

// ITSM holds CLI flags for the ITSM adapter that executes confirmed actions
type ITSM struct {
	url    string
	apiKey string
}

// Flags returns CLI flags for ITSM adapter configuration
func (i *ITSM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "itsm-url",
			Usage:       "ITSM adapter URL for executing confirmed actions",
			Category:    "Services",
			Sources:     cli.EnvVars("REMEDIAN_ITSM_URL"),
			Destination: &i.url,
		},
		&cli.StringFlag{
			Name:        "itsm-api-key",
			Usage:       "API key for the ITSM adapter",
			Category:    "Services",
			Sources:     cli.EnvVars("REMEDIAN_ITSM_API_KEY"),
			Destination: &i.apiKey,
		},
	}
}

// LogAttrs returns log attributes for the ITSM configuration
func (i *ITSM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("url", i.url),
		slog.Bool("api_key_set", i.apiKey != ""),
	}
}

// Configure creates an executor client from the configured flags. The ITSM
// URL is required: confirmed actions have nowhere to go without it.
func (i *ITSM) Configure() (interfaces.Executor, error) {
	if i.url == "" {
		return nil, goerr.Wrap(ErrMissingEndpoint, "itsm-url is required")
	}

	var opts []itsm.Option
	if i.apiKey != "" {
		opts = append(opts, itsm.WithAPIKey(i.apiKey))
	}

	client, err := itsm.New(i.url, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ITSM client", goerr.V(EndpointKey, i.url))
	}

	return client, nil
}
