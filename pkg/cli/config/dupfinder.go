package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/service/dupfinder"
	"github.com/urfave/cli/v3"
)

// Dupfinder holds CLI flags for the vector search duplicate advisory service
type Dupfinder struct {
	url    string
	apiKey string
}

// Flags returns CLI flags for duplicate advisory configuration
func (d *Dupfinder) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dupfinder-url",
			Usage:       "Vector search service URL for duplicate advisory (disabled when empty)",
			Category:    "Services",
			Sources:     cli.EnvVars("REMEDIAN_DUPFINDER_URL"),
			Destination: &d.url,
		},
		&cli.StringFlag{
			Name:        "dupfinder-api-key",
			Usage:       "API key for the vector search service",
			Category:    "Services",
			Sources:     cli.EnvVars("REMEDIAN_DUPFINDER_API_KEY"),
			Destination: &d.apiKey,
		},
	}
}

// LogAttrs returns log attributes for the dupfinder configuration
func (d *Dupfinder) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("url", d.url),
		slog.Bool("api_key_set", d.apiKey != ""),
	}
}

// Configure creates a duplicate advisor client from the configured flags.
// Returns nil if no URL is set (duplicate advisory is disabled).
func (d *Dupfinder) Configure() (interfaces.DuplicateAdvisor, error) {
	if d.url == "" {
		return nil, nil
	}

	var opts []dupfinder.Option
	if d.apiKey != "" {
		opts = append(opts, dupfinder.WithAPIKey(d.apiKey))
	}

	client, err := dupfinder.New(d.url, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create dupfinder client", goerr.V(EndpointKey, d.url))
	}

	return client, nil
}
