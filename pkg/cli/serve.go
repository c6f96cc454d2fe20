package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	toolitsm "github.com/remedian-lab/remedian/pkg/agent/tool/itsm"
	"github.com/remedian-lab/remedian/pkg/cli/config"
	httpctrl "github.com/remedian-lab/remedian/pkg/controller/http"
	"github.com/remedian-lab/remedian/pkg/service/staging"
	"github.com/remedian-lab/remedian/pkg/service/validate"
	"github.com/remedian-lab/remedian/pkg/usecase"
	"github.com/remedian-lab/remedian/pkg/utils/logging"
)

const sweepInterval = time.Minute

func cmdServe() *cli.Command {
	var addr string
	var engineCfg config.Engine
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var dupfinderCfg config.Dupfinder
	var itsmCfg config.ITSM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("REMEDIAN_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, dupfinderCfg.Flags()...)
	flags = append(flags, itsmCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Resolve the engine policy first so a bad policy fails fast
			limiter, confirmOpts, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure confirmation engine")
			}
			logging.Default().LogAttrs(ctx, slog.LevelInfo, "Engine policy resolved", engineCfg.LogAttrs()...)

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// The ITSM adapter executes confirmed actions and is mandatory
			executor, err := itsmCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure ITSM adapter")
			}

			// Duplicate advisory degrades gracefully when unconfigured
			advisor, err := dupfinderCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure duplicate advisor")
			}
			if advisor != nil {
				logging.Default().Info("Duplicate advisory enabled")
			} else {
				logging.Default().Info("Duplicate advisory not configured, staging without similarity warnings")
			}

			var ucOpts []usecase.Option
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLMClient(llmClient))
				logging.Default().Info("Chat agent enabled")
			} else {
				logging.Default().Info("Gemini not configured, chat agent disabled")
			}

			uc := usecase.New(
				repo,
				staging.NewStore(),
				limiter,
				validate.New(),
				advisor,
				executor,
				confirmOpts,
				ucOpts...,
			)
			if uc.Agent != nil {
				uc.Agent.SetToolFactory(func(confirmation *usecase.ConfirmationUseCase, sessionID, userID string) []gollem.Tool {
					return toolitsm.New(confirmation, advisor, sessionID, userID)
				})
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, repo),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(sigCtx)

			g.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			// Expired actions are rejected lazily; the sweeper only reclaims memory
			g.Go(func() error {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-gctx.Done():
						return nil
					case <-ticker.C:
						uc.Confirmation.SweepExpired(gctx)
					}
				}
			})

			g.Go(func() error {
				<-gctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
