package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/civic-lab/fixpoint/pkg/cli/config"
	controller "github.com/civic-lab/fixpoint/pkg/controller/http"
	"github.com/civic-lab/fixpoint/pkg/usecase"
	"github.com/civic-lab/fixpoint/pkg/utils/async"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		dbCfg      config.Database
		weightsCfg config.Weights
	)

	flags := joinFlags(
		serverCfg.Flags(),
		dbCfg.Flags(),
		weightsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Get logger from root command metadata
			logger := ctxlog.From(ctx)

			logger.Info("Starting fixpoint server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("database", dbCfg),
				slog.Bool("persistent", dbCfg.IsConfigured()),
			)

			// Create repository using config
			repo, err := dbCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			// Create scoring engine using config
			engine, err := weightsCfg.Configure()
			if err != nil {
				return err
			}

			// Create use cases
			issueUC := usecase.NewIssue(repo, engine)
			voteUC := usecase.NewVote(repo, engine)
			simulateUC := usecase.NewSimulate(engine)

			// Create HTTP server
			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				issueUC,
				voteUC,
				simulateUC,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in background
			async.Dispatch(ctx, func(ctx context.Context) error {
				ctxlog.From(ctx).Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "HTTP server error")
				}
				return nil
			})

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
