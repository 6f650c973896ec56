package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klimeurt/portfolio-collector/internal/collector"
	"github.com/klimeurt/portfolio-collector/internal/config"
	"github.com/klimeurt/portfolio-collector/internal/github"
	"github.com/klimeurt/portfolio-collector/internal/logging"
	"github.com/klimeurt/portfolio-collector/internal/project"
	"github.com/klimeurt/portfolio-collector/internal/server"
	"github.com/klimeurt/portfolio-collector/internal/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	serviceName    = "portfolio-collector"
	collectTimeout = 5 * time.Minute
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "GitHub repositories → portfolio projects",
		SilenceUsage: true,
	}

	root.AddCommand(collectCmd(), serveCmd(), projectsCmd(), profileCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func collectCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect projects on a schedule and publish snapshots to NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			c, err := newCollector(cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			if once {
				return runCollection(c, logger)
			}

			scheduler, err := startScheduler(cfg, c, logger)
			if err != nil {
				return err
			}

			// Wait for interrupt signal
			waitForSignal()
			logger.Info("Shutting down...")
			<-scheduler.Stop().Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Run a single collection and exit")
	return cmd
}

func serveCmd() *cobra.Command {
	var withCollector bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest snapshot over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(withCollector)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Environment == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			content, err := site.Load(cfg.SiteContentFile)
			if err != nil {
				logger.Warn("Site content unavailable", zap.Error(err))
			}

			store := server.NewStore()
			subscriber, err := server.NewSubscriber(cfg, store, logger)
			if err != nil {
				return err
			}
			if err := subscriber.Start(); err != nil {
				subscriber.Stop()
				return err
			}
			defer subscriber.Stop()

			if withCollector {
				c, err := newCollector(cfg, logger)
				if err != nil {
					return err
				}
				defer c.Close()

				scheduler, err := startScheduler(cfg, c, logger)
				if err != nil {
					return err
				}
				defer func() { <-scheduler.Stop().Done() }()
			}

			router := server.BuildRouter(server.RouterDeps{
				ServiceName:    serviceName,
				Version:        version,
				Store:          store,
				Site:           content,
				Broker:         subscriber,
				AllowedOrigins: cfg.AllowedOrigins,
				Logger:         logger,
			})

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("HTTP server failed: %w", err)
				}
			case <-sigChan:
				logger.Info("Received shutdown signal, stopping server...")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().BoolVar(&withCollector, "collect", false, "Also run the scheduled collector in this process")
	return cmd
}

func projectsCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Collect projects once and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := newGitHubClient(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			pipeline := project.New(client, project.Options{
				Owner:          cfg.GitHubUsername,
				Excluded:       cfg.ExcludedRepos,
				Concurrency:    cfg.EnrichConcurrency,
				SampleFallback: cfg.SampleDataFallback,
			}, logger)

			result := pipeline.Load(ctx)
			if err := printJSON(cmd, result); err != nil {
				return err
			}
			if result.Error != nil {
				return errors.New(*result.Error)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", collectTimeout, "Give up after this long")
	return cmd
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the GitHub profile as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := newGitHubClient(cfg, logger)
			if err != nil {
				return err
			}

			profile, ok := client.GetUserProfile(context.Background(), cfg.GitHubUsername)
			if !ok {
				return fmt.Errorf("profile for %s not available", cfg.GitHubUsername)
			}
			return printJSON(cmd, profile)
		},
	}
}

// setup loads configuration and builds the logger. GitHub settings are
// validated only for commands that talk to GitHub.
func setup(needsGitHub bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if needsGitHub {
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newGitHubClient(cfg *config.Config, logger *zap.Logger) (*github.Client, error) {
	return github.New(github.Options{
		BaseURL:           cfg.GitHubAPIURL,
		Token:             cfg.GitHubToken,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, logger)
}

func newCollector(cfg *config.Config, logger *zap.Logger) (*collector.Collector, error) {
	client, err := newGitHubClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	c, err := collector.New(cfg, client, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create collector: %w", err)
	}
	return c, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
