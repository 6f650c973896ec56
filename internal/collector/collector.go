// Package collector runs the project pipeline and publishes each result as a
// snapshot on NATS.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klimeurt/portfolio-collector/internal/config"
	"github.com/klimeurt/portfolio-collector/internal/models"
	"github.com/klimeurt/portfolio-collector/internal/project"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Source is what a collection run reads from GitHub.
type Source interface {
	project.Source
	GetUserProfile(ctx context.Context, owner string) (*models.Profile, bool)
}

// Collector handles scheduled collection runs
type Collector struct {
	config   *config.Config
	source   Source
	pipeline *project.Pipeline
	nc       *nats.Conn
	logger   *zap.Logger
}

// New creates a new Collector instance
func New(cfg *config.Config, source Source, logger *zap.Logger) (*Collector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Connect to NATS
	nc, err := nats.Connect(cfg.NATSUrl, nats.Name("portfolio-collector"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	pipeline := project.New(source, project.Options{
		Owner:          cfg.GitHubUsername,
		Excluded:       cfg.ExcludedRepos,
		Concurrency:    cfg.EnrichConcurrency,
		SampleFallback: cfg.SampleDataFallback,
	}, logger)

	return &Collector{
		config:   cfg,
		source:   source,
		pipeline: pipeline,
		nc:       nc,
		logger:   logger,
	}, nil
}

// Collect runs the pipeline, fetches the owner's profile and publishes the
// snapshot. Listing failures are published too, as a failed Result, so the
// API can show them. Nothing is published when ctx ends first.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	runID := uuid.NewString()
	c.logger.Info("Starting collection run",
		zap.String("run_id", runID),
		zap.String("owner", c.config.GitHubUsername))

	result := c.pipeline.Load(ctx)
	profile, _ := c.source.GetUserProfile(ctx, c.config.GitHubUsername)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection run %s aborted: %w", runID, err)
	}

	snapshot := &Snapshot{
		RunID:       runID,
		Owner:       c.config.GitHubUsername,
		GeneratedAt: time.Now().UTC(),
		Projects:    result,
		Profile:     profile,
	}

	if err := c.publish(snapshot); err != nil {
		return nil, err
	}

	c.logger.Info("Collection run completed",
		zap.String("run_id", runID),
		zap.Int("projects", len(result.Data)),
		zap.Bool("sample", result.Sample),
		zap.String("error", result.Err()))
	return snapshot, nil
}

// publish sends a snapshot to the NATS subject
func (c *Collector) publish(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	msg := nats.NewMsg(c.config.NATSSubject)
	msg.Header.Set(nats.MsgIdHdr, snapshot.RunID)
	msg.Data = data

	if err := c.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}
	if err := c.nc.Flush(); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	c.logger.Debug("Published snapshot",
		zap.String("subject", c.config.NATSSubject),
		zap.String("run_id", snapshot.RunID),
		zap.Int("bytes", len(data)))
	return nil
}

// Close cleanly shuts down the collector
func (c *Collector) Close() {
	if c.nc != nil {
		c.nc.Close()
	}
}
