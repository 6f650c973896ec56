package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/klimeurt/portfolio-collector/internal/collector"
	"github.com/klimeurt/portfolio-collector/internal/config"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subscriber feeds snapshots published by the collector into a Store
type Subscriber struct {
	config *config.Config
	store  *Store
	nc     *nats.Conn
	sub    *nats.Subscription
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewSubscriber creates a new Subscriber instance
func NewSubscriber(cfg *config.Config, store *Store, logger *zap.Logger) (*Subscriber, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Connect to NATS
	nc, err := nats.Connect(cfg.NATSUrl, nats.Name("portfolio-server"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Subscriber{
		config: cfg,
		store:  store,
		nc:     nc,
		logger: logger,
	}, nil
}

// Start subscribes to the snapshot subject
func (s *Subscriber) Start() error {
	s.logger.Info("Subscribing to snapshots", zap.String("subject", s.config.NATSSubject))

	sub, err := s.nc.Subscribe(s.config.NATSSubject, func(msg *nats.Msg) {
		s.wg.Add(1)
		defer s.wg.Done()

		if err := s.handle(msg); err != nil {
			s.logger.Error("Error processing snapshot", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.config.NATSSubject, err)
	}

	s.sub = sub
	return nil
}

// handle decodes a snapshot message and stores it
func (s *Subscriber) handle(msg *nats.Msg) error {
	var snapshot collector.Snapshot
	if err := json.Unmarshal(msg.Data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot message: %w", err)
	}

	if !s.store.Update(&snapshot) {
		s.logger.Warn("Discarded out-of-order snapshot",
			zap.String("run_id", snapshot.RunID),
			zap.Time("generated_at", snapshot.GeneratedAt))
		return nil
	}

	s.logger.Info("Stored snapshot",
		zap.String("run_id", snapshot.RunID),
		zap.Int("projects", len(snapshot.Projects.Data)),
		zap.Bool("sample", snapshot.Projects.Sample))
	return nil
}

// Connected reports whether the NATS connection is up.
func (s *Subscriber) Connected() bool {
	return s.nc != nil && s.nc.IsConnected()
}

// Stop gracefully shuts down the subscriber
func (s *Subscriber) Stop() {
	s.logger.Info("Stopping snapshot subscriber")

	// Unsubscribe from NATS
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.logger.Warn("Failed to unsubscribe", zap.Error(err))
		}
	}

	// Wait for in-flight handlers to finish
	s.wg.Wait()

	// Close NATS connection
	if s.nc != nil {
		s.nc.Close()
	}
}
