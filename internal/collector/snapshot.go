package collector

import (
	"time"

	"github.com/klimeurt/portfolio-collector/internal/models"
	"github.com/klimeurt/portfolio-collector/internal/project"
)

// Snapshot is one collection run as published on NATS
type Snapshot struct {
	RunID       string          `json:"run_id"`
	Owner       string          `json:"owner"`
	GeneratedAt time.Time       `json:"generated_at"`
	Projects    project.Result  `json:"projects"`
	Profile     *models.Profile `json:"profile,omitempty"`
}
