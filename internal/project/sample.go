package project

import (
	"time"

	"github.com/klimeurt/portfolio-collector/internal/models"
)

// SampleProjects returns the fixed placeholder projects shown while GitHub
// is rate limiting us. Every ID is prefixed with "sample-".
func SampleProjects() []models.Project {
	return []models.Project{
		{
			ID:           "sample-portfolio",
			Name:         "portfolio",
			Description:  "Personal portfolio site listing open source work",
			Technologies: []string{"TypeScript", "React", "Vite", "Tailwind CSS"},
			GitHubURL:    "https://github.com/",
			Featured:     true,
			LastUpdated:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt:    time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "sample-api",
			Name:         "api-service",
			Description:  "REST API with background workers",
			Technologies: []string{"Go", "PostgreSQL", "Docker"},
			GitHubURL:    "https://github.com/",
			Featured:     true,
			LastUpdated:  time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			CreatedAt:    time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "sample-scripts",
			Name:         "scripts",
			Description:  PlaceholderDescription,
			Technologies: []string{"Python"},
			GitHubURL:    "https://github.com/",
			Featured:     false,
			LastUpdated:  time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
			CreatedAt:    time.Date(2022, 6, 3, 0, 0, 0, 0, time.UTC),
		},
	}
}
