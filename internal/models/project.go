package models

import "time"

// Project is a display-ready portfolio entry built from one repository.
// Field names follow the presentation layer's JSON contract.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	GitHubURL    string    `json:"githubUrl"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	Featured     bool      `json:"featured"`
	LastUpdated  time.Time `json:"lastUpdated"`
	CreatedAt    time.Time `json:"createdAt"`
}
