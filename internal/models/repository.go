package models

import (
	"sort"
	"time"
)

// Repository represents a public GitHub repository as returned by the API
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Owner       string    `json:"owner"`
	Description *string   `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    *string   `json:"homepage"`
	Language    *string   `json:"language"`
	Stars       int       `json:"stargazers_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	Disabled    bool      `json:"disabled"`
	Private     bool      `json:"private"`
	Topics      []string  `json:"topics,omitempty"`
}

// LanguageStats maps a language name to the number of bytes written in it.
type LanguageStats map[string]int

// Names returns the languages ordered by byte count, largest first.
// Ties are broken by name so the order never depends on map iteration.
func (s LanguageStats) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s[names[i]] != s[names[j]] {
			return s[names[i]] > s[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Profile is the public profile of the portfolio owner
type Profile struct {
	Login       string  `json:"login"`
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Bio         *string `json:"bio"`
	AvatarURL   string  `json:"avatar_url"`
	HTMLURL     string  `json:"html_url"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}
