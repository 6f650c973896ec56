package project

import "github.com/klimeurt/portfolio-collector/internal/models"

// Result is the state handed to the presentation layer. Exactly one of
// IsLoading, Data or Error is set; Data is an empty, non-nil slice when the
// owner has nothing to show.
type Result struct {
	Data      []models.Project `json:"data"`
	IsLoading bool             `json:"isLoading"`
	Error     *string          `json:"error"`
	// Sample marks Data as placeholder content rather than real projects.
	Sample bool `json:"sample"`
}

// Loading is the state before the first collection finishes.
func Loading() Result {
	return Result{IsLoading: true}
}

// Loaded wraps a successful collection.
func Loaded(projects []models.Project) Result {
	if projects == nil {
		projects = []models.Project{}
	}
	return Result{Data: projects}
}

// Sampled wraps placeholder projects.
func Sampled(projects []models.Project) Result {
	r := Loaded(projects)
	r.Sample = true
	return r
}

// Failed wraps a collection error.
func Failed(err error) Result {
	msg := err.Error()
	return Result{Error: &msg}
}

// Err returns the error message, or "" when the result has none.
func (r Result) Err() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
