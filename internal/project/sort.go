package project

import (
	"sort"

	"github.com/klimeurt/portfolio-collector/internal/models"
)

// Sort orders projects featured first, then newest created first. Equal
// projects keep their relative order.
func Sort(projects []models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
