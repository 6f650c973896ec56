package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klimeurt/portfolio-collector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContent = `name: Ada Example
headline: Backend engineer
about:
  - Builds data pipelines.
  - Likes Go.
resume_url: /resume.pdf
contacts:
  - label: Email
    value: ada@example.com
    link: mailto:ada@example.com
  - label: GitHub
    value: ada
    link: https://github.com/ada
  - label: Location
    value: Lisbon
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testContent), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Ada Example", c.Name)
	assert.Equal(t, "Backend engineer", c.Headline)
	assert.Equal(t, []string{"Builds data pipelines.", "Likes Go."}, c.About)
	assert.Equal(t, "/resume.pdf", c.ResumeURL)
	assert.Equal(t, []Contact{
		{Label: "Email", Value: "ada@example.com", Link: "mailto:ada@example.com"},
		{Label: "GitHub", Value: "ada", Link: "https://github.com/ada", External: true},
		{Label: "Location", Value: "Lisbon"},
	}, c.Contacts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read site content")
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("about: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse site content")
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.NotNil(t, c.About)
	assert.NotNil(t, c.Contacts)
}

func TestResolveAvatar(t *testing.T) {
	profile := &models.Profile{Login: "ada", Name: "Ada GitHub", AvatarURL: "https://avatars.githubusercontent.com/u/1"}

	tests := []struct {
		name    string
		content *Content
		profile *models.Profile
		want    string
	}{
		{
			name:    "override wins",
			content: &Content{AvatarURL: "https://cdn.example.com/me.png"},
			profile: profile,
			want:    "https://cdn.example.com/me.png",
		},
		{
			name:    "github avatar",
			content: &Content{Name: "Ada Example"},
			profile: profile,
			want:    "https://avatars.githubusercontent.com/u/1",
		},
		{
			name:    "generated from content name",
			content: &Content{Name: "Ada Example"},
			want:    "https://ui-avatars.com/api/?background=10b981&bold=true&color=ffffff&name=Ada+Example&size=320",
		},
		{
			name:    "generated from login",
			profile: &models.Profile{Login: "ada"},
			want:    "https://ui-avatars.com/api/?background=10b981&bold=true&color=ffffff&name=ada&size=320",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAvatar(tt.content, tt.profile))
		})
	}
}
