// Package site holds the static biography and contact content shown next to
// the project list.
package site

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/klimeurt/portfolio-collector/internal/models"
	"gopkg.in/yaml.v2"
)

// Contact is one way of reaching the portfolio owner.
type Contact struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Link  string `yaml:"link" json:"link,omitempty"`
	// External is set by Load for http(s) links.
	External bool `yaml:"-" json:"external"`
}

// Content is the static part of the portfolio.
type Content struct {
	Name      string    `yaml:"name" json:"name"`
	Headline  string    `yaml:"headline" json:"headline"`
	About     []string  `yaml:"about" json:"about"`
	ResumeURL string    `yaml:"resume_url" json:"resumeUrl,omitempty"`
	AvatarURL string    `yaml:"avatar_url" json:"avatarUrl,omitempty"`
	Contacts  []Contact `yaml:"contacts" json:"contacts"`
}

// Load reads content from a YAML file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site content: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content and marks external contact links.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}

	for i := range c.Contacts {
		c.Contacts[i].External = isExternal(c.Contacts[i].Link)
	}
	if c.About == nil {
		c.About = []string{}
	}
	if c.Contacts == nil {
		c.Contacts = []Contact{}
	}
	return &c, nil
}

func isExternal(link string) bool {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResolveAvatar picks the portrait to show: the configured override, then
// the GitHub avatar, then a generated initials image. Both arguments may be nil.
func ResolveAvatar(content *Content, profile *models.Profile) string {
	if content != nil && content.AvatarURL != "" {
		return content.AvatarURL
	}
	if profile != nil && profile.AvatarURL != "" {
		return profile.AvatarURL
	}

	name := ""
	switch {
	case content != nil && content.Name != "":
		name = content.Name
	case profile != nil && profile.Name != "":
		name = profile.Name
	case profile != nil:
		name = profile.Login
	}
	return generatedAvatar(name)
}

func generatedAvatar(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "10b981")
	q.Set("color", "ffffff")
	q.Set("size", "320")
	q.Set("bold", "true")
	return "https://ui-avatars.com/api/?" + q.Encode()
}
