// Package badge extracts technology badges from README markdown.
//
// Extraction is pure: the same README always yields the same badges in the
// same order. Generic repository badges (license, build status, coverage,
// download counters and the like) are discarded so only labels describing a
// technology remain.
package badge

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxBadges is the maximum number of badges Extract returns.
const MaxBadges = 10

// Badge is a technology tag found in a README.
type Badge struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	URL   string `json:"url,omitempty"`
}

var (
	// [![label](image)](link)
	linkedBadgeRe = regexp.MustCompile(`\[!\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)`)
	// ![label](image)
	imageBadgeRe = regexp.MustCompile(`!\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)`)
)

// badgeHosts are the image hosts that render badges.
var badgeHosts = []string{
	"img.shields.io",
	"shields.io",
	"badgen.net",
	"badge.fury.io",
	"forthebadge.com",
}

type candidate struct {
	label string
	image string
	link  string
}

// Extract returns the technology badges found in readme, in extraction order.
func Extract(readme string) []Badge {
	found := newOrderedBadges()

	for _, m := range linkedBadgeRe.FindAllStringSubmatch(readme, -1) {
		found.add(candidate{label: m[1], image: m[2], link: m[3]})
	}
	for _, m := range imageBadgeRe.FindAllStringSubmatch(readme, -1) {
		if !isBadgeHost(m[2]) {
			continue
		}
		found.add(candidate{label: m[1], image: m[2]})
	}

	badges := make([]Badge, 0, MaxBadges)
	for _, c := range found.list() {
		if len(badges) == MaxBadges {
			break
		}
		if len([]rune(c.label)) <= 1 || !IsTechnology(c.label) {
			continue
		}
		badges = append(badges, Badge{
			Text:  c.label,
			Color: Color(c.image),
			URL:   c.link,
		})
	}
	return badges
}

// Labels returns the text of each badge.
func Labels(badges []Badge) []string {
	labels := make([]string, len(badges))
	for i, b := range badges {
		labels[i] = b.Text
	}
	return labels
}

// orderedBadges keeps the first candidate seen for each label, in insertion order.
type orderedBadges struct {
	keys   []string
	byName map[string]candidate
}

func newOrderedBadges() *orderedBadges {
	return &orderedBadges{byName: make(map[string]candidate)}
}

func (o *orderedBadges) add(c candidate) {
	c.label = strings.TrimSpace(c.label)
	if c.label == "" {
		c.label = labelFromShieldsURL(c.image)
	}
	if c.label == "" {
		return
	}
	key := strings.ToLower(c.label)
	if _, seen := o.byName[key]; seen {
		return
	}
	o.keys = append(o.keys, key)
	o.byName[key] = c
}

func (o *orderedBadges) list() []candidate {
	out := make([]candidate, len(o.keys))
	for i, k := range o.keys {
		out[i] = o.byName[k]
	}
	return out
}

func isBadgeHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range badgeHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// labelFromShieldsURL reads the label out of a static shields badge path,
// /badge/<label>-<message>-<color>, where "--" is a literal dash and "_" a space.
func labelFromShieldsURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	idx := strings.Index(u.Path, "/badge/")
	if idx < 0 {
		return ""
	}
	segment := u.Path[idx+len("/badge/"):]
	segment = strings.ReplaceAll(segment, "--", "\x00")
	label := strings.SplitN(segment, "-", 2)[0]
	label = strings.ReplaceAll(label, "\x00", "-")
	label = strings.ReplaceAll(label, "__", "\x00")
	label = strings.ReplaceAll(label, "_", " ")
	label = strings.ReplaceAll(label, "\x00", "_")
	return strings.TrimSpace(label)
}
