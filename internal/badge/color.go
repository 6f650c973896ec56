package badge

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// DefaultColor is used when a badge URL carries no usable color.
const DefaultColor = "#007ec6"

var namedColors = map[string]string{
	"blue":        "#007ec6",
	"green":       "#4c1",
	"brightgreen": "#4c1",
	"success":     "#4c1",
	"red":         "#e05d44",
	"critical":    "#e05d44",
	"orange":      "#fe7d37",
	"important":   "#fe7d37",
	"yellow":      "#dfb317",
	"lightgrey":   "#9f9f9f",
}

// ecosystemColors is checked in order; javascript must precede java.
var ecosystemColors = []struct {
	needle string
	color  string
}{
	{"python", "#3776ab"},
	{"javascript", "#f7df1e"},
	{"typescript", "#3178c6"},
	{"react", "#61dafb"},
	{"vue", "#4fc08d"},
	{"java", "#ed8b00"},
	{"docker", "#2496ed"},
}

var hexColorRe = regexp.MustCompile(`^[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)

// Color derives the display color of a badge from its image URL.
func Color(imageURL string) string {
	if hex, ok := resolveColor(colorToken(imageURL)); ok {
		return hex
	}
	lower := strings.ToLower(imageURL)
	for _, e := range ecosystemColors {
		if strings.Contains(lower, e.needle) {
			return e.color
		}
	}
	return DefaultColor
}

// colorToken returns the color= query value, or the trailing -<token> of the
// last path segment.
func colorToken(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	if c := u.Query().Get("color"); c != "" {
		return c
	}
	segment := path.Base(u.Path)
	for _, ext := range []string{".svg", ".png", ".json"} {
		segment = strings.TrimSuffix(segment, ext)
	}
	idx := strings.LastIndex(segment, "-")
	if idx < 0 {
		return ""
	}
	return segment[idx+1:]
}

func resolveColor(token string) (string, bool) {
	token = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(token)), "#")
	if token == "" {
		return "", false
	}
	if hex, ok := namedColors[token]; ok {
		return hex, true
	}
	if hexColorRe.MatchString(token) {
		return "#" + token, true
	}
	return "", false
}
