package project

import (
	"strings"

	"github.com/klimeurt/portfolio-collector/internal/models"
)

// MaxDetectedTechnologies caps the language-stats tier.
const MaxDetectedTechnologies = 6

var languageNames = map[string]string{
	"typescript": "TypeScript",
	"javascript": "JavaScript",
	"python":     "Python",
	"java":       "Java",
	"go":         "Go",
	"rust":       "Rust",
	"c":          "C",
	"c++":        "C++",
	"html":       "HTML",
	"css":        "CSS",
	"scss":       "SASS",
}

// Matched as substrings of the lowercased "name description" text.
var keywords = []struct {
	needles []string
	name    string
}{
	{[]string{"react"}, "React"},
	{[]string{"vue"}, "Vue.js"},
	{[]string{"angular"}, "Angular"},
	{[]string{"svelte"}, "Svelte"},
	{[]string{"next"}, "Next.js"},
	{[]string{"nuxt"}, "Nuxt.js"},
	{[]string{"vite"}, "Vite"},
	{[]string{"webpack"}, "Webpack"},
	{[]string{"tailwind"}, "Tailwind CSS"},
	{[]string{"bootstrap"}, "Bootstrap"},
	{[]string{"node"}, "Node.js"},
	{[]string{"express"}, "Express.js"},
	{[]string{"fastapi"}, "FastAPI"},
	{[]string{"django"}, "Django"},
	{[]string{"flask"}, "Flask"},
	{[]string{"docker"}, "Docker"},
	{[]string{"k8s", "kubernetes"}, "Kubernetes"},
}

// DetectTechnologies maps language stats (largest first) to display names
// and adds frameworks and tools mentioned in the repository name or
// description. The result holds at most MaxDetectedTechnologies entries.
func DetectTechnologies(stats models.LanguageStats, name, description string) []string {
	var techs []string
	for _, lang := range stats.Names() {
		if display, ok := languageNames[strings.ToLower(lang)]; ok {
			techs = append(techs, display)
			continue
		}
		techs = append(techs, lang)
	}

	content := strings.ToLower(name + " " + description)
	for _, kw := range keywords {
		for _, needle := range kw.needles {
			if strings.Contains(content, needle) {
				techs = append(techs, kw.name)
				break
			}
		}
	}

	return dedupe(techs, MaxDetectedTechnologies)
}
