package badge

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
)

// technologies is the whitelist of known technology names, lower case.
var technologies = []string{
	// languages
	"python", "javascript", "typescript", "java", "go", "golang", "rust", "c", "c++", "c#",
	"ruby", "php", "kotlin", "swift", "scala", "dart", "elixir", "erlang", "haskell", "lua",
	"perl", "r", "julia", "shell", "bash", "powershell", "objective-c", "html", "html5", "css",
	"css3", "sql", "solidity", "zig", "clojure", "f#", "ocaml", "groovy", "matlab", "assembly",
	"webassembly",
	// frameworks and runtimes
	"react", "vue", "vue.js", "angular", "svelte", "sveltekit", "next.js", "nuxt.js", "remix",
	"astro", "gatsby", "ember.js", "jquery", "express", "express.js", "node.js", "nestjs",
	"fastify", "koa", "deno", "bun", "django", "flask", "fastapi", "spring", "spring boot",
	"ruby on rails", "rails", "laravel", "symfony", "asp.net", ".net", "dotnet", "gin", "echo",
	"fiber", "phoenix", "electron", "tauri", "redux", "apollo", "prisma", "htmx", "three.js",
	"d3.js", "socket.io",
	// databases
	"postgresql", "postgres", "mysql", "mariadb", "sqlite", "mongodb", "redis", "elasticsearch",
	"cassandra", "dynamodb", "firebase", "firestore", "supabase", "neo4j", "couchdb", "influxdb",
	"clickhouse", "cockroachdb", "oracle", "sql server",
	// cloud and devops
	"docker", "kubernetes", "helm", "terraform", "ansible", "aws", "azure", "google cloud", "gcp",
	"heroku", "vercel", "netlify", "cloudflare", "nginx", "jenkins", "github actions", "linux",
	"ubuntu", "prometheus", "grafana", "kafka", "rabbitmq", "nats",
	// testing
	"jest", "mocha", "chai", "cypress", "playwright", "selenium", "pytest", "junit", "vitest",
	"testing library", "puppeteer",
	// mobile
	"react native", "flutter", "ionic", "xamarin", "android", "ios", "swiftui", "jetpack compose",
	"expo",
	// styling
	"tailwind", "tailwind css", "tailwindcss", "bootstrap", "sass", "scss", "less",
	"styled components", "material ui", "mui", "chakra ui", "bulma", "postcss",
	// build tools
	"webpack", "vite", "rollup", "parcel", "babel", "esbuild", "gulp", "grunt", "npm", "yarn",
	"pnpm", "maven", "gradle", "cmake", "turborepo",
	// data science and machine learning
	"numpy", "pandas", "scikit-learn", "tensorflow", "pytorch", "keras", "jupyter", "matplotlib",
	"seaborn", "opencv", "hugging face", "langchain", "openai", "spark", "hadoop", "scipy",
	"plotly",
	// game engines
	"unity", "unreal engine", "godot", "pygame", "phaser", "bevy",
	// protocols
	"rest", "rest api", "graphql", "grpc", "websocket", "websockets", "mqtt", "oauth", "jwt",
	"openapi", "swagger",
	// dev tooling
	"git", "github", "gitlab", "vscode", "visual studio code", "storybook", "postman", "figma",
	"vim", "neovim",
}

// genericExact are generic badge labels only rejected on an exact match,
// since they are too short to search for inside other labels.
var genericExact = []string{
	"ci", "cd", "ci/cd", "pr", "prs", "mit", "gpl", "bsd", "test", "chat", "pypi", "docs",
	"reference", "documentation", "godoc",
}

// genericSubstrings reject any label containing them.
var genericSubstrings = []string{
	"license", "licence",
	"build", "passing", "failing",
	"tests", "test status", "coverage", "codecov", "coveralls",
	"code quality", "quality gate", "codacy", "code climate", "sonar", "report card",
	"code style", "lint",
	"pipeline", "deploy", "workflow", "status",
	"version", "release", "download",
	"stars", "forks", "issues", "pull request", "contributors", "last commit",
	"commit activity", "code size", "repo size",
	"security", "audit", "vulnerabilit", "dependabot", "snyk",
	"maintained", "maintenance", "stability",
	"sponsor", "donate", "discord", "gitter", "twitter", "visitors",
}

// languagePrefixes mark a label as a technology when it starts with one of
// them followed by a non-letter, e.g. "Python3 ready" or "Rust (nightly)".
var languagePrefixes = []string{
	"javascript", "typescript", "python", "golang", "kotlin", "swift", "scala", "rust",
	"ruby", "java", "dart", "php", "c++", "c#", "go",
}

var (
	frameworkWordRe = regexp.MustCompile(`(?i)^[a-z0-9][\w.+#-]*\s+(framework|library|tool|sdk|api)$`)
	versionishRe    = regexp.MustCompile(`^[vV]?\d`)
	normalizeRe     = regexp.MustCompile(`[.\s-]+`)
)

// maxAffix bounds how much a label may add around a known name and still
// count as that name ("reactjs", "python3").
const maxAffix = 3

// IsTechnology reports whether label names a technology rather than generic
// repository metadata. The blacklist always wins over the whitelist.
func IsTechnology(label string) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return false
	}
	if isGeneric(lower) {
		return false
	}
	return isKnownTechnology(lower) || looksLikeTechnology(lower)
}

func isGeneric(lower string) bool {
	for _, term := range genericExact {
		if lower == term {
			return true
		}
	}
	for _, term := range genericSubstrings {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func isKnownTechnology(lower string) bool {
	norm := normalize(lower)
	for _, tech := range technologies {
		if lower == tech {
			return true
		}
		techNorm := normalize(tech)
		if norm == techNorm {
			return true
		}
		if strings.Contains(tech, " ") && strings.Contains(lower, tech) {
			return true
		}
		if len(techNorm) >= 3 && len(norm)-len(techNorm) <= maxAffix &&
			(strings.HasPrefix(norm, techNorm) || strings.HasSuffix(norm, techNorm)) {
			return true
		}
	}
	return false
}

func looksLikeTechnology(lower string) bool {
	if isVersion(lower) {
		return true
	}
	if fields := strings.Fields(lower); len(fields) == 2 && isVersion(fields[1]) {
		return true
	}
	if frameworkWordRe.MatchString(lower) {
		return true
	}
	for _, lang := range languagePrefixes {
		if !strings.HasPrefix(lower, lang) {
			continue
		}
		rest := lower[len(lang):]
		if rest == "" {
			return true
		}
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isVersion(s string) bool {
	if !versionishRe.MatchString(s) {
		return false
	}
	_, err := semver.NewVersion(s)
	return err == nil
}

func normalize(s string) string {
	return normalizeRe.ReplaceAllString(s, "")
}
