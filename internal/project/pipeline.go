// Package project turns repositories into display-ready portfolio projects.
package project

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/klimeurt/portfolio-collector/internal/badge"
	"github.com/klimeurt/portfolio-collector/internal/github"
	"github.com/klimeurt/portfolio-collector/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency bounds parallel per-repository enrichment.
	DefaultConcurrency = 5
	// MaxTechnologies caps the technologies shown for one project.
	MaxTechnologies = 10
	// FeaturedStars is the star count a repository must exceed to be featured.
	FeaturedStars = 5
	// PlaceholderDescription stands in for a missing repository description.
	PlaceholderDescription = "No description provided"
)

// Source is the subset of the GitHub client the pipeline reads from.
type Source interface {
	ListRepositories(ctx context.Context, owner string, excluded []string) ([]models.Repository, error)
	GetLanguages(ctx context.Context, repo models.Repository) models.LanguageStats
	GetReadme(ctx context.Context, repo models.Repository) (string, bool)
}

// Options configures a Pipeline.
type Options struct {
	Owner    string
	Excluded []string
	// Concurrency defaults to DefaultConcurrency when not positive.
	Concurrency int
	// SampleFallback makes Load substitute sample projects when the
	// repository listing is rate limited.
	SampleFallback bool
}

// Strategy is one tier of technology resolution. Resolve reports false when
// the tier has nothing to offer and the next one should be tried.
type Strategy struct {
	Name    string
	Resolve func(ctx context.Context, repo models.Repository) ([]string, bool)
}

// Pipeline lists repositories and enriches each into a Project.
type Pipeline struct {
	source     Source
	opts       Options
	logger     *zap.Logger
	strategies []Strategy
}

// New creates a new Pipeline instance
func New(source Source, opts Options, logger *zap.Logger) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		source: source,
		opts:   opts,
		logger: logger,
	}
	p.strategies = []Strategy{
		{Name: "readme-badges", Resolve: p.fromReadme},
		{Name: "language-stats", Resolve: p.fromLanguages},
		{Name: "primary-language", Resolve: fromPrimaryLanguage},
	}
	return p
}

// Strategies returns the technology resolution tiers in the order they are tried.
func (p *Pipeline) Strategies() []Strategy {
	return p.strategies
}

// Run lists the owner's repositories, enriches them concurrently and returns
// the sorted projects. Listing errors are returned as is. If ctx is cancelled
// while enriching, partial results are discarded and ctx's error is returned.
func (p *Pipeline) Run(ctx context.Context) ([]models.Project, error) {
	p.logger.Info("Starting project collection", zap.String("owner", p.opts.Owner))

	repos, err := p.source.ListRepositories(ctx, p.opts.Owner, p.opts.Excluded)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			projects[i] = p.enrich(gctx, repo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	Sort(projects)

	p.logger.Info("Project collection completed",
		zap.String("owner", p.opts.Owner),
		zap.Int("projects", len(projects)))
	return projects, nil
}

// Load runs the pipeline and folds the outcome into a Result. A rate-limited
// listing yields the sample projects when SampleFallback is set; any other
// error is surfaced without data.
func (p *Pipeline) Load(ctx context.Context) Result {
	projects, err := p.Run(ctx)
	if err == nil {
		return Loaded(projects)
	}

	var rateErr *github.RateLimitError
	if p.opts.SampleFallback && errors.As(err, &rateErr) {
		p.logger.Warn("Rate limited, serving sample projects", zap.Error(err))
		return Sampled(SampleProjects())
	}

	p.logger.Error("Project collection failed", zap.Error(err))
	return Failed(err)
}

func (p *Pipeline) enrich(ctx context.Context, repo models.Repository) models.Project {
	var techs []string
	for _, s := range p.strategies {
		if resolved, ok := s.Resolve(ctx, repo); ok {
			p.logger.Debug("Resolved technologies",
				zap.String("repo", repo.FullName),
				zap.String("strategy", s.Name),
				zap.Strings("technologies", resolved))
			techs = resolved
			break
		}
	}
	return assemble(repo, techs)
}

func (p *Pipeline) fromReadme(ctx context.Context, repo models.Repository) ([]string, bool) {
	readme, ok := p.source.GetReadme(ctx, repo)
	if !ok {
		return nil, false
	}
	badges := badge.Extract(readme)
	if len(badges) == 0 {
		return nil, false
	}
	return badge.Labels(badges), true
}

func (p *Pipeline) fromLanguages(ctx context.Context, repo models.Repository) ([]string, bool) {
	stats := p.source.GetLanguages(ctx, repo)
	description := ""
	if repo.Description != nil {
		description = *repo.Description
	}
	techs := DetectTechnologies(stats, repo.Name, description)
	return techs, len(techs) > 0
}

func fromPrimaryLanguage(_ context.Context, repo models.Repository) ([]string, bool) {
	if repo.Language == nil || *repo.Language == "" {
		return []string{}, true
	}
	return []string{*repo.Language}, true
}

// assemble builds the Project for a repository and its resolved technologies.
func assemble(repo models.Repository, techs []string) models.Project {
	description := PlaceholderDescription
	if repo.Description != nil && strings.TrimSpace(*repo.Description) != "" {
		description = *repo.Description
	}

	liveURL := ""
	if repo.Homepage != nil {
		liveURL = strings.TrimSpace(*repo.Homepage)
	}

	return models.Project{
		ID:           strconv.FormatInt(repo.ID, 10),
		Name:         repo.Name,
		Description:  description,
		Technologies: dedupe(techs, MaxTechnologies),
		GitHubURL:    repo.HTMLURL,
		LiveURL:      liveURL,
		Featured:     repo.Stars > FeaturedStars,
		LastUpdated:  repo.UpdatedAt,
		CreatedAt:    repo.CreatedAt,
	}
}

// dedupe drops case-insensitive duplicates and blanks, keeping first
// occurrences, and returns at most limit entries.
func dedupe(values []string, limit int) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
