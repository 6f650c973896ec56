// Package github talks to the GitHub REST API on behalf of the portfolio.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/klimeurt/portfolio-collector/internal/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Options configures a Client.
type Options struct {
	// BaseURL of the REST API, e.g. https://api.github.com/
	BaseURL string
	// Token is optional; without it GitHub applies the anonymous rate limit.
	Token string
	// RequestsPerSecond paces outgoing requests when positive.
	RequestsPerSecond float64
}

// Client handles GitHub API operations for the portfolio
type Client struct {
	ghClient *gh.Client
	logger   *zap.Logger
}

// New creates a new Client instance
func New(opts Options, logger *zap.Logger) (*Client, error) {
	base := &http.Client{Transport: http.DefaultTransport}
	if opts.RequestsPerSecond > 0 {
		base.Transport = &limitedTransport{
			limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
			base:    http.DefaultTransport,
		}
	}

	httpClient := base
	if opts.Token != "" {
		// Create GitHub client with OAuth2 token
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	ghClient := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		ghClient.BaseURL = baseURL
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ghClient: ghClient,
		logger:   logger,
	}, nil
}

// ListRepositories returns the owner's public repositories in the API's
// most-recently-updated order, without forks, archived or disabled
// repositories, dot-prefixed names and names listed in excluded.
func (c *Client) ListRepositories(ctx context.Context, owner string, excluded []string) ([]models.Repository, error) {
	if owner == "" {
		return nil, errors.New("failed to list repositories: owner is required")
	}

	opt := &gh.RepositoryListByUserOptions{
		Type:        "public",
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	repos, _, err := c.ghClient.Repositories.ListByUser(ctx, owner, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", classify(err))
	}

	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	var out []models.Repository
	for _, repo := range repos {
		r := toRepository(repo, owner)
		if !Displayable(r, skip) {
			continue
		}
		out = append(out, r)
	}

	c.logger.Info("Listed repositories",
		zap.String("owner", owner),
		zap.Int("fetched", len(repos)),
		zap.Int("kept", len(out)))
	return out, nil
}

// Displayable reports whether a repository belongs on the portfolio.
func Displayable(r models.Repository, excluded map[string]bool) bool {
	return !r.Fork &&
		!excluded[r.Name] &&
		!strings.HasPrefix(r.Name, ".") &&
		!r.Archived &&
		!r.Disabled
}

// GetLanguages returns the language byte counts of a repository. Failures
// yield an empty map.
func (c *Client) GetLanguages(ctx context.Context, repo models.Repository) models.LanguageStats {
	owner, name := splitFullName(repo)
	langs, _, err := c.ghClient.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		c.logger.Debug("Language stats unavailable",
			zap.String("repo", repo.FullName),
			zap.Error(classify(err)))
		return models.LanguageStats{}
	}
	return models.LanguageStats(langs)
}

// GetReadme returns the decoded README of a repository. The second value is
// false when the repository has no README or it could not be read.
func (c *Client) GetReadme(ctx context.Context, repo models.Repository) (string, bool) {
	owner, name := splitFullName(repo)
	content, resp, err := c.ghClient.Repositories.GetReadme(ctx, owner, name, &gh.RepositoryContentGetOptions{})
	if err != nil {
		// Check if it's a 404 error (no README)
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", false
		}
		c.logger.Debug("README unavailable",
			zap.String("repo", repo.FullName),
			zap.Error(classify(err)))
		return "", false
	}

	// base64 is decoded; any other declared encoding is an error.
	text, err := content.GetContent()
	if err != nil {
		c.logger.Debug("README not decodable",
			zap.String("repo", repo.FullName),
			zap.String("encoding", content.GetEncoding()),
			zap.Error(err))
		return "", false
	}
	return text, true
}

// GetUserProfile returns the public profile of owner, or false when it
// cannot be fetched.
func (c *Client) GetUserProfile(ctx context.Context, owner string) (*models.Profile, bool) {
	if owner == "" {
		return nil, false
	}
	user, _, err := c.ghClient.Users.Get(ctx, owner)
	if err != nil {
		c.logger.Warn("Profile unavailable",
			zap.String("owner", owner),
			zap.Error(classify(err)))
		return nil, false
	}

	return &models.Profile{
		Login:       user.GetLogin(),
		ID:          user.GetID(),
		Name:        user.GetName(),
		Bio:         user.Bio,
		AvatarURL:   user.GetAvatarURL(),
		HTMLURL:     user.GetHTMLURL(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}, true
}

func toRepository(repo *gh.Repository, owner string) models.Repository {
	r := models.Repository{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Owner:       repo.GetOwner().GetLogin(),
		Description: repo.Description,
		HTMLURL:     repo.GetHTMLURL(),
		Homepage:    repo.Homepage,
		Language:    repo.Language,
		Stars:       repo.GetStargazersCount(),
		CreatedAt:   repo.GetCreatedAt().Time,
		UpdatedAt:   repo.GetUpdatedAt().Time,
		Fork:        repo.GetFork(),
		Archived:    repo.GetArchived(),
		Disabled:    repo.GetDisabled(),
		Private:     repo.GetPrivate(),
		Topics:      repo.Topics,
	}
	if r.Owner == "" {
		r.Owner = owner
	}
	if r.FullName == "" {
		r.FullName = r.Owner + "/" + r.Name
	}
	return r
}

func splitFullName(repo models.Repository) (string, string) {
	if owner, name, ok := strings.Cut(repo.FullName, "/"); ok {
		return owner, name
	}
	return repo.Owner, repo.Name
}

// limitedTransport waits on a limiter before each request. It never retries.
type limitedTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
