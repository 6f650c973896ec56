//go:build integration
// +build integration

package collector

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/klimeurt/portfolio-collector/internal/config"
	"github.com/klimeurt/portfolio-collector/internal/github"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationGitHubAPI(t *testing.T) {
	// Skip if required environment variables are not set
	username := os.Getenv("GITHUB_USERNAME")
	if username == "" {
		t.Skip("Skipping integration test: GITHUB_USERNAME environment variable required")
	}

	client, err := github.New(github.Options{Token: os.Getenv("GITHUB_TOKEN")}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := client.ListRepositories(ctx, username, nil)
	require.NoError(t, err)

	for _, repo := range repos {
		assert.False(t, repo.Fork, repo.Name)
		assert.False(t, repo.Archived, repo.Name)
		assert.NotEmpty(t, repo.HTMLURL, repo.Name)
	}
	t.Logf("Listed %d repositories for %s", len(repos), username)
}

func TestIntegrationEndToEnd(t *testing.T) {
	username := os.Getenv("GITHUB_USERNAME")
	if username == "" {
		t.Skip("Skipping integration test: GITHUB_USERNAME environment variable required")
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	// Test NATS connection
	nc, err := nats.Connect(natsURL)
	if err != nil {
		t.Skipf("Skipping integration test: NATS server not available at %s: %v", natsURL, err)
	}
	defer nc.Close()

	cfg := &config.Config{
		GitHubUsername:     username,
		EnrichConcurrency:  5,
		SampleDataFallback: false,
		NATSUrl:            natsURL,
		NATSSubject:        "portfolio.projects.test",
	}

	messages := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(cfg.NATSSubject, messages)
	require.NoError(t, err)
	defer func() { _ = sub.Unsubscribe() }()

	client, err := github.New(github.Options{Token: os.Getenv("GITHUB_TOKEN")}, nil)
	require.NoError(t, err)

	c, err := New(cfg, client, nil)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := c.Collect(ctx)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		var got Snapshot
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, snapshot.RunID, got.RunID)
		if got.Projects.Error != nil {
			t.Fatalf("collection failed: %s", *got.Projects.Error)
		}
		for i, p := range got.Projects.Data {
			assert.NotEmpty(t, p.ID)
			assert.LessOrEqual(t, len(p.Technologies), 10)
			t.Logf("Project %d: %s (featured: %v, technologies: %v)", i, p.Name, p.Featured, p.Technologies)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout waiting for snapshot")
	}
}

func TestIntegrationNATSConnectionFailure(t *testing.T) {
	cfg := &config.Config{
		GitHubUsername: "acme",
		NATSUrl:        "nats://invalid-host:4222",
		NATSSubject:    "portfolio.projects",
	}

	client, err := github.New(github.Options{}, nil)
	require.NoError(t, err)

	_, err = New(cfg, client, nil)
	assert.Error(t, err, "Expected error when connecting to invalid NATS server")
}
