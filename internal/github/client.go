// Package github wraps the GitHub REST API for repository analysis: URL
// parsing, metadata, recursive tree listing, content sampling, and activity
// metrics.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/logging"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

// Client is a thin wrapper around the go-github client. It performs no
// retries of its own; that concern lives in the transport stack.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware)
//  3. go-github (GitHub REST API client)
//
// Pass an empty token for unauthenticated requests (lower rate limits).
func NewClient(token string, timeout time.Duration) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := github_ratelimit.NewClient(cacheTransport)
	httpClient.Timeout = timeout

	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and
// base URL. Intended for testing against an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = u
	return &Client{gh: client}, nil
}

// Metadata fetches repository attributes for ref.
func (c *Client) Metadata(ctx context.Context, ref models.RepositoryRef) (*models.RepositoryMetadata, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, mapError(err)
	}

	return &models.RepositoryMetadata{
		Name:          repo.GetName(),
		Description:   repo.GetDescription(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		LastUpdated:   repo.GetUpdatedAt().Time,
		Language:      repo.GetLanguage(),
		License:       repo.GetLicense().GetSPDXID(),
		DefaultBranch: repo.GetDefaultBranch(),
		HTMLURL:       repo.GetHTMLURL(),
		OwnerLogin:    repo.GetOwner().GetLogin(),
		OwnerAvatar:   repo.GetOwner().GetAvatarURL(),
	}, nil
}

// TreeEntry is one file (blob) in the repository tree.
type TreeEntry struct {
	Path string
	Size int
}

// Tree lists every file in the repository recursively, in the order the
// API returns them. Directories are filtered out.
func (c *Client) Tree(ctx context.Context, ref models.RepositoryRef, branch string) ([]TreeEntry, error) {
	if branch == "" {
		branch = "HEAD"
	}

	tree, _, err := c.gh.Git.GetTree(ctx, ref.Owner, ref.Name, branch, true)
	if err != nil {
		return nil, mapError(err)
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		if e.GetType() != "blob" {
			continue
		}
		entries = append(entries, TreeEntry{Path: e.GetPath(), Size: e.GetSize()})
	}
	return entries, nil
}

// FileContent fetches a single file's content at the given branch.
func (c *Client) FileContent(ctx context.Context, ref models.RepositoryRef, branch, path string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: branch}
	file, _, _, err := c.gh.Repositories.GetContents(ctx, ref.Owner, ref.Name, path, opts)
	if err != nil {
		return "", mapError(err)
	}
	if file == nil {
		return "", fmt.Errorf("%w: %s is not a file", errs.ErrUpstream, path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("%w: decoding %s: %v", errs.ErrUpstream, path, err)
	}
	return content, nil
}

const recentActivityWindow = 90 * 24 * time.Hour

// Activity fetches commit and contributor counts. It is best-effort
// enrichment: a failure degrades to zero values rather than aborting the
// analysis, with a warning on the context logger.
func (c *Client) Activity(ctx context.Context, ref models.RepositoryRef) models.RepositoryActivity {
	logger := logging.FromContext(ctx)
	var activity models.RepositoryActivity

	commits, _, err := c.gh.Repositories.ListCommits(ctx, ref.Owner, ref.Name, &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	})
	if err != nil {
		logger.Warn("could not fetch commits", "repo", ref.FullName(), "err", err)
	} else {
		activity.Commits = len(commits)
		cutoff := time.Now().Add(-recentActivityWindow)
		for _, commit := range commits {
			if commit.GetCommit().GetAuthor().GetDate().After(cutoff) {
				activity.RecentActivity = true
				break
			}
		}
	}

	contributors, _, err := c.gh.Repositories.ListContributors(ctx, ref.Owner, ref.Name, &gh.ListContributorsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	})
	if err != nil {
		logger.Warn("could not fetch contributors", "repo", ref.FullName(), "err", err)
	} else {
		activity.Contributors = len(contributors)
	}

	return activity
}

// mapError translates go-github errors into the shared failure taxonomy.
func mapError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: GitHub API quota exhausted, set GITHUB_TOKEN or wait until %s",
			errs.ErrRateLimited, rateErr.Rate.Reset.Format(time.RFC3339))
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: GitHub secondary rate limit hit", errs.ErrRateLimited)
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", errs.ErrRepoNotFound, ghErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", errs.ErrRateLimited, ghErr.Message)
		default:
			return fmt.Errorf("%w: GitHub API returned %d: %s",
				errs.ErrUpstream, ghErr.Response.StatusCode, ghErr.Message)
		}
	}

	// Transport failure or timeout.
	return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
}
