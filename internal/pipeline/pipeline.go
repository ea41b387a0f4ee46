// Package pipeline runs one repository analysis end to end: parse the URL,
// fetch metadata, sample the tree, build the digest, and assess it. Both
// front ends consume the same Result and differ only in formatting.
package pipeline

import (
	"context"

	"github.com/kevinmichaelchen/larp-watch/internal/config"
	"github.com/kevinmichaelchen/larp-watch/internal/digest"
	"github.com/kevinmichaelchen/larp-watch/internal/github"
	"github.com/kevinmichaelchen/larp-watch/internal/llm"
	"github.com/kevinmichaelchen/larp-watch/internal/logging"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

// Result is everything the presenters need from one analysis run.
type Result struct {
	Ref         models.RepositoryRef
	Metadata    models.RepositoryMetadata
	Activity    models.RepositoryActivity
	Tree        models.TreeSummary
	SampleCount int
	Assessment  models.Assessment
}

// Deps holds the provider clients. Tests inject clients pointed at
// httptest servers; production uses the ones Run builds from config.
type Deps struct {
	GitHub   *github.Client
	Assessor *llm.Client
}

// Run analyzes the repository at rawURL using clients built from cfg.
func Run(ctx context.Context, cfg *config.Config, rawURL string) (*Result, error) {
	deps := Deps{
		GitHub:   github.NewClient(cfg.GitHubToken, cfg.GitHubTimeout),
		Assessor: llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout),
	}
	return RunWith(ctx, cfg, deps, rawURL)
}

// RunWith is the sequential analysis flow. Each step fails fast with a
// typed error; no step substitutes a guessed value for a failed call.
func RunWith(ctx context.Context, cfg *config.Config, deps Deps, rawURL string) (*Result, error) {
	logger := logging.FromContext(ctx)

	ref, err := github.ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}
	logger.Info("starting analysis", "repo", ref.FullName())

	meta, err := deps.GitHub.Metadata(ctx, ref)
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched metadata", "stars", meta.Stars, "forks", meta.Forks, "language", meta.Language)

	entries, err := deps.GitHub.Tree(ctx, ref, meta.DefaultBranch)
	if err != nil {
		return nil, err
	}
	summary := github.Summarize(entries)
	logger.Info("listed repository tree", "files", summary.TotalFiles)

	samples := deps.GitHub.SampleFiles(ctx, ref, meta.DefaultBranch, entries, github.SampleConfig{
		MaxFiles:          cfg.MaxFiles,
		MaxFileSizeBytes:  cfg.MaxFileSizeBytes,
		MaxContentChars:   cfg.MaxContentChars,
		AllowedExtensions: github.DefaultAllowedExtensions,
	})
	logger.Info("sampled files", "count", len(samples))

	activity := deps.GitHub.Activity(ctx, ref)
	logger.Debug("fetched activity", "commits", activity.Commits, "contributors", activity.Contributors)

	payload := digest.Build(*meta, summary, activity, samples)
	logger.Debug("built digest", "chars", len(payload))

	assessment, err := deps.Assessor.Assess(ctx, payload)
	if err != nil {
		return nil, err
	}
	logger.Info("assessment complete", "verdict", assessment.Verdict)

	return &Result{
		Ref:         ref,
		Metadata:    *meta,
		Activity:    activity,
		Tree:        summary,
		SampleCount: len(samples),
		Assessment:  *assessment,
	}, nil
}
