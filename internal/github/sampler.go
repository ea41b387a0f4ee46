package github

import (
	"context"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kevinmichaelchen/larp-watch/internal/logging"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

// SampleConfig bounds which files are selected for the digest and how much
// of each survives.
type SampleConfig struct {
	MaxFiles          int
	MaxFileSizeBytes  int
	MaxContentChars   int
	AllowedExtensions map[string]struct{}
}

// DefaultAllowedExtensions covers source code, web assets, config files,
// and documentation.
var DefaultAllowedExtensions = map[string]struct{}{
	".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".py": {}, ".rb": {},
	".java": {}, ".c": {}, ".cpp": {}, ".cs": {}, ".go": {}, ".rs": {},
	".php": {}, ".swift": {}, ".kt": {}, ".scala": {}, ".sh": {},
	".bash": {}, ".pl": {}, ".lua": {}, ".sol": {}, ".ex": {}, ".exs": {},
	".erl": {}, ".hrl": {},
	".html": {}, ".css": {}, ".scss": {}, ".sass": {}, ".less": {},
	".json": {}, ".yml": {}, ".yaml": {}, ".toml": {}, ".xml": {}, ".ini": {},
	".md": {}, ".txt": {},
}

// Select filters tree entries by extension allow-list and size cap and
// returns at most cfg.MaxFiles entries in listing order. Pure function.
func Select(entries []TreeEntry, cfg SampleConfig) []TreeEntry {
	var picked []TreeEntry
	for _, e := range entries {
		if len(picked) == cfg.MaxFiles {
			break
		}
		ext := strings.ToLower(path.Ext(e.Path))
		if _, ok := cfg.AllowedExtensions[ext]; !ok {
			continue
		}
		if e.Size > cfg.MaxFileSizeBytes {
			continue
		}
		picked = append(picked, e)
	}
	return picked
}

const fetchConcurrency = 5

// SampleFiles fetches content for the selected entries and truncates each
// to cfg.MaxContentChars. Fetches run concurrently but the returned slice
// preserves selection order regardless of completion order. A single file's
// fetch failure drops that file with a warning; it never aborts the pass.
// Zero qualifying files is a valid outcome, not an error.
func (c *Client) SampleFiles(ctx context.Context, ref models.RepositoryRef, branch string, entries []TreeEntry, cfg SampleConfig) []models.FileSample {
	logger := logging.FromContext(ctx)
	picked := Select(entries, cfg)

	results := make([]*models.FileSample, len(picked))
	var g errgroup.Group
	g.SetLimit(fetchConcurrency)

	for i, entry := range picked {
		g.Go(func() error {
			content, err := c.FileContent(ctx, ref, branch, entry.Path)
			if err != nil {
				logger.Warn("skipping file", "path", entry.Path, "err", err)
				return nil
			}
			results[i] = &models.FileSample{
				Path:    entry.Path,
				Content: truncate(content, cfg.MaxContentChars),
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are skipped

	samples := make([]models.FileSample, 0, len(picked))
	for _, r := range results {
		if r != nil {
			samples = append(samples, *r)
		}
	}
	return samples
}

// Summarize builds a file-type histogram over the whole tree.
func Summarize(entries []TreeEntry) models.TreeSummary {
	types := make(map[string]int)
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Path))
		if ext == "" {
			ext = "(none)"
		}
		types[ext]++
	}
	return models.TreeSummary{TotalFiles: len(entries), FileTypes: types}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
