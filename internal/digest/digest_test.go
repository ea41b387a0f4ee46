package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

func fixtureMeta() models.RepositoryMetadata {
	return models.RepositoryMetadata{
		Name:        "Hello-World",
		Description: "My first repository",
		Stars:       1984,
		Forks:       9,
		LastUpdated: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Language:    "Go",
		License:     "MIT",
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	tree := models.TreeSummary{
		TotalFiles: 3,
		FileTypes:  map[string]int{".go": 2, ".md": 1},
	}
	activity := models.RepositoryActivity{Commits: 12, Contributors: 2, RecentActivity: true}
	samples := []models.FileSample{
		{Path: "main.go", Content: "package main"},
		{Path: "README.md", Content: "# Hello"},
	}

	first := Build(fixtureMeta(), tree, activity, samples)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Build(fixtureMeta(), tree, activity, samples))
	}
}

func TestBuildPreservesSampleOrder(t *testing.T) {
	samples := []models.FileSample{
		{Path: "z.go", Content: "z"},
		{Path: "a.go", Content: "a"},
		{Path: "m.go", Content: "m"},
	}

	out := Build(fixtureMeta(), models.TreeSummary{}, models.RepositoryActivity{}, samples)

	zi := strings.Index(out, "--- z.go ---")
	ai := strings.Index(out, "--- a.go ---")
	mi := strings.Index(out, "--- m.go ---")
	require.NotEqual(t, -1, zi)
	require.NotEqual(t, -1, ai)
	require.NotEqual(t, -1, mi)
	assert.Less(t, zi, ai)
	assert.Less(t, ai, mi)
}

func TestBuildOverviewFields(t *testing.T) {
	tree := models.TreeSummary{TotalFiles: 2, FileTypes: map[string]int{".md": 1, ".go": 1}}
	activity := models.RepositoryActivity{Commits: 5, Contributors: 1}

	out := Build(fixtureMeta(), tree, activity, nil)

	assert.Contains(t, out, "- Name: Hello-World")
	assert.Contains(t, out, "- Description: My first repository")
	assert.Contains(t, out, "- Stars: 1984")
	assert.Contains(t, out, "- Forks: 9")
	assert.Contains(t, out, "- Last updated: 2024-01-02T15:04:05Z")
	assert.Contains(t, out, "- Primary language: Go")
	assert.Contains(t, out, "- License: MIT")
	assert.Contains(t, out, "- File types: .go=1, .md=1")
	assert.Contains(t, out, "- Recent activity: No")
	// No samples, no excerpt section.
	assert.NotContains(t, out, "excerpts from key files")
}

func TestBuildEmptyFieldsGetPlaceholders(t *testing.T) {
	meta := fixtureMeta()
	meta.Description = ""
	meta.Language = ""
	meta.License = ""

	out := Build(meta, models.TreeSummary{}, models.RepositoryActivity{}, nil)

	assert.Contains(t, out, "- Description: No description")
	assert.Contains(t, out, "- Primary language: Unknown")
	assert.Contains(t, out, "- License: None")
	assert.Contains(t, out, "- File types: none")
}

func TestBuildMetadataOnlyDigestStillUsable(t *testing.T) {
	// A repository with zero qualifying files yields a metadata-only
	// digest; that is a valid outcome, not an error.
	out := Build(fixtureMeta(), models.TreeSummary{TotalFiles: 0}, models.RepositoryActivity{}, []models.FileSample{})

	assert.Contains(t, out, "REPOSITORY OVERVIEW:")
	assert.Contains(t, out, "- Total files: 0")
	assert.NotContains(t, out, "---")
}
