// Package digest assembles the text payload sent to the language model.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kevinmichaelchen/larp-watch/internal/models"
	"github.com/kevinmichaelchen/larp-watch/internal/render"
)

// Build concatenates the repository overview and the sampled file excerpts
// into one text blob. It is pure and deterministic: identical inputs always
// produce byte-identical output, and samples appear in input order.
func Build(meta models.RepositoryMetadata, tree models.TreeSummary, activity models.RepositoryActivity, samples []models.FileSample) string {
	var b strings.Builder

	b.WriteString("REPOSITORY OVERVIEW:\n")
	fmt.Fprintf(&b, "- Name: %s\n", meta.Name)
	fmt.Fprintf(&b, "- Description: %s\n", orDefault(meta.Description, "No description"))
	fmt.Fprintf(&b, "- Stars: %d\n", meta.Stars)
	fmt.Fprintf(&b, "- Forks: %d\n", meta.Forks)
	fmt.Fprintf(&b, "- Last updated: %s\n", meta.LastUpdated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Primary language: %s\n", orDefault(meta.Language, "Unknown"))
	fmt.Fprintf(&b, "- License: %s\n", orDefault(meta.License, "None"))
	fmt.Fprintf(&b, "- Total files: %d\n", tree.TotalFiles)
	fmt.Fprintf(&b, "- File types: %s\n", formatFileTypes(tree.FileTypes))
	fmt.Fprintf(&b, "- Total commits: %d\n", activity.Commits)
	fmt.Fprintf(&b, "- Total contributors: %d\n", activity.Contributors)
	fmt.Fprintf(&b, "- Recent activity: %s\n", render.YesNo(activity.RecentActivity))

	if len(samples) > 0 {
		b.WriteString("\nHere are excerpts from key files:\n")
		for _, s := range samples {
			fmt.Fprintf(&b, "\n--- %s ---\n%s\n", s.Path, s.Content)
		}
	}

	return b.String()
}

// formatFileTypes renders the histogram with sorted keys so the digest
// stays deterministic across runs.
func formatFileTypes(types map[string]int) string {
	if len(types) == 0 {
		return "none"
	}
	exts := make([]string, 0, len(types))
	for ext := range types {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		parts = append(parts, fmt.Sprintf("%s=%d", ext, types[ext]))
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
