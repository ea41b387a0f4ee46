package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

func TestParseRepoURL(t *testing.T) {
	want := models.RepositoryRef{Owner: "octocat", Name: "Hello-World"}

	valid := map[string]string{
		"canonical":       "https://github.com/octocat/Hello-World",
		"trailing slash":  "https://github.com/octocat/Hello-World/",
		"git suffix":      "https://github.com/octocat/Hello-World.git",
		"extra path":      "https://github.com/octocat/Hello-World/tree/main/src",
		"query string":    "https://github.com/octocat/Hello-World?tab=readme",
		"http scheme":     "http://github.com/octocat/Hello-World",
		"no scheme":       "github.com/octocat/Hello-World",
		"www prefix":      "https://www.github.com/octocat/Hello-World",
		"ssh form":        "git@github.com:octocat/Hello-World.git",
		"ssh no git":      "git@github.com:octocat/Hello-World",
		"leading spaces":  "  https://github.com/octocat/Hello-World  ",
	}
	for name, url := range valid {
		t.Run(name, func(t *testing.T) {
			ref, err := ParseRepoURL(url)
			require.NoError(t, err)
			assert.Equal(t, want, ref)
		})
	}

	invalid := map[string]string{
		"empty":            "",
		"whitespace":       "   ",
		"wrong host":       "https://gitlab.com/octocat/Hello-World",
		"host substring":   "https://notgithub.com/octocat/Hello-World",
		"missing repo":     "https://github.com/octocat",
		"missing owner":    "https://github.com//Hello-World",
		"bare host":        "https://github.com/",
		"not a url":        "octocat/Hello-World",
	}
	for name, url := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRepoURL(url)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidURL)
		})
	}
}

func TestParseRepoURLKeepsGitInName(t *testing.T) {
	// Only a trailing .git is stripped, not one inside the name.
	ref, err := ParseRepoURL("https://github.com/owner/go-git")
	require.NoError(t, err)
	assert.Equal(t, "go-git", ref.Name)
}
