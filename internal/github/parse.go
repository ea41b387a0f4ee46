package github

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

// Accepted URL shapes: https://github.com/owner/repo with optional scheme,
// www prefix, .git suffix, trailing slash, or extra path segments, and the
// SSH form git@github.com:owner/repo.git.
var (
	httpsPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/\s]+)/([^/\s?#]+?)(?:\.git)?(?:[/?#].*)?$`)
	sshPattern   = regexp.MustCompile(`^git@github\.com:([^/\s]+)/([^/\s]+?)(?:\.git)?$`)
)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// It performs no network access and fails with errs.ErrInvalidURL when the
// string does not have the expected host and path shape.
func ParseRepoURL(raw string) (models.RepositoryRef, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.RepositoryRef{}, fmt.Errorf("%w: empty string", errs.ErrInvalidURL)
	}

	for _, re := range []*regexp.Regexp{httpsPattern, sshPattern} {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			return models.RepositoryRef{Owner: m[1], Name: m[2]}, nil
		}
	}

	return models.RepositoryRef{}, fmt.Errorf("%w: %q", errs.ErrInvalidURL, raw)
}
