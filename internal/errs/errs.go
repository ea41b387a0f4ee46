// Package errs defines the failure taxonomy shared by every component.
//
// Each sentinel marks one failure kind; components wrap them with %w and
// callers classify with errors.Is. No component substitutes a guessed value
// for a failed step.
package errs

import "errors"

var (
	// ErrInvalidURL means the input string is not a GitHub repository URL.
	ErrInvalidURL = errors.New("invalid GitHub repository URL")

	// ErrRepoNotFound means the repository does not exist or is private.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrRateLimited means a provider reported quota exhaustion. Callers
	// should report remediation (set a token, wait), not auto-retry.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream covers transport failures, timeouts, and other
	// non-success provider responses.
	ErrUpstream = errors.New("upstream failure")

	// ErrAssessmentParse means the model reply did not contain the five
	// ratings and a verdict keyword. The wrapped message carries the raw
	// reply for diagnosis.
	ErrAssessmentParse = errors.New("unparseable assessment")
)

// Kind returns the short user-facing name for an error's failure kind.
// Both front ends use it so failures surface consistently.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return "invalid URL"
	case errors.Is(err, ErrRepoNotFound):
		return "repository not found"
	case errors.Is(err, ErrRateLimited):
		return "rate limited"
	case errors.Is(err, ErrAssessmentParse):
		return "unparseable assessment"
	case errors.Is(err, ErrUpstream):
		return "upstream failure"
	default:
		return "error"
	}
}
