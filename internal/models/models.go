package models

import "time"

// RepositoryRef identifies a single GitHub repository. It is created by the
// URL parser and threaded unchanged through every subsequent call.
type RepositoryRef struct {
	Owner string
	Name  string
}

func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// RepositoryMetadata holds the repository attributes shown in reports and
// embedded in the digest overview. Fetched once, read-only afterward.
type RepositoryMetadata struct {
	Name          string
	Description   string
	Stars         int
	Forks         int
	LastUpdated   time.Time
	Language      string
	License       string
	DefaultBranch string
	HTMLURL       string
	OwnerLogin    string
	OwnerAvatar   string
}

// RepositoryActivity summarizes recent maintenance signals. Commits counts
// at most the last 100 commits on the default branch.
type RepositoryActivity struct {
	Commits        int
	Contributors   int
	RecentActivity bool
}

// TreeSummary describes the whole file tree, not just the sampled subset.
type TreeSummary struct {
	TotalFiles int
	FileTypes  map[string]int
}

// FileSample is one file selected for the digest: its path and content
// truncated to the configured character limit.
type FileSample struct {
	Path    string
	Content string
}

// Verdict is the categorical judgment returned by the assessment step.
type Verdict string

const (
	VerdictLegitimate Verdict = "LEGITIMATE"
	VerdictLarping    Verdict = "LARPING"
	VerdictBorderline Verdict = "BORDERLINE"
)

// Ratings holds the five rubric scores, each 1..5.
type Ratings struct {
	CodeQuality  int
	Completeness int
	Security     int
	Originality  int
	Activity     int
}

// Assessment is the parsed model verdict. All five ratings are guaranteed
// in range by the parser; an unparseable reply never produces one.
type Assessment struct {
	Text    string
	Ratings Ratings
	Verdict Verdict
}
