package llm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

// criterionPattern matches a rating line such as "CODE QUALITY: 4/5",
// "Code Quality - 4", or "**Security**: 3". The label may be followed by
// separator characters but not prose, so a digit buried in a sentence does
// not count as a rating.
func criterionPattern(label string) *regexp.Regexp {
	words := strings.ReplaceAll(label, " ", `\s*`)
	return regexp.MustCompile(`(?i)\b` + words + `\b[\s:*\-–—]*([0-9]+)\s*(?:/\s*5)?`)
}

var criteria = []struct {
	label  string
	re     *regexp.Regexp
	assign func(*models.Ratings, int)
}{
	{"CODE QUALITY", criterionPattern("CODE QUALITY"), func(r *models.Ratings, n int) { r.CodeQuality = n }},
	{"COMPLETENESS", criterionPattern("COMPLETENESS"), func(r *models.Ratings, n int) { r.Completeness = n }},
	{"SECURITY", criterionPattern("SECURITY"), func(r *models.Ratings, n int) { r.Security = n }},
	{"ORIGINALITY", criterionPattern("ORIGINALITY"), func(r *models.Ratings, n int) { r.Originality = n }},
	{"ACTIVITY", criterionPattern("ACTIVITY"), func(r *models.Ratings, n int) { r.Activity = n }},
}

var (
	verdictLineRe  = regexp.MustCompile(`(?i)VERDICT\s*:?\s*(.+)`)
	verdictTokenRe = regexp.MustCompile(`(?i)\b(LEGITIMATE|LARPING|BORDERLINE)\b`)
)

// parseAssessment extracts the five ratings and the verdict from a raw
// model reply. All five ratings must be present and within 1..5 and a
// verdict keyword must be found, otherwise it fails with
// errs.ErrAssessmentParse carrying the raw reply for diagnosis.
func parseAssessment(raw string) (*models.Assessment, error) {
	var ratings models.Ratings
	for _, c := range criteria {
		m := c.re.FindStringSubmatch(raw)
		if m == nil {
			return nil, parseError(raw, "missing %s rating", c.label)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > 5 {
			return nil, parseError(raw, "%s rating %q outside 1..5", c.label, m[1])
		}
		c.assign(&ratings, n)
	}

	verdict, ok := parseVerdict(raw)
	if !ok {
		return nil, parseError(raw, "no verdict keyword found")
	}

	return &models.Assessment{
		Text:    summaryText(raw),
		Ratings: ratings,
		Verdict: verdict,
	}, nil
}

// parseVerdict prefers a keyword on the VERDICT line; failing that it takes
// the last keyword occurrence, since assessments routinely mention
// "larping" in prose before concluding.
func parseVerdict(raw string) (models.Verdict, bool) {
	if m := verdictLineRe.FindStringSubmatch(raw); m != nil {
		if token := verdictTokenRe.FindString(m[1]); token != "" {
			return models.Verdict(strings.ToUpper(token)), true
		}
	}

	all := verdictTokenRe.FindAllString(raw, -1)
	if len(all) == 0 {
		return "", false
	}
	return models.Verdict(strings.ToUpper(all[len(all)-1])), true
}

// summaryText strips the rating and verdict lines, leaving the free-text
// assessment.
func summaryText(raw string) string {
	text := raw
	for _, c := range criteria {
		text = c.re.ReplaceAllString(text, "")
	}
	text = verdictLineRe.ReplaceAllString(text, "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func parseError(raw, format string, args ...any) error {
	return fmt.Errorf("%w: %s\nraw reply:\n%s", errs.ErrAssessmentParse, fmt.Sprintf(format, args...), raw)
}
