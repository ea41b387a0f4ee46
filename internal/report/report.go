// Package report renders an analysis result as a plain-text terminal
// report. It performs no I/O beyond the writer it is given and never
// mutates the result.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kevinmichaelchen/larp-watch/internal/models"
	"github.com/kevinmichaelchen/larp-watch/internal/pipeline"
	"github.com/kevinmichaelchen/larp-watch/internal/render"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)

	verdictStyles = map[models.Verdict]lipgloss.Style{
		models.VerdictLegitimate: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		models.VerdictLarping:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		models.VerdictBorderline: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	}
)

// Render writes the metadata block, ratings block, verdict line, and
// assessment text to w.
func Render(w io.Writer, repoURL string, res *pipeline.Result) {
	meta := res.Metadata

	fmt.Fprintln(w, headingStyle.Render("Repository"))
	fmt.Fprintf(w, "  %s (%s)\n", res.Ref.FullName(), repoURL)
	fmt.Fprintf(w, "  Description:  %s\n", orDash(meta.Description))
	fmt.Fprintf(w, "  Stars:        %d\n", meta.Stars)
	fmt.Fprintf(w, "  Forks:        %d\n", meta.Forks)
	fmt.Fprintf(w, "  Last updated: %s\n", meta.LastUpdated.UTC().Format(time.DateOnly))
	fmt.Fprintf(w, "  Language:     %s\n", orDash(meta.Language))
	fmt.Fprintf(w, "  License:      %s\n", orDash(meta.License))
	fmt.Fprintf(w, "  Files:        %d (%d sampled)\n", res.Tree.TotalFiles, res.SampleCount)
	fmt.Fprintf(w, "  Commits:      %d  Contributors: %d  Recent activity: %s\n",
		res.Activity.Commits, res.Activity.Contributors, render.YesNo(res.Activity.RecentActivity))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Ratings"))
	r := res.Assessment.Ratings
	fmt.Fprintf(w, "  Code Quality  %s (%d/5)\n", render.StarBar(r.CodeQuality), r.CodeQuality)
	fmt.Fprintf(w, "  Completeness  %s (%d/5)\n", render.StarBar(r.Completeness), r.Completeness)
	fmt.Fprintf(w, "  Security      %s (%d/5)\n", render.StarBar(r.Security), r.Security)
	fmt.Fprintf(w, "  Originality   %s (%d/5)\n", render.StarBar(r.Originality), r.Originality)
	fmt.Fprintf(w, "  Activity      %s (%d/5)\n", render.StarBar(r.Activity), r.Activity)

	fmt.Fprintln(w)
	style, ok := verdictStyles[res.Assessment.Verdict]
	if !ok {
		style = headingStyle
	}
	fmt.Fprintf(w, "Verdict: %s\n", style.Render(string(res.Assessment.Verdict)))

	if res.Assessment.Text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Assessment.Text)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
