package bot

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/kevinmichaelchen/larp-watch/internal/models"
	"github.com/kevinmichaelchen/larp-watch/internal/pipeline"
	"github.com/kevinmichaelchen/larp-watch/internal/render"
)

const (
	colorGreen = 0x2ECC71
	colorRed   = 0xE74C3C
	colorGold  = 0xF1C40F
	colorGrey  = 0x95A5A6
)

// Discord caps embed descriptions at 4096 chars; leave headroom.
const maxChunkLen = 4000

func verdictColor(v models.Verdict) int {
	switch v {
	case models.VerdictLegitimate:
		return colorGreen
	case models.VerdictLarping:
		return colorRed
	case models.VerdictBorderline:
		return colorGold
	default:
		return colorGrey
	}
}

func verdictDisplay(v models.Verdict) string {
	switch v {
	case models.VerdictLegitimate:
		return fmt.Sprintf("✅ **%s**", v)
	case models.VerdictLarping:
		return fmt.Sprintf("❌ **%s**", v)
	case models.VerdictBorderline:
		return fmt.Sprintf("⚠️ **%s**", v)
	default:
		return string(v)
	}
}

// BuildEmbeds formats an analysis result as Discord embeds: a main embed
// with repository info, verdict, and ratings, then one or more summary
// embeds holding the assessment text. It never mutates the result.
func BuildEmbeds(repoURL string, res *pipeline.Result) []*discordgo.MessageEmbed {
	meta := res.Metadata
	color := verdictColor(res.Assessment.Verdict)

	main := &discordgo.MessageEmbed{
		Title: "Analysis: " + meta.Name,
		URL:   repoURL,
		Color: color,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Repository by " + meta.OwnerLogin,
			URL:     meta.HTMLURL,
			IconURL: meta.OwnerAvatar,
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Repository Info",
				Value: fmt.Sprintf("⭐ **Stars:** %d\n🍴 **Forks:** %d\n📂 **Files:** %d\n🔄 **Last Updated:** %s",
					meta.Stars, meta.Forks, res.Tree.TotalFiles,
					meta.LastUpdated.UTC().Format(time.DateOnly)),
			},
			{
				Name:  "Verdict",
				Value: verdictDisplay(res.Assessment.Verdict),
			},
			{
				Name:  "Ratings",
				Value: ratingsField(res.Assessment.Ratings),
			},
		},
	}

	embeds := []*discordgo.MessageEmbed{main}

	chunks := splitChunks(res.Assessment.Text, maxChunkLen)
	if len(chunks) > 0 {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       "Analysis Summary",
			Color:       color,
			Description: chunks[0],
			Footer:      &discordgo.MessageEmbedFooter{Text: "larp-watch | Crypto Due Diligence"},
		})
	}
	for i := 1; i < len(chunks); i++ {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Analysis Summary (continued %d)", i),
			Color:       color,
			Description: chunks[i],
		})
	}

	return embeds
}

func ratingsField(r models.Ratings) string {
	lines := []struct {
		label string
		value int
	}{
		{"Code Quality", r.CodeQuality},
		{"Completeness", r.Completeness},
		{"Security", r.Security},
		{"Originality", r.Originality},
		{"Activity", r.Activity},
	}

	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "**%s:** %s (%d/5)\n", l.label, render.StarBar(l.value), l.value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// splitChunks splits text into pieces of at most max characters, preferring
// paragraph breaks, then line breaks, then a hard cut.
func splitChunks(text string, max int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= max {
		return []string{text}
	}

	var chunks []string
	pos := 0
	for pos < len(text) {
		if pos+max >= len(text) {
			chunks = append(chunks, text[pos:])
			break
		}

		split := strings.LastIndex(text[pos:pos+max], "\n\n")
		if split <= 0 {
			split = strings.LastIndex(text[pos:pos+max], "\n")
		}
		if split <= 0 {
			// Hard cut; back off so a multibyte rune is never bisected.
			split = max
			for split > 1 && !utf8.RuneStart(text[pos+split]) {
				split--
			}
		}

		chunks = append(chunks, text[pos:pos+split])
		pos += split
		for pos < len(text) && text[pos] == '\n' {
			pos++
		}
	}
	return chunks
}
