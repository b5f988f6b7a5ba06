package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"code-darpan/internal/domain"
)

// Score bands for colouring.
const (
	GoodScore = 85
	FairScore = 60
)

// TopLanguageCount is how many languages the card lists.
const TopLanguageCount = 5

// LanguageShare is one row of the language chart.
type LanguageShare struct {
	Name    string
	Bytes   int
	Percent float64
}

// Band names a score range.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// ScoreBand classifies a score.
func ScoreBand(score int) Band {
	switch {
	case score >= GoodScore:
		return BandGood
	case score >= FairScore:
		return BandFair
	default:
		return BandPoor
	}
}

// ScoreStyle picks the style for a score's band.
func ScoreStyle(score int) lipgloss.Style {
	switch ScoreBand(score) {
	case BandGood:
		return StyleSuccess
	case BandFair:
		return StyleWarning
	default:
		return StyleError
	}
}

// TopLanguages returns up to n languages ordered by bytes, largest first.
// Equal sizes are ordered by name.
func TopLanguages(langs domain.LanguageBreakdown, n int) []LanguageShare {
	total := langs.Total()
	shares := make([]LanguageShare, 0, len(langs))
	for name, bytes := range langs {
		pct := 0.0
		if total > 0 {
			pct = float64(bytes) * 100 / float64(total)
		}
		shares = append(shares, LanguageShare{Name: name, Bytes: bytes, Percent: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// RenderReport writes a human-readable report card for repo.
func RenderReport(w io.Writer, repo string, r *domain.Report) error {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("📊 "+repo) + "\n\n")
	fmt.Fprintf(&b, "%s%s\n", StyleLabel.Render("Score"), ScoreStyle(r.Score).Render(fmt.Sprintf("%d/100", r.Score)))
	fmt.Fprintf(&b, "%s%s\n", StyleLabel.Render("Persona"), string(r.Persona))
	fmt.Fprintf(&b, "%s⭐ %d  🍴 %d  (%s)\n", StyleLabel.Render("Repo"),
		r.Details.Stars, r.Details.Forks, r.Details.PrimaryLanguage)

	b.WriteString("\n" + StyleHeader.Render("Summary") + "\n")
	b.WriteString(r.Summary + "\n")

	if len(r.Roadmap) > 0 {
		b.WriteString("\n" + StyleHeader.Render("Roadmap") + "\n")
		for i, item := range r.Roadmap {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
	}

	if top := TopLanguages(r.Details.LanguageBreakdown, TopLanguageCount); len(top) > 0 {
		b.WriteString("\n" + StyleHeader.Render("Languages") + "\n")
		for _, l := range top {
			fmt.Fprintf(&b, "%s%5.1f%%\n", StyleLabel.Render(l.Name), l.Percent)
		}
	}

	_, err := fmt.Fprintln(w, StyleCard.Render(strings.TrimRight(b.String(), "\n")))
	return err
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// RenderMuted writes a de-emphasized line, used for notices.
func RenderMuted(w io.Writer, msg string) {
	fmt.Fprintln(w, StyleMuted.Render(msg))
}
