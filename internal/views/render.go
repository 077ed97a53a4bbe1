// Package views renders dashboard snapshots for the terminal. Nothing here
// fetches or mutates state.
package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"sustaindash/internal/domain"
	"sustaindash/internal/services/dashboard"
)

const barWidth = 20

var (
	colorGood    = lipgloss.Color("#059669")
	colorFair    = lipgloss.Color("#CA8A04")
	colorPoor    = lipgloss.Color("#DC2626")
	colorMuted   = lipgloss.Color("#64748B")
	colorCurrent = lipgloss.Color("#2563EB")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().Foreground(colorPoor).Bold(true)
	youStyle    = lipgloss.NewStyle().Foreground(colorCurrent).Bold(true)
)

// Band classifies a score; lower scores are better.
type Band int

const (
	BandGood Band = iota
	BandFair
	BandPoor
)

func ScoreBand(score float64) Band {
	switch {
	case score <= 2.5:
		return BandGood
	case score <= 3.5:
		return BandFair
	default:
		return BandPoor
	}
}

func (b Band) color() lipgloss.Color {
	switch b {
	case BandGood:
		return colorGood
	case BandFair:
		return colorFair
	default:
		return colorPoor
	}
}

// Percentile returns the share of peers, 0-100, whose overall score is worse
// (higher) than rec's. It is 0 when there are no peers.
func Percentile(rec domain.CompanyRecord, peers []domain.CompanyRecord) int {
	total, worse := 0, 0
	for _, p := range peers {
		if p.EntityID == rec.EntityID {
			continue
		}
		total++
		if p.OverallScore > rec.OverallScore {
			worse++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(worse) * 100 / float64(total)))
}

// Bar draws score on the 1-5 scale as a fixed-width gauge.
func Bar(score float64, width int) string {
	frac := score / domain.MaxScore
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ScoreCard renders the selected company's scores.
func ScoreCard(snap dashboard.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Client Score Card"))
	b.WriteString("\n")

	id, ok := snap.Selected()
	switch {
	case !ok:
		b.WriteString(mutedStyle.Render("No entity selected"))
		return panelStyle.Render(b.String())
	case snap.Loading && snap.CurrentRecord.IsZero():
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Loading entity %d…", id)))
		return panelStyle.Render(b.String())
	}

	rec := snap.CurrentRecord
	fmt.Fprintf(&b, "Entity %d", rec.EntityID)
	if loc := location(rec); loc != "" {
		b.WriteString(mutedStyle.Render("  " + loc))
	}
	if snap.Loading {
		b.WriteString(mutedStyle.Render("  (updating)"))
	}
	b.WriteString("\n\n")

	overall := lipgloss.NewStyle().Foreground(ScoreBand(rec.OverallScore).color()).Bold(true)
	fmt.Fprintf(&b, "Overall Sustainability Score  %s\n", overall.Render(fmt.Sprintf("%.1f", rec.OverallScore)))
	b.WriteString(overall.Render(Bar(rec.OverallScore, barWidth)))
	b.WriteString(mutedStyle.Render("  1 = best, 5 = worst"))
	b.WriteString("\n")
	if len(snap.ComparisonRecords) > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Better than %d%% of compared companies", Percentile(rec, snap.ComparisonRecords))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, part := range []struct {
		label string
		score float64
	}{
		{"Environmental", rec.EnvironmentalScore},
		{"Social", rec.SocialScore},
		{"Governance", rec.GovernanceScore},
	} {
		style := lipgloss.NewStyle().Foreground(ScoreBand(part.score).color())
		fmt.Fprintf(&b, "%-14s %4.1f  %s\n", part.label, part.score, style.Render(Bar(part.score, barWidth)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Revenue        %s\n", formatAmount(rec.Revenue))
	fmt.Fprintf(&b, "Target Scope 1 %s tCO2e\n", formatAmount(rec.TargetScope1))
	fmt.Fprintf(&b, "Target Scope 2 %s tCO2e", formatAmount(rec.TargetScope2))
	return panelStyle.Render(b.String())
}

// ComparisonTable renders the selected company alongside its peers.
func ComparisonTable(snap dashboard.Snapshot, key SortKey, desc bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Industry Comparison"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  sorted by %s %s", key, direction(desc))))
	b.WriteString("\n")

	if snap.LoadingComparisons && len(snap.ComparisonRecords) == 0 {
		b.WriteString(mutedStyle.Render("Loading comparisons…"))
		return panelStyle.Render(b.String())
	}

	rows := TableRecords(snap)
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No comparison data"))
		return panelStyle.Render(b.String())
	}
	rows = SortRecords(rows, key, desc)

	current := int64(-1)
	if id, ok := snap.Selected(); ok && !snap.CurrentRecord.IsZero() {
		current = id
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		name := fmt.Sprintf("Entity %d", r.EntityID)
		if r.CountryCode != "" {
			name += " (" + r.CountryCode + ")"
		}
		if r.EntityID == current {
			name += " " + youStyle.Render("You")
		}
		cells[i] = []string{
			name,
			fmt.Sprintf("%.1f", r.OverallScore),
			formatAmount(r.TargetScope1),
			formatAmount(r.TargetScope2),
			formatAmount(r.Revenue),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("Company", "Score", "Scope 1 (tCO2e)", "Scope 2 (tCO2e)", "Revenue").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if row >= 0 && row < len(rows) {
				if col == 1 {
					style = style.Foreground(ScoreBand(rows[row].OverallScore).color())
				}
				if rows[row].EntityID == current {
					style = style.Bold(true)
				}
			}
			return style
		})
	b.WriteString(t.Render())
	return panelStyle.Render(b.String())
}

// ErrorBanner summarises fetch failures, or returns "" when there are none.
func ErrorBanner(snap dashboard.Snapshot) string {
	var parts []string
	if snap.EntityIDsErr != nil {
		parts = append(parts, "entity list unavailable")
	}
	if snap.RecordErr != nil {
		parts = append(parts, "company record failed to load")
	}
	if snap.ComparisonsErr != nil {
		parts = append(parts, "comparisons failed to load")
	}
	if len(parts) == 0 {
		return ""
	}
	return bannerStyle.Render("! " + strings.Join(parts, "; ") + " (showing last known data)")
}

// Render lays out the full dashboard.
func Render(snap dashboard.Snapshot, key SortKey, desc bool) string {
	blocks := []string{}
	if banner := ErrorBanner(snap); banner != "" {
		blocks = append(blocks, banner)
	}
	blocks = append(blocks, ScoreCard(snap), ComparisonTable(snap, key, desc))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// TableRecords returns the selected record followed by its peers, without
// duplicating the selected entity.
func TableRecords(snap dashboard.Snapshot) []domain.CompanyRecord {
	out := make([]domain.CompanyRecord, 0, len(snap.ComparisonRecords)+1)
	cur := snap.CurrentRecord
	if !cur.IsZero() {
		out = append(out, cur)
	}
	for _, r := range snap.ComparisonRecords {
		if !cur.IsZero() && r.EntityID == cur.EntityID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func location(rec domain.CompanyRecord) string {
	var parts []string
	if rec.CountryName != "" {
		parts = append(parts, rec.CountryName)
	} else if rec.CountryCode != "" {
		parts = append(parts, rec.CountryCode)
	}
	if rec.RegionName != "" {
		parts = append(parts, rec.RegionName)
	}
	return strings.Join(parts, ", ")
}

func formatAmount(v float64) string {
	return humanize.Commaf(math.Round(v))
}

func direction(desc bool) string {
	if desc {
		return "desc"
	}
	return "asc"
}
