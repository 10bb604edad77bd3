package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	noticeStyle   = lipgloss.NewStyle().Foreground(warning).Italic(true)
	unavailStyle  = lipgloss.NewStyle().Foreground(faint)
	separatorLine = faintStyle.Render(strings.Repeat("─", 72))
)

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return danger
}

// badge renders a colored "87 A" quality indicator for a score.
func badge(score int) string {
	grade := domain.GradeFor(score)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%3d %-2s", score, grade))
}

// RenderList renders a scored plugin list as a table with colored health and
// usability badges.
func RenderList(plugins []domain.ScoredPlugin, notice string, stale bool) string {
	var b strings.Builder

	b.WriteString("  " + headerStyle.Render("pluginpulse") + "  " + dimStyle.Render("plugin directory health"))
	if stale {
		b.WriteString("  " + noticeStyle.Render("(stale)"))
	}
	b.WriteString("\n\n")

	if notice != "" {
		b.WriteString("  " + noticeStyle.Render(notice) + "\n\n")
	}
	if len(plugins) == 0 {
		b.WriteString("  " + dimStyle.Render("No plugins found.") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s  %s  %-30s %-9s %-12s %s\n",
		dimStyle.Render("HEALTH"), dimStyle.Render("USABIL"),
		dimStyle.Render("PLUGIN"), dimStyle.Render("RATING"),
		dimStyle.Render("INSTALLS"), dimStyle.Render("UPDATED")))
	b.WriteString("  " + separatorLine + "\n")

	for _, sp := range plugins {
		b.WriteString(fmt.Sprintf("  %s  %s  %-30s %-9s %-12s %s\n",
			badge(sp.Score.Health),
			badge(sp.Score.Usability),
			titleStyle.Render(truncate(sp.Plugin.Name, 30)),
			ratingCell(sp.Plugin),
			installsCell(sp.Plugin),
			dimStyle.Render(updatedCell(sp.Plugin)),
		))
	}
	return b.String()
}

// RenderScorecard renders one plugin with its full signal breakdown,
// the transparency view behind the badge.
func RenderScorecard(sp domain.ScoredPlugin) string {
	var b strings.Builder

	health := badge(sp.Score.Health)
	usability := badge(sp.Score.Usability)
	head := headerStyle.Render(sp.Plugin.Name) + "\n" +
		dimStyle.Render(sp.Plugin.Slug) + "\n\n" +
		titleStyle.Render("health ") + health + "    " +
		titleStyle.Render("usability ") + usability
	b.WriteString(boxStyle.Render(head))
	b.WriteString("\n\n")

	for _, sig := range sp.Score.Signals {
		renderSignal(&b, sig)
	}

	if sp.Plugin.Author != "" {
		b.WriteString("\n  " + dimStyle.Render("by "+sp.Plugin.Author) + "\n")
	}
	return b.String()
}

func renderSignal(b *strings.Builder, sig domain.Signal) {
	name := fmt.Sprintf("%-24s", sig.Name)
	if !sig.Available {
		b.WriteString("  " + unavailStyle.Render(name+"  n/a  "+sig.Detail) + "\n")
		return
	}

	pct := int(sig.Value * 100)
	bar := renderBar(sig.Value)
	b.WriteString(fmt.Sprintf("  %s %s %3d%%  %s\n",
		titleStyle.Render(name), bar, pct, dimStyle.Render(sig.Detail)))
}

func renderBar(value float64) string {
	const width = 20
	filled := int(value*width + 0.5)
	if filled > width {
		filled = width
	}
	color := success
	switch {
	case value < 0.4:
		color = danger
	case value < 0.7:
		color = warning
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := faintStyle.Render(strings.Repeat("░", width-filled))
	return bar + rest
}

func ratingCell(p domain.PluginInfo) string {
	if p.NumRatings == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f (%d)", p.Rating, p.NumRatings)
}

func installsCell(p domain.PluginInfo) string {
	if p.ActiveInstallsText != "" {
		return p.ActiveInstallsText
	}
	if n, ok := p.Installs(); ok {
		return fmt.Sprintf("%d+", n)
	}
	return "—"
}

func updatedCell(p domain.PluginInfo) string {
	if p.LastUpdated == "" {
		return "—"
	}
	return p.LastUpdated
}

// truncate shortens s to max runes; upstream plugin names are often
// non-ASCII, so byte slicing would split characters.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
