package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	faintStyle = lipgloss.NewStyle().Foreground(faint)
	passStyle  = lipgloss.NewStyle().Foreground(success)
	failStyle  = lipgloss.NewStyle().Foreground(danger)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
	skipStyle  = lipgloss.NewStyle().Foreground(skipColor)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle  = lipgloss.NewStyle().Foreground(dim).Italic(true)

	verdictColors = map[domain.Verdict]lipgloss.Color{
		domain.VerdictReady:    success,
		domain.VerdictUsable:   warning,
		domain.VerdictNotReady: danger,
	}
)

// StatusGlyph renders the tri-state marker for a check. Stateless; it
// replaces the process-wide ANSI constants the original scripts shared.
func StatusGlyph(status domain.Status) string {
	switch status {
	case domain.StatusPass:
		return passStyle.Render("✔")
	case domain.StatusWarn:
		return warnStyle.Render("⚠")
	case domain.StatusFail:
		return failStyle.Render("✘")
	default:
		return skipStyle.Render("–")
	}
}

// SeverityGlyph renders the marker for a single finding.
func SeverityGlyph(sev domain.Severity) string {
	switch sev {
	case domain.SeverityFail:
		return failStyle.Render("●")
	case domain.SeverityWarn:
		return warnStyle.Render("●")
	default:
		return dimStyle.Render("●")
	}
}

func verdictColor(v domain.Verdict) lipgloss.Color {
	if c, ok := verdictColors[v]; ok {
		return c
	}
	return dim
}
