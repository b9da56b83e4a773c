package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

// RenderReport renders a full diagnostic report with its verdict.
func RenderReport(report *domain.Report, policy domain.VerdictPolicy) string {
	var b strings.Builder

	title := headerStyle.Render("ufodoctor")
	subtitle := dimStyle.Render("UFO² installation diagnostics")
	meta := dimStyle.Render(report.InstallRoot)
	if report.CommitHash != "" {
		meta += "\n" + faintStyle.Render(shortHash(report.CommitHash))
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + meta))
	b.WriteString("\n\n")

	for _, check := range report.Checks {
		renderCheck(&b, check)
	}

	percent := report.PassPercent()
	verdict := policy.Verdict(percent)
	verdictStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(verdict)).
		Render(strings.ToUpper(string(verdict)))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s  %s\n",
		titleStyle.Render(fmt.Sprintf("%d/%d checks passed (%d%%)", report.Passed(), report.Total(), percent)),
		dimStyle.Render("→"),
		verdictStyled,
	))

	return b.String()
}

func renderCheck(b *strings.Builder, check domain.CheckResult) {
	name := check.Name
	if check.Agent != "" {
		name += dimStyle.Render(" · " + check.Agent)
	}
	line := fmt.Sprintf("  %s %s", StatusGlyph(check.Status), titleStyle.Render(name))
	if check.Detail != "" {
		line += "  " + dimStyle.Render(check.Detail)
	}
	b.WriteString(line + "\n")

	for _, f := range check.Findings {
		renderFinding(b, f)
	}
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	line := fmt.Sprintf("      %s %s", SeverityGlyph(f.Severity), f.Message)
	b.WriteString(line + "\n")
	if f.Remediation != "" {
		b.WriteString("        " + hintStyle.Render(f.Remediation) + "\n")
	}
}

// RenderFixPlan renders the fix flow's proposed or applied changes.
func RenderFixPlan(plan *domain.FixPlan) string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render("Configuration fixes") + "  " +
		dimStyle.Render(plan.ConfigPath) + "\n")

	if len(plan.Changes) == 0 {
		b.WriteString("  " + passStyle.Render("✔") + " no common issues detected\n")
		return b.String()
	}

	for _, c := range plan.Changes {
		glyph := warnStyle.Render("●")
		if c.Replacement != "" {
			glyph = passStyle.Render("●")
		}
		b.WriteString(fmt.Sprintf("    %s %s  %s\n", glyph, c.Field, dimStyle.Render(c.Reason)))
		if c.Replacement == "" {
			b.WriteString("      " + hintStyle.Render(fmt.Sprintf("no replacement supplied; pass --%s to fix", flagForField(c.Field))) + "\n")
		}
	}

	switch {
	case plan.Applied > 0:
		b.WriteString(fmt.Sprintf("  %s applied %d change(s), original backed up to %s\n",
			passStyle.Render("✔"), plan.Applied, plan.BackupPath))
	default:
		b.WriteString("  " + dimStyle.Render("no changes were made to the configuration") + "\n")
	}

	return b.String()
}

// RenderConnectivity renders a standalone probe result.
func RenderConnectivity(agent string, result domain.ConnectivityResult) string {
	var b strings.Builder
	switch result.Outcome {
	case domain.ConnectivitySuccess:
		b.WriteString(fmt.Sprintf("  %s %s connectivity OK\n", passStyle.Render("✔"), titleStyle.Render(agent)))
		b.WriteString("      " + dimStyle.Render("response: "+result.ResponsePreview) + "\n")
	case domain.ConnectivitySkipped:
		b.WriteString(fmt.Sprintf("  %s %s probe skipped  %s\n", skipStyle.Render("–"), titleStyle.Render(agent), dimStyle.Render(result.Detail)))
	default:
		cls := domain.ClassifyError(result.RawError)
		b.WriteString(fmt.Sprintf("  %s %s connectivity failed  %s\n", failStyle.Render("✘"), titleStyle.Render(agent), dimStyle.Render(string(cls.Category))))
		b.WriteString("      " + result.RawError + "\n")
		if cls.Remediation != "" {
			b.WriteString("      " + hintStyle.Render(cls.Remediation) + "\n")
		}
	}
	return b.String()
}

func flagForField(field string) string {
	switch field {
	case domain.FieldAPIBase:
		return "base"
	case domain.FieldAPIKey:
		return "key"
	case domain.FieldAPIDeploymentID:
		return "deployment"
	}
	return strings.ToLower(field)
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
