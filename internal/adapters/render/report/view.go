package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/layoutguard/internal/application"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// Verbose also lists the current fields of every checked entity.
	Verbose bool
}

func renderView(reports []application.CheckReport, opts RenderOptions, s styles) string {
	summary := application.Summarize(reports)
	lines := []string{
		s.title.Render("Storage Layout Check"),
		s.header.Render(fmt.Sprintf("checked: %d safe: %d violations: %d unchecked: %d",
			summary.Checked, summary.Safe, summary.Violations, summary.Unchecked)),
	}

	if len(reports) == 0 {
		lines = append(lines, s.empty.Render("No entities to check."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, report := range reports {
		lines = append(lines, s.section.Render(renderReport(report, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderReport(report application.CheckReport, opts RenderOptions, s styles) string {
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		s.entity.Render(string(report.Entity)),
		" ",
		badge(report.Outcome, s),
	)
	parts := []string{title}

	if !report.Checked() {
		parts = append(parts, s.detail.Render(fmt.Sprintf("%s failed: %v", report.Stage, report.Err)))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, s.detail.Render(verdictLine(report)))
	for _, d := range report.Result.Discrepancies {
		parts = append(parts, s.bulletMark.Render("  - ")+s.detail.Render(Describe(d)))
	}

	if opts.Verbose {
		parts = append(parts, fieldLines(report.Snapshot, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func badge(outcome domain.Outcome, s styles) string {
	switch outcome {
	case domain.OutcomeSafe:
		return s.safe.Render("[SAFE]")
	case domain.OutcomeViolations:
		return s.violation.Render("[UNSAFE]")
	default:
		return s.unchecked.Render("[UNCHECKED]")
	}
}

func verdictLine(report application.CheckReport) string {
	fields := fmt.Sprintf("%d fields", report.Snapshot.Len())
	switch report.Result.Verdict {
	case domain.VerdictFirstObservation:
		if report.Established {
			return fmt.Sprintf("first observation, baseline recorded (%s)", fields)
		}
		return fmt.Sprintf("first observation, baseline not recorded (%s)", fields)
	case domain.VerdictUnchanged:
		return fmt.Sprintf("layout unchanged (%s)", fields)
	default:
		n := len(report.Result.Discrepancies)
		noun := "violations"
		if n == 1 {
			noun = "violation"
		}
		return fmt.Sprintf("%d %s against baseline", n, noun)
	}
}

// Describe renders one discrepancy as a sentence.
func Describe(d domain.Discrepancy) string {
	switch d := d.(type) {
	case domain.CountChanged:
		return fmt.Sprintf("field count changed from %d to %d", d.OldCount, d.NewCount)
	case domain.FieldAdded:
		return fmt.Sprintf("field %s was added", d.Name)
	case domain.FieldRemoved:
		return fmt.Sprintf("field %s was removed", d.Name)
	case domain.PositionMismatch:
		return fmt.Sprintf("field %s moved from position %d to %d", d.Name, d.OldPosition, d.NewPosition)
	case domain.NameChangedAtPosition:
		return fmt.Sprintf("position %d now holds %s instead of %s", d.Position, d.NewName, d.OldName)
	case domain.TypeChangedAtPosition:
		return fmt.Sprintf("field %s at position %d changed type from %s to %s", d.FieldName, d.Position, d.OldType, d.NewType)
	default:
		return string(d.Kind())
	}
}

// RenderSnapshot lists fields as `[i] name: type`.
func RenderSnapshot(snapshot domain.LayoutSnapshot) string {
	s := newStyles()
	header := string(snapshot.Entity)
	if snapshot.Aggregate != "" {
		header = fmt.Sprintf("%s (%s)", snapshot.Entity, snapshot.Aggregate)
	}

	lines := []string{
		s.entity.Render(header),
		s.header.Render(fmt.Sprintf("fields: %d", snapshot.Len())),
	}
	lines = append(lines, fieldLines(snapshot, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func RenderBaseline(baseline domain.Baseline) string {
	s := newStyles()
	meta := []string{}
	if baseline.Origin != "" {
		meta = append(meta, "origin: "+string(baseline.Origin))
	}
	if !baseline.AcceptedAt.IsZero() {
		meta = append(meta, "accepted: "+baseline.AcceptedAt.UTC().Format(time.RFC3339))
	}

	lines := []string{RenderSnapshot(baseline.Snapshot)}
	if len(meta) > 0 {
		lines = append(lines, s.header.Render(strings.Join(meta, " ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func RenderBaselineList(ids []domain.EntityID) string {
	s := newStyles()
	lines := []string{s.header.Render(fmt.Sprintf("baselines: %d", len(ids)))}
	if len(ids) == 0 {
		lines = append(lines, s.empty.Render("No baselines recorded."))
	}
	for _, id := range ids {
		lines = append(lines, s.entity.Render(string(id)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func fieldLines(snapshot domain.LayoutSnapshot, s styles) []string {
	lines := make([]string, 0, len(snapshot.Fields))
	for _, field := range snapshot.Fields {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.position.Render(fmt.Sprintf("  [%d] ", field.Position)),
			s.fieldName.Render(field.Name+":"),
			" ",
			s.fieldType.Render(field.Type),
		))
	}
	return lines
}
