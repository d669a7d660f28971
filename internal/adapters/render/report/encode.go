package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bnema/layoutguard/internal/application"
	"github.com/bnema/layoutguard/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", raw)
	}
}

type checkDocument struct {
	Kind    string           `json:"kind" yaml:"kind"`
	Summary summaryDocument  `json:"summary" yaml:"summary"`
	Reports []reportDocument `json:"reports" yaml:"reports"`
}

type summaryDocument struct {
	Checked    int `json:"checked" yaml:"checked"`
	Safe       int `json:"safe" yaml:"safe"`
	Violations int `json:"violations" yaml:"violations"`
	Unchecked  int `json:"unchecked" yaml:"unchecked"`
}

type reportDocument struct {
	Entity        string                `json:"entity" yaml:"entity"`
	Outcome       string                `json:"outcome" yaml:"outcome"`
	Verdict       string                `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Transition    string                `json:"transition,omitempty" yaml:"transition,omitempty"`
	Established   bool                  `json:"established" yaml:"established"`
	Stage         string                `json:"stage,omitempty" yaml:"stage,omitempty"`
	Error         string                `json:"error,omitempty" yaml:"error,omitempty"`
	Fields        []fieldDocument       `json:"fields,omitempty" yaml:"fields,omitempty"`
	Discrepancies []discrepancyDocument `json:"discrepancies,omitempty" yaml:"discrepancies,omitempty"`
}

type fieldDocument struct {
	Position int    `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
}

type discrepancyDocument struct {
	Kind        string `json:"kind" yaml:"kind"`
	Message     string `json:"message" yaml:"message"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	OldName     string `json:"old_name,omitempty" yaml:"old_name,omitempty"`
	NewName     string `json:"new_name,omitempty" yaml:"new_name,omitempty"`
	OldType     string `json:"old_type,omitempty" yaml:"old_type,omitempty"`
	NewType     string `json:"new_type,omitempty" yaml:"new_type,omitempty"`
	Position    *int   `json:"position,omitempty" yaml:"position,omitempty"`
	OldPosition *int   `json:"old_position,omitempty" yaml:"old_position,omitempty"`
	NewPosition *int   `json:"new_position,omitempty" yaml:"new_position,omitempty"`
	OldCount    *int   `json:"old_count,omitempty" yaml:"old_count,omitempty"`
	NewCount    *int   `json:"new_count,omitempty" yaml:"new_count,omitempty"`
}

type snapshotDocument struct {
	Kind      string          `json:"kind" yaml:"kind"`
	Entity    string          `json:"entity" yaml:"entity"`
	Aggregate string          `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Fields    []fieldDocument `json:"fields" yaml:"fields"`
}

type baselineDocument struct {
	Kind       string          `json:"kind" yaml:"kind"`
	Entity     string          `json:"entity" yaml:"entity"`
	Origin     string          `json:"origin,omitempty" yaml:"origin,omitempty"`
	AcceptedAt string          `json:"accepted_at,omitempty" yaml:"accepted_at,omitempty"`
	Fields     []fieldDocument `json:"fields" yaml:"fields"`
}

type baselineListDocument struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Entities []string `json:"entities" yaml:"entities"`
}

// Encode writes v as a json or yaml document. v is one of
// []application.CheckReport, domain.LayoutSnapshot, domain.Baseline or
// []domain.EntityID.
func Encode(w io.Writer, format Format, v any) error {
	doc, err := document(v)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func document(v any) (any, error) {
	switch v := v.(type) {
	case []application.CheckReport:
		summary := application.Summarize(v)
		reports := make([]reportDocument, 0, len(v))
		for _, report := range v {
			reports = append(reports, toReportDocument(report))
		}
		return checkDocument{
			Kind: "check",
			Summary: summaryDocument{
				Checked:    summary.Checked,
				Safe:       summary.Safe,
				Violations: summary.Violations,
				Unchecked:  summary.Unchecked,
			},
			Reports: reports,
		}, nil
	case domain.LayoutSnapshot:
		return snapshotDocument{
			Kind:      "snapshot",
			Entity:    string(v.Entity),
			Aggregate: v.Aggregate,
			Fields:    toFieldDocuments(v.Fields),
		}, nil
	case domain.Baseline:
		doc := baselineDocument{
			Kind:   "baseline",
			Entity: string(v.Snapshot.Entity),
			Origin: string(v.Origin),
			Fields: toFieldDocuments(v.Snapshot.Fields),
		}
		if !v.AcceptedAt.IsZero() {
			doc.AcceptedAt = v.AcceptedAt.UTC().Format(time.RFC3339)
		}
		return doc, nil
	case []domain.EntityID:
		entities := make([]string, 0, len(v))
		for _, id := range v {
			entities = append(entities, string(id))
		}
		return baselineListDocument{Kind: "baselines", Entities: entities}, nil
	default:
		return nil, fmt.Errorf("cannot encode %T", v)
	}
}

func toReportDocument(report application.CheckReport) reportDocument {
	doc := reportDocument{
		Entity:      string(report.Entity),
		Outcome:     string(report.Outcome),
		Established: report.Established,
	}

	if !report.Checked() {
		doc.Stage = string(report.Stage)
		if report.Err != nil {
			doc.Error = report.Err.Error()
		}
		return doc
	}

	doc.Verdict = string(report.Result.Verdict)
	doc.Transition = string(report.Transition)
	doc.Fields = toFieldDocuments(report.Snapshot.Fields)
	for _, d := range report.Result.Discrepancies {
		doc.Discrepancies = append(doc.Discrepancies, toDiscrepancyDocument(d))
	}
	return doc
}

func toFieldDocuments(fields []domain.Field) []fieldDocument {
	docs := make([]fieldDocument, 0, len(fields))
	for _, field := range fields {
		docs = append(docs, fieldDocument{Position: field.Position, Name: field.Name, Type: field.Type})
	}
	return docs
}

func toDiscrepancyDocument(d domain.Discrepancy) discrepancyDocument {
	doc := discrepancyDocument{Kind: string(d.Kind()), Message: Describe(d)}
	switch d := d.(type) {
	case domain.CountChanged:
		doc.OldCount, doc.NewCount = intPtr(d.OldCount), intPtr(d.NewCount)
	case domain.FieldAdded:
		doc.Name = d.Name
	case domain.FieldRemoved:
		doc.Name = d.Name
	case domain.PositionMismatch:
		doc.Name = d.Name
		doc.OldPosition, doc.NewPosition = intPtr(d.OldPosition), intPtr(d.NewPosition)
	case domain.NameChangedAtPosition:
		doc.Position = intPtr(d.Position)
		doc.OldName, doc.NewName = d.OldName, d.NewName
	case domain.TypeChangedAtPosition:
		doc.Position = intPtr(d.Position)
		doc.Name = d.FieldName
		doc.OldType, doc.NewType = d.OldType, d.NewType
	}
	return doc
}

func intPtr(v int) *int {
	return &v
}
