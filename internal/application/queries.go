package application

import "github.com/bnema/layoutguard/internal/domain"

type CheckStage string

const (
	StageDeclaration CheckStage = "declaration"
	StageExtract     CheckStage = "extract"
	StageBaseline    CheckStage = "baseline"
	StageEstablish   CheckStage = "establish"
)

// CheckReport is the result of checking one entity. When Outcome is
// unchecked, Err and Stage say what failed and Result is meaningless.
type CheckReport struct {
	Entity     domain.EntityID
	Outcome    domain.Outcome
	Snapshot   domain.LayoutSnapshot
	Baseline   *domain.Baseline
	Result     domain.ComparisonResult
	Transition domain.Transition
	// Established is true when this check wrote the entity's first baseline.
	Established bool
	Stage       CheckStage
	Err         error
}

func (r CheckReport) Checked() bool {
	return r.Outcome != domain.OutcomeUnchecked
}

type Summary struct {
	Checked    int
	Safe       int
	Violations int
	Unchecked  int
}

func Summarize(reports []CheckReport) Summary {
	summary := Summary{Checked: len(reports)}
	for _, report := range reports {
		switch report.Outcome {
		case domain.OutcomeSafe:
			summary.Safe++
		case domain.OutcomeViolations:
			summary.Violations++
		default:
			summary.Unchecked++
		}
	}
	return summary
}
