package domain

type Outcome string

const (
	OutcomeSafe       Outcome = "safe"
	OutcomeViolations Outcome = "violations"
	OutcomeUnchecked  Outcome = "unchecked"
)

func OutcomeOf(result ComparisonResult) Outcome {
	if result.Safe() {
		return OutcomeSafe
	}
	return OutcomeViolations
}
