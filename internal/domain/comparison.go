package domain

type Verdict string

const (
	VerdictUnchanged        Verdict = "unchanged"
	VerdictFirstObservation Verdict = "first_observation"
	VerdictViolations       Verdict = "violations"
)

type ComparisonResult struct {
	Verdict       Verdict
	Discrepancies []Discrepancy
}

func (r ComparisonResult) Safe() bool {
	return r.Verdict == VerdictUnchanged || r.Verdict == VerdictFirstObservation
}

type DiscrepancyKind string

const (
	KindCountChanged          DiscrepancyKind = "count_changed"
	KindFieldAdded            DiscrepancyKind = "field_added"
	KindFieldRemoved          DiscrepancyKind = "field_removed"
	KindPositionMismatch      DiscrepancyKind = "position_mismatch"
	KindNameChangedAtPosition DiscrepancyKind = "name_changed_at_position"
	KindTypeChangedAtPosition DiscrepancyKind = "type_changed_at_position"
)

// Discrepancy is one classified difference between a baseline and the
// current layout. The set of implementations is closed.
type Discrepancy interface {
	Kind() DiscrepancyKind
	discrepancy()
}

type CountChanged struct {
	OldCount int
	NewCount int
}

type FieldAdded struct {
	Name string
}

type FieldRemoved struct {
	Name string
}

type PositionMismatch struct {
	Name        string
	OldPosition int
	NewPosition int
}

type NameChangedAtPosition struct {
	Position int
	OldName  string
	NewName  string
}

type TypeChangedAtPosition struct {
	Position  int
	FieldName string
	OldType   string
	NewType   string
}

func (CountChanged) Kind() DiscrepancyKind          { return KindCountChanged }
func (FieldAdded) Kind() DiscrepancyKind            { return KindFieldAdded }
func (FieldRemoved) Kind() DiscrepancyKind          { return KindFieldRemoved }
func (PositionMismatch) Kind() DiscrepancyKind      { return KindPositionMismatch }
func (NameChangedAtPosition) Kind() DiscrepancyKind { return KindNameChangedAtPosition }
func (TypeChangedAtPosition) Kind() DiscrepancyKind { return KindTypeChangedAtPosition }

func (CountChanged) discrepancy()          {}
func (FieldAdded) discrepancy()            {}
func (FieldRemoved) discrepancy()          {}
func (PositionMismatch) discrepancy()      {}
func (NameChangedAtPosition) discrepancy() {}
func (TypeChangedAtPosition) discrepancy() {}
