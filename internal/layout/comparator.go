package layout

import "github.com/bnema/layoutguard/internal/domain"

// Compare classifies current against baseline. A nil baseline is a first
// observation. Every rule category runs against the full pair of snapshots
// and appends to one accumulator: shape findings first, then positional
// findings in ascending position order.
func Compare(current domain.LayoutSnapshot, baseline *domain.LayoutSnapshot) domain.ComparisonResult {
	if baseline == nil {
		return domain.ComparisonResult{Verdict: domain.VerdictFirstObservation}
	}

	var found []domain.Discrepancy
	found = append(found, shapeDiscrepancies(current, *baseline)...)
	found = append(found, positionalDiscrepancies(current, *baseline)...)

	if len(found) == 0 {
		return domain.ComparisonResult{Verdict: domain.VerdictUnchanged}
	}
	return domain.ComparisonResult{Verdict: domain.VerdictViolations, Discrepancies: found}
}

func shapeDiscrepancies(current, baseline domain.LayoutSnapshot) []domain.Discrepancy {
	if current.Len() == baseline.Len() {
		return nil
	}

	found := []domain.Discrepancy{
		domain.CountChanged{OldCount: baseline.Len(), NewCount: current.Len()},
	}

	baselinePositions := positionsByName(baseline)
	for _, field := range current.Fields {
		if _, ok := baselinePositions[field.Name]; !ok {
			found = append(found, domain.FieldAdded{Name: field.Name})
		}
	}

	currentPositions := positionsByName(current)
	for _, field := range baseline.Fields {
		if _, ok := currentPositions[field.Name]; !ok {
			found = append(found, domain.FieldRemoved{Name: field.Name})
		}
	}

	return found
}

func positionalDiscrepancies(current, baseline domain.LayoutSnapshot) []domain.Discrepancy {
	baselinePositions := positionsByName(baseline)
	currentPositions := positionsByName(current)

	shorter := min(current.Len(), baseline.Len())

	var found []domain.Discrepancy
	for i, cur := range current.Fields {
		oldPosition, inBaseline := baselinePositions[cur.Name]
		if i >= shorter {
			if inBaseline && oldPosition != cur.Position {
				found = append(found, domain.PositionMismatch{Name: cur.Name, OldPosition: oldPosition, NewPosition: cur.Position})
			}
			continue
		}

		old := baseline.Fields[i]
		if old.Name == cur.Name {
			if old.Type != cur.Type {
				found = append(found, domain.TypeChangedAtPosition{
					Position:  cur.Position,
					FieldName: cur.Name,
					OldType:   old.Type,
					NewType:   cur.Type,
				})
			}
			continue
		}

		// A slot whose two names both survive elsewhere is fully explained
		// by moves; anything else also changed what lives at this offset.
		_, oldStillPresent := currentPositions[old.Name]
		if !inBaseline || !oldStillPresent {
			found = append(found, domain.NameChangedAtPosition{Position: cur.Position, OldName: old.Name, NewName: cur.Name})
		}
		if inBaseline {
			found = append(found, domain.PositionMismatch{Name: cur.Name, OldPosition: oldPosition, NewPosition: cur.Position})
		}
	}

	return found
}

func positionsByName(snapshot domain.LayoutSnapshot) map[string]int {
	positions := make(map[string]int, len(snapshot.Fields))
	for _, field := range snapshot.Fields {
		positions[field.Name] = field.Position
	}
	return positions
}
