package domain

import (
	"fmt"
	"strings"
)

type EntityID string

// Field is a single declared storage member. Position is the declaration
// index and equals the binary layout order.
type Field struct {
	Name     string
	Type     string
	Position int
}

type LayoutSnapshot struct {
	Entity EntityID
	// Aggregate is the declared struct name. It is informational only.
	Aggregate string
	Fields    []Field
}

func (s LayoutSnapshot) Len() int {
	return len(s.Fields)
}

func (s LayoutSnapshot) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// PositionOf returns the recorded position of the named field.
func (s LayoutSnapshot) PositionOf(name string) (int, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.Position, true
		}
	}
	return 0, false
}

func (s LayoutSnapshot) Validate() error {
	if strings.TrimSpace(string(s.Entity)) == "" {
		return fmt.Errorf("entity is required")
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for i, field := range s.Fields {
		if field.Position != i {
			return fmt.Errorf("field %q has position %d, want %d", field.Name, field.Position, i)
		}
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("field at position %d has no name", i)
		}
		if strings.TrimSpace(field.Type) == "" {
			return fmt.Errorf("field %q has no type", field.Name)
		}
		if _, ok := seen[field.Name]; ok {
			return fmt.Errorf("duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	return nil
}
