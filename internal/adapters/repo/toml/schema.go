package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Layouts []layoutSchema `toml:"layouts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported baselines schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type layoutSchema struct {
	Entity     string        `toml:"entity"`
	Origin     string        `toml:"origin,omitempty"`
	AcceptedAt string        `toml:"accepted_at,omitempty"`
	Fields     []fieldSchema `toml:"fields"`
}

type fieldSchema struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Position int    `toml:"position"`
}
