package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/layoutguard/internal/domain"
	"github.com/bnema/layoutguard/internal/ports"
)

const DefaultFileName = "lib.rs"

// Source reads declarations from <root>/<entity>/<file> in the working tree.
type Source struct {
	root     string
	fileName string
}

var _ ports.DeclarationSource = (*Source)(nil)

func NewSource(root, fileName string) *Source {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if root == "" {
		root = "."
	}
	return &Source{root: filepath.Clean(root), fileName: fileName}
}

func (s *Source) Declaration(ctx context.Context, id domain.EntityID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.Path(id)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrDeclarationNotFound, path)
		}
		return "", fmt.Errorf("read declaration %q: %w", path, err)
	}

	return string(data), nil
}

// Entities lists the directories under the root that contain a declaration
// file, sorted by name.
func (s *Source) Entities(ctx context.Context) ([]domain.EntityID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list entities in %q: %w", s.root, err)
	}

	var ids []domain.EntityID
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(s.root, entry.Name(), s.fileName))
		if err != nil || info.IsDir() {
			continue
		}
		ids = append(ids, domain.EntityID(entry.Name()))
	}

	return ids, nil
}

// Path returns the declaration file of id. Entity ids that would escape the
// root are rejected.
func (s *Source) Path(id domain.EntityID) (string, error) {
	rel, err := EntityPath(id, s.fileName)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, rel), nil
}

// EntityPath is the slash-separated path of an entity's declaration relative
// to the source root.
func EntityPath(id domain.EntityID, fileName string) (string, error) {
	trimmed := strings.TrimSpace(string(id))
	if trimmed == "" {
		return "", errors.New("entity id is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid entity id %q", id)
	}

	if fileName == "" {
		fileName = DefaultFileName
	}
	return filepath.ToSlash(filepath.Join(cleaned, fileName)), nil
}
