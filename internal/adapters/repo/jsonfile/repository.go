// Package jsonfile reads and writes the flat storage-layouts.json format:
// an object keyed by entity whose values are ordered field lists. The format
// carries no acceptance metadata.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/layoutguard/internal/adapters/repo/atomicfile"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/bnema/layoutguard/internal/ports"
)

const tempFilePattern = ".storage-layouts-*.json.tmp"

type fieldRecord struct {
	Name      string `json:"name"`
	FieldType string `json:"field_type"`
	Position  int    `json:"position"`
}

type Repository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.BaselineStore = (*Repository)(nil)

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("baselines path is empty")
	}
	path, err := atomicfile.NormalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: atomicfile.LockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Put(ctx context.Context, id domain.EntityID, baseline domain.Baseline) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	baseline.Snapshot.Entity = id
	if err := baseline.Snapshot.Validate(); err != nil {
		return fmt.Errorf("put baseline %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	layouts, err := r.read()
	if err != nil {
		return err
	}

	records := make([]fieldRecord, 0, len(baseline.Snapshot.Fields))
	for _, field := range baseline.Snapshot.Fields {
		records = append(records, fieldRecord{Name: field.Name, FieldType: field.Type, Position: field.Position})
	}
	layouts[string(id)] = records

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(layouts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baselines file: %w", err)
	}

	return atomicfile.Write(r.path, tempFilePattern, append(data, '\n'))
}

func (r *Repository) Get(ctx context.Context, id domain.EntityID) (domain.Baseline, error) {
	if err := ctx.Err(); err != nil {
		return domain.Baseline{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	layouts, err := r.read()
	if err != nil {
		return domain.Baseline{}, err
	}

	records, ok := layouts[string(id)]
	if !ok {
		return domain.Baseline{}, fmt.Errorf("%w: %s", domain.ErrBaselineNotFound, id)
	}

	fields := make([]domain.Field, 0, len(records))
	for _, record := range records {
		fields = append(fields, domain.Field{Name: record.Name, Type: record.FieldType, Position: record.Position})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Position < fields[j].Position })

	snapshot := domain.LayoutSnapshot{Entity: id, Fields: fields}
	if err := snapshot.Validate(); err != nil {
		return domain.Baseline{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptBaseline, id, err)
	}

	return domain.Baseline{Snapshot: snapshot}, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.EntityID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	layouts, err := r.read()
	if err != nil {
		return nil, err
	}

	ids := make([]domain.EntityID, 0, len(layouts))
	for id := range layouts {
		ids = append(ids, domain.EntityID(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func (r *Repository) read() (map[string][]fieldRecord, error) {
	data, err := atomicfile.Read(r.path)
	if err != nil {
		return nil, err
	}

	layouts := map[string][]fieldRecord{}
	if len(data) == 0 {
		return layouts, nil
	}
	if err := json.Unmarshal(data, &layouts); err != nil {
		return nil, fmt.Errorf("decode baselines file: %w", err)
	}
	if layouts == nil {
		layouts = map[string][]fieldRecord{}
	}

	return layouts, nil
}
