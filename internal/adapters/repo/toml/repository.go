package toml

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/layoutguard/internal/adapters/repo/atomicfile"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/bnema/layoutguard/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	BaselinesPathKey     = "baselines.path"
	DefaultBaselinesFile = "storage-layouts.toml"
	tempFilePattern      = ".storage-layouts-*.toml.tmp"
)

type Repository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.BaselineStore = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	cfg.SetDefault(BaselinesPathKey, DefaultBaselinesFile)

	path := cfg.GetString(BaselinesPathKey)
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

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(baseline)
	updated := false
	for i := range file.Layouts {
		if file.Layouts[i].Entity == encoded.Entity {
			file.Layouts[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Layouts = append(file.Layouts, encoded)
		sort.Slice(file.Layouts, func(i, j int) bool {
			return file.Layouts[i].Entity < file.Layouts[j].Entity
		})
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Get(ctx context.Context, id domain.EntityID) (domain.Baseline, error) {
	if err := ctx.Err(); err != nil {
		return domain.Baseline{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Baseline{}, err
	}

	for _, entry := range file.Layouts {
		if entry.Entity == string(id) {
			return fromSchema(entry)
		}
	}

	return domain.Baseline{}, fmt.Errorf("%w: %s", domain.ErrBaselineNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.EntityID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	ids := make([]domain.EntityID, 0, len(file.Layouts))
	for _, entry := range file.Layouts {
		ids = append(ids, domain.EntityID(entry.Entity))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := atomicfile.Read(r.path)
	if err != nil {
		return fileSchema{}, err
	}
	if data == nil {
		return fileSchema{Version: currentSchemaVersion}, nil
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode baselines file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode baselines file: %w", err)
	}

	return atomicfile.Write(r.path, tempFilePattern, data)
}

func toSchema(baseline domain.Baseline) layoutSchema {
	fields := make([]fieldSchema, 0, len(baseline.Snapshot.Fields))
	for _, field := range baseline.Snapshot.Fields {
		fields = append(fields, fieldSchema{Name: field.Name, Type: field.Type, Position: field.Position})
	}

	return layoutSchema{
		Entity:     string(baseline.Snapshot.Entity),
		Origin:     string(baseline.Origin),
		AcceptedAt: formatTime(baseline.AcceptedAt),
		Fields:     fields,
	}
}

// fromSchema rebuilds a baseline in stored position order. Records that do
// not form a valid snapshot are rejected rather than repaired.
func fromSchema(entry layoutSchema) (domain.Baseline, error) {
	fields := make([]domain.Field, 0, len(entry.Fields))
	for _, field := range entry.Fields {
		fields = append(fields, domain.Field{Name: field.Name, Type: field.Type, Position: field.Position})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Position < fields[j].Position })

	snapshot := domain.LayoutSnapshot{Entity: domain.EntityID(entry.Entity), Fields: fields}
	if err := snapshot.Validate(); err != nil {
		return domain.Baseline{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptBaseline, entry.Entity, err)
	}

	return domain.Baseline{
		Snapshot:   snapshot,
		AcceptedAt: parseTime(entry.AcceptedAt),
		Origin:     domain.BaselineOrigin(entry.Origin),
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
