package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/layoutguard/internal/domain"
	"github.com/bnema/layoutguard/internal/layout"
	"github.com/bnema/layoutguard/internal/ports"
	"go.uber.org/zap"
)

type Config struct {
	Marker string
	Logger *zap.Logger
}

type Service struct {
	source ports.DeclarationSource
	store  ports.BaselineStore
	clock  ports.Clock
	marker string
	logger *zap.Logger
}

func NewService(source ports.DeclarationSource, store ports.BaselineStore, clock ports.Clock, cfg Config) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		source: source,
		store:  store,
		clock:  clock,
		marker: cfg.Marker,
		logger: logger.Named("check"),
	}
}

// Check runs one independent check. Failures never escape as errors: they
// are reported with OutcomeUnchecked so a caller can keep going.
func (s *Service) Check(ctx context.Context, id domain.EntityID, opts CheckOptions) CheckReport {
	report := s.check(ctx, id, opts)

	fields := []zap.Field{
		zap.String("entity", string(id)),
		zap.String("outcome", string(report.Outcome)),
	}
	if report.Checked() {
		fields = append(fields,
			zap.String("verdict", string(report.Result.Verdict)),
			zap.String("transition", string(report.Transition)),
			zap.Int("discrepancies", len(report.Result.Discrepancies)),
			zap.Bool("established", report.Established),
		)
		s.logger.Debug("layout checked", fields...)
	} else {
		fields = append(fields, zap.String("stage", string(report.Stage)), zap.Error(report.Err))
		s.logger.Warn("layout not checked", fields...)
	}

	return report
}

func (s *Service) check(ctx context.Context, id domain.EntityID, opts CheckOptions) CheckReport {
	report := CheckReport{Entity: id, Transition: domain.TransitionNone}

	snapshot, stage, err := s.extract(ctx, id)
	if err != nil {
		return unchecked(report, stage, err)
	}
	report.Snapshot = snapshot

	state := domain.BaselineEstablished
	baseline, err := s.store.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrBaselineNotFound):
		state = domain.BaselineUnknown
	case err != nil:
		return unchecked(report, StageBaseline, fmt.Errorf("get baseline: %w", err))
	default:
		report.Baseline = &baseline
	}

	var previous *domain.LayoutSnapshot
	if report.Baseline != nil {
		previous = &report.Baseline.Snapshot
	}
	report.Result = layout.Compare(snapshot, previous)
	report.Transition = domain.NextTransition(state, report.Result)
	report.Outcome = domain.OutcomeOf(report.Result)

	if report.Transition == domain.TransitionEstablish && !opts.DryRun {
		established := domain.Baseline{
			Snapshot:   snapshot,
			AcceptedAt: s.clock.Now(),
			Origin:     domain.OriginFirstObservation,
		}
		if err := s.store.Put(ctx, id, established); err != nil {
			return unchecked(report, StageEstablish, fmt.Errorf("establish baseline: %w", err))
		}
		report.Baseline = &established
		report.Established = true
	}

	return report
}

func unchecked(report CheckReport, stage CheckStage, err error) CheckReport {
	report.Outcome = domain.OutcomeUnchecked
	report.Stage = stage
	report.Err = err
	return report
}

// CheckAll checks each entity independently, in order.
func (s *Service) CheckAll(ctx context.Context, ids []domain.EntityID, opts CheckOptions) []CheckReport {
	reports := make([]CheckReport, 0, len(ids))
	for _, id := range ids {
		reports = append(reports, s.Check(ctx, id, opts))
	}
	return reports
}

// Show extracts the current layout without touching the baseline store.
func (s *Service) Show(ctx context.Context, id domain.EntityID) (domain.LayoutSnapshot, error) {
	snapshot, _, err := s.extract(ctx, id)
	return snapshot, err
}

// Accept replaces the stored baseline with the current layout, whatever the
// comparison would say.
func (s *Service) Accept(ctx context.Context, id domain.EntityID) (domain.Baseline, error) {
	snapshot, _, err := s.extract(ctx, id)
	if err != nil {
		return domain.Baseline{}, err
	}

	baseline := domain.Baseline{
		Snapshot:   snapshot,
		AcceptedAt: s.clock.Now(),
		Origin:     domain.OriginAccepted,
	}
	if err := s.store.Put(ctx, id, baseline); err != nil {
		return domain.Baseline{}, fmt.Errorf("put baseline: %w", err)
	}

	s.logger.Info("baseline accepted", zap.String("entity", string(id)), zap.Int("fields", snapshot.Len()))
	return baseline, nil
}

func (s *Service) Baseline(ctx context.Context, id domain.EntityID) (domain.Baseline, error) {
	baseline, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Baseline{}, fmt.Errorf("get baseline: %w", err)
	}
	return baseline, nil
}

func (s *Service) Baselines(ctx context.Context) ([]domain.EntityID, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	return ids, nil
}

func (s *Service) extract(ctx context.Context, id domain.EntityID) (domain.LayoutSnapshot, CheckStage, error) {
	text, err := s.source.Declaration(ctx, id)
	if err != nil {
		return domain.LayoutSnapshot{}, StageDeclaration, fmt.Errorf("read declaration: %w", err)
	}

	snapshot, err := layout.Extract(text, id, layout.ExtractOptions{Marker: s.marker})
	if err != nil {
		return domain.LayoutSnapshot{}, StageExtract, fmt.Errorf("extract layout: %w", err)
	}

	return snapshot, "", nil
}
