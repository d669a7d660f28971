package ports

import (
	"context"

	"github.com/bnema/layoutguard/internal/domain"
)

// BaselineStore persists the accepted layout of each entity. Get returns
// domain.ErrBaselineNotFound when nothing was recorded yet.
type BaselineStore interface {
	Get(ctx context.Context, id domain.EntityID) (domain.Baseline, error)
	Put(ctx context.Context, id domain.EntityID, baseline domain.Baseline) error
	List(ctx context.Context) ([]domain.EntityID, error)
}
