package ports

import (
	"context"

	"github.com/bnema/layoutguard/internal/domain"
)

type DeclarationSource interface {
	Declaration(ctx context.Context, id domain.EntityID) (string, error)
}
