package ports

import (
	"context"

	"github.com/bnema/levent-cli/internal/domain"
)

// ProgressStore persists the progress record. Load returns the zero state,
// not an error, when nothing has been saved yet.
type ProgressStore interface {
	Load(ctx context.Context) (domain.ProgressState, error)
	Save(ctx context.Context, state domain.ProgressState) error
}
