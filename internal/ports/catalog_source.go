package ports

import (
	"context"

	"github.com/bnema/levent-cli/internal/domain"
)

type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
