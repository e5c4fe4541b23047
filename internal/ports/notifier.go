package ports

import (
	"context"

	"github.com/bnema/levent-cli/internal/domain"
)

// Notifier receives progress events. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, domain.Event) {}
