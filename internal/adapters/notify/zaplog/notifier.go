package zaplog

import (
	"context"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
	"go.uber.org/zap"
)

// Notifier records progress events in the structured log.
type Notifier struct {
	logger *zap.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger.Named("events")}
}

func (n *Notifier) Notify(_ context.Context, event domain.Event) {
	fields := []zap.Field{
		zap.String("kind", string(event.Kind)),
		zap.Int("streak", event.Streak),
	}
	if event.Milestone != nil {
		fields = append(fields, zap.String("headline", event.Milestone.Headline))
	}

	n.logger.Info("progress event", fields...)
}
