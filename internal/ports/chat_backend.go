package ports

import (
	"context"

	"github.com/bnema/levent-cli/internal/domain"
)

type ChatBackend interface {
	Reply(ctx context.Context, history []domain.ChatMessage) (string, error)
}
