package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	WelcomeMessage = "Hey there! I'm LeVent James, your personal mental wellness coach. " +
		"Feel free to talk about whatever's on your mind. I'm here to listen and help you work through it. " +
		"Remember, even MVPs need to take care of their mental game!"

	ApologyMessage = "Sorry, I'm having trouble connecting right now. Let's try again in a moment."
)

type CoachOptions struct {
	SystemPrompt string
}

// Coach runs chat turns against a backend and records each turn as an
// interaction on the tracker.
type Coach struct {
	backend  ports.ChatBackend
	tracker  *Tracker
	selector *Selector
	logger   *zap.Logger
	id       string

	mu           sync.Mutex
	conversation *domain.Conversation
}

func NewCoach(backend ports.ChatBackend, tracker *Tracker, selector *Selector, logger *zap.Logger, opts CoachOptions) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()
	return &Coach{
		backend:      backend,
		tracker:      tracker,
		selector:     selector,
		logger:       logger.Named("coach").With(zap.String("conversation_id", id)),
		id:           id,
		conversation: domain.NewConversation(opts.SystemPrompt),
	}
}

func (c *Coach) ConversationID() string {
	return c.id
}

func (c *Coach) Welcome(ctx context.Context) (Greeting, error) {
	firstTime, err := c.tracker.CheckFirstTimeUser(ctx)
	if err != nil {
		return Greeting{}, fmt.Errorf("check first time user: %w", err)
	}

	return Greeting{Text: WelcomeMessage, FirstTimeUser: firstTime}, nil
}

// Send answers one user message. A failing backend degrades to an apology
// instead of an error; only storage failures are returned.
func (c *Coach) Send(ctx context.Context, text string) (Reply, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return Reply{}, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.conversation.AddUser(message)

	reply := Reply{}
	answer, err := c.backend.Reply(ctx, c.conversation.Messages())
	switch {
	case err != nil:
		if errors.Is(err, context.Canceled) {
			return Reply{}, err
		}
		c.logger.Warn("chat backend failed", zap.Error(err))
		reply.Text = ApologyMessage
		reply.Degraded = true
	case strings.TrimSpace(answer) == "":
		c.logger.Warn("chat backend returned an empty reply")
		reply.Text = ApologyMessage
		reply.Degraded = true
	default:
		reply.Text = strings.TrimSpace(answer)
		c.conversation.AddAssistant(reply.Text)
	}

	interaction, err := c.tracker.LogInteraction(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("log interaction: %w", err)
	}
	reply.Interaction = interaction

	c.logger.Debug("chat turn",
		zap.Int("history", c.conversation.Len()),
		zap.Int("today_interactions", interaction.TodayInteractions),
		zap.Bool("degraded", reply.Degraded))

	if interaction.CheckInCompleted && c.selector != nil {
		suggestion, err := c.selector.Suggest(message)
		switch {
		case err == nil:
			reply.Suggestion = &suggestion
		case errors.Is(err, domain.ErrNoSuggestionAvailable):
			c.logger.Info("no playbook suggestion available")
		default:
			return Reply{}, fmt.Errorf("suggest playbook entry: %w", err)
		}
	}

	return reply, nil
}

func (c *Coach) History() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversation.Messages()
}
