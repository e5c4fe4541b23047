// Package offline answers chat turns from canned lines when no API key is
// configured.
package offline

import (
	"context"
	"strings"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
)

type Topic string

const (
	TopicGreeting Topic = "greeting"
	TopicStress   Topic = "stress"
	TopicDefault  Topic = "default"
)

var responses = map[Topic][]string{
	TopicGreeting: {
		"Hey champ! LeVent James here, ready to talk it out with you.",
		"What's up? The King is in the building and ready to listen.",
		"Yo! LeVent's got your back today. What's on your mind?",
	},
	TopicStress: {
		"I feel you. Pressure is like a tough playoff game - you gotta take it one play at a time. Maybe try some deep breathing?",
		"Even champions get stressed. LeVent recommends taking a mental timeout - 5 minutes of quiet can reset your game.",
		"That's a lot on your plate! Remember, not every pass needs to be perfect. What's one small step you can take right now?",
	},
	TopicDefault: {
		"I hear what you're saying. Sometimes the best offense is just taking care of your mental defense. What do you think might help?",
		"LeVent's been there too. Small steps lead to big victories, on and off the court. Let's figure this out together.",
		"That's real talk. Remember, it's not about never falling down - it's about how we get back up. What's your next move?",
	},
}

var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{topic: TopicGreeting, keywords: []string{"hello", "hi", "hey"}},
	{topic: TopicStress, keywords: []string{"stress", "anxious", "worried", "pressure"}},
}

type Responder struct {
	random ports.Random
	delay  time.Duration
}

var _ ports.ChatBackend = (*Responder)(nil)

// NewResponder waits delay before each reply to mimic network latency.
func NewResponder(random ports.Random, delay time.Duration) *Responder {
	if random == nil {
		random = ports.SystemRandom{}
	}

	return &Responder{random: random, delay: delay}
}

func (r *Responder) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	lines := responses[Classify(lastUserMessage(history))]
	return lines[r.random.IntN(len(lines))], nil
}

// Classify matches by substring, so "this" counts as a greeting.
func Classify(message string) Topic {
	lower := strings.ToLower(message)
	for _, rule := range topicKeywords {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.topic
			}
		}
	}
	return TopicDefault
}

func lastUserMessage(history []domain.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.ChatRoleUser {
			return history[i].Content
		}
	}
	return ""
}
