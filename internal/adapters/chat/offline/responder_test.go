package offline

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		message string
		want    Topic
	}{
		{message: "Hello there", want: TopicGreeting},
		{message: "HEY", want: TopicGreeting},
		{message: "so much pressure at work", want: TopicStress},
		{message: "I'm worried about exams", want: TopicStress},
		{message: "this is hard", want: TopicGreeting},
		{message: "rough day", want: TopicDefault},
		{message: "", want: TopicDefault},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Classify(tc.message), tc.message)
	}
}

func TestResponderRepliesToLatestUserMessage(t *testing.T) {
	t.Parallel()

	random := mocks.NewMockRandom(t)
	random.EXPECT().IntN(3).Return(1).Once()
	responder := NewResponder(random, 0)

	reply, err := responder.Reply(context.Background(), []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: "persona"},
		{Role: domain.ChatRoleUser, Content: "hello"},
		{Role: domain.ChatRoleAssistant, Content: "yo"},
		{Role: domain.ChatRoleUser, Content: "I'm anxious"},
	})
	require.NoError(t, err)
	assert.Equal(t, responses[TopicStress][1], reply)
}

func TestResponderHonorsCancellationDuringDelay(t *testing.T) {
	t.Parallel()

	responder := NewResponder(nil, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := responder.Reply(ctx, []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResponderWaitsForDelay(t *testing.T) {
	t.Parallel()

	responder := NewResponder(nil, 20*time.Millisecond)
	start := time.Now()

	reply, err := responder.Reply(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, responses[TopicDefault], reply)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
