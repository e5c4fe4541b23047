package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStartsWithSystemPrompt(t *testing.T) {
	t.Parallel()

	conv := NewConversation("")
	messages := conv.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, ChatRoleSystem, messages[0].Role)
	assert.Equal(t, DefaultPersonaPrompt, messages[0].Content)
}

func TestConversationTrimsToSystemPromptAndRecentMessages(t *testing.T) {
	t.Parallel()

	conv := NewConversation("persona")
	for i := 0; i < 5; i++ {
		conv.AddUser(fmt.Sprintf("user %d", i))
		conv.AddAssistant(fmt.Sprintf("assistant %d", i))
	}

	// 1 system + 10 turns exceeds the limit on the final reply.
	messages := conv.Messages()
	require.Len(t, messages, 5)
	assert.Equal(t, ChatMessage{Role: ChatRoleSystem, Content: "persona"}, messages[0])
	assert.Equal(t, ChatMessage{Role: ChatRoleUser, Content: "user 3"}, messages[1])
	assert.Equal(t, ChatMessage{Role: ChatRoleAssistant, Content: "assistant 4"}, messages[4])
}

func TestConversationKeepsHistoryUnderLimit(t *testing.T) {
	t.Parallel()

	conv := NewConversation("persona")
	conv.AddUser("hi")
	conv.AddAssistant("hey")

	assert.Equal(t, 3, conv.Len())
}

func TestConversationTrimsRunOfUserTurns(t *testing.T) {
	t.Parallel()

	conv := NewConversation("persona")
	for i := 0; i < 30; i++ {
		conv.AddUser(fmt.Sprintf("user %d", i))
		assert.LessOrEqual(t, conv.Len(), 10)
	}

	messages := conv.Messages()
	assert.Equal(t, ChatRoleSystem, messages[0].Role)
	assert.Equal(t, ChatMessage{Role: ChatRoleUser, Content: "user 29"}, messages[len(messages)-1])
}
