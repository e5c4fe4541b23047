package domain

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

const (
	maxConversationMessages = 10
	keptRecentMessages      = 4
)

const DefaultPersonaPrompt = "You are LeVent James, a supportive, wise, and unintentionally hilarious AI chatbot modeled after NBA legend LeBron James. " +
	"Your responses should include empathy, motivational 'dad wisdom,' and lighthearted basketball-themed humor. " +
	"You're like a mix between a life coach and a funny hype man. Keep responses concise (2-3 sentences) but impactful. " +
	"Use basketball metaphors when appropriate and occasionally refer to yourself in the third person. " +
	"Your goal is to help users vent their frustrations and find practical solutions to improve their mental wellness."

type ChatMessage struct {
	Role    ChatRole
	Content string
}

// Conversation is the chat history sent to a backend. The first message is
// always the system prompt.
type Conversation struct {
	messages []ChatMessage
}

func NewConversation(systemPrompt string) *Conversation {
	if systemPrompt == "" {
		systemPrompt = DefaultPersonaPrompt
	}

	return &Conversation{
		messages: []ChatMessage{{Role: ChatRoleSystem, Content: systemPrompt}},
	}
}

func (c *Conversation) AddUser(content string) {
	c.messages = append(c.messages, ChatMessage{Role: ChatRoleUser, Content: content})
	c.trim()
}

func (c *Conversation) AddAssistant(content string) {
	c.messages = append(c.messages, ChatMessage{Role: ChatRoleAssistant, Content: content})
	c.trim()
}

// trim cuts the history back to the system prompt plus the most recent
// messages once it grows past the limit. Unanswered user turns count too.
func (c *Conversation) trim() {
	if len(c.messages) <= maxConversationMessages {
		return
	}

	trimmed := make([]ChatMessage, 0, keptRecentMessages+1)
	trimmed = append(trimmed, c.messages[0])
	trimmed = append(trimmed, c.messages[len(c.messages)-keptRecentMessages:]...)
	c.messages = trimmed
}

func (c *Conversation) Messages() []ChatMessage {
	return append([]ChatMessage(nil), c.messages...)
}

func (c *Conversation) Len() int {
	return len(c.messages)
}
