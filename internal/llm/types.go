package llm

// Role represents a chat message role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
}

// Response is the result of a chat completion call.
type Response struct {
	Message Message
	Model   string
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
