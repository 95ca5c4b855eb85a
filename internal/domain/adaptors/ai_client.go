package adaptors

import "context"

// ChatMessage is one turn of a chat completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
