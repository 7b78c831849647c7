package models

// Message belongs to a conversation. MessageID is a UUIDv7 so the sort key is chronological.
type Message struct {
	ConversationID string     `dynamodbav:"conversationId" json:"conversationId"`
	MessageID      string     `dynamodbav:"messageId" json:"messageId"`
	SenderID       string     `dynamodbav:"senderId" json:"senderId"`
	Kind           string     `dynamodbav:"kind" json:"kind"`
	Body           string     `dynamodbav:"body,omitempty" json:"body,omitempty"`
	MediaKey       string     `dynamodbav:"mediaKey,omitempty" json:"mediaKey,omitempty"`
	CreatedAt      string     `dynamodbav:"createdAt" json:"createdAt"`
	Reactions      []Reaction `dynamodbav:"-" json:"reactions,omitempty"`
}

// Preview returns the text shown in the inbox for this message.
func (m *Message) Preview() string {
	switch m.Kind {
	case MessageImage:
		return "📷 Photo"
	case MessageVoice:
		return "🎤 Voice message"
	}
	const max = 80
	runes := []rune(m.Body)
	if len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return m.Body
}

// Reaction is one user's emoji on a message.
type Reaction struct {
	ConversationID string `dynamodbav:"conversationId" json:"-"`
	SK             string `dynamodbav:"SK" json:"-"` // "<messageId>#<userId>"
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	UserID         string `dynamodbav:"userId" json:"userId"`
	Emoji          string `dynamodbav:"emoji" json:"emoji"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// SendMessageInput is what a participant submits.
type SendMessageInput struct {
	Kind     string `json:"kind"`
	Body     string `json:"body"`
	MediaKey string `json:"mediaKey"`
}
