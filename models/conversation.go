package models

// Conversation is a direct or group thread.
type Conversation struct {
	ConversationID     string   `dynamodbav:"conversationId" json:"conversationId"`
	Kind               string   `dynamodbav:"kind" json:"kind"`
	Participants       []string `dynamodbav:"participants" json:"participants"`
	Title              string   `dynamodbav:"title,omitempty" json:"title,omitempty"`
	CreatedAt          string   `dynamodbav:"createdAt" json:"createdAt"`
	LastMessageAt      string   `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	LastMessagePreview string   `dynamodbav:"lastMessagePreview,omitempty" json:"lastMessagePreview,omitempty"`
}

// Participant links a user to a conversation and tracks read progress.
type Participant struct {
	UserID         string `dynamodbav:"userId" json:"userId"`
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	JoinedAt       string `dynamodbav:"joinedAt" json:"joinedAt"`
	LastReadAt     string `dynamodbav:"lastReadAt,omitempty" json:"lastReadAt,omitempty"`
}

// ConversationSummary is one row of the inbox.
type ConversationSummary struct {
	Conversation
	Members     []ProfileCard `json:"members"`
	UnreadCount int           `json:"unreadCount"`
}

// UnreadSummary backs the badge the client polls every 30 seconds.
type UnreadSummary struct {
	Messages      int `json:"messages"`
	Notifications int `json:"notifications"`
	Total         int `json:"total"`
}
