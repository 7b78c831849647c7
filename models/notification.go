package models

// Notification is an inbox entry outside of conversations.
type Notification struct {
	UserID    string            `dynamodbav:"userId" json:"userId"`
	SK        string            `dynamodbav:"SK" json:"id"` // "<createdAt>#<id>"
	Kind      string            `dynamodbav:"kind" json:"kind"`
	ActorID   string            `dynamodbav:"actorId,omitempty" json:"actorId,omitempty"`
	Payload   map[string]string `dynamodbav:"payload,omitempty" json:"payload,omitempty"`
	Read      bool              `dynamodbav:"read" json:"read"`
	CreatedAt string            `dynamodbav:"createdAt" json:"createdAt"`
}
