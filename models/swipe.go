package models

// Swipe records one Tornado decision. QUOTA# rows share the table and carry Count.
type Swipe struct {
	PK        string `dynamodbav:"PK" json:"-"` // "USER#<swiperId>"
	SK        string `dynamodbav:"SK" json:"-"` // "SWIPE#<targetId>"
	SwiperID  string `dynamodbav:"swiperId" json:"swiperId"`
	TargetID  string `dynamodbav:"targetId" json:"targetId"`
	Direction string `dynamodbav:"direction" json:"direction"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipeResult is returned to the client after a swipe.
type SwipeResult struct {
	Direction      string `json:"direction"`
	Matched        bool   `json:"matched"`
	ConversationID string `json:"conversationId,omitempty"`
	Remaining      int    `json:"remaining"`
}

// DeckCard is a Tornado candidate.
type DeckCard struct {
	Profile ProfileCard `json:"profile"`
	Score   int         `json:"score"`
}
