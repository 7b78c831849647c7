package models

// MatchmakingAnswers holds a user's questionnaire responses.
type MatchmakingAnswers struct {
	UserID    string            `dynamodbav:"userId" json:"userId"`
	Answers   map[string]string `dynamodbav:"answers" json:"answers"`
	UpdatedAt string            `dynamodbav:"updatedAt" json:"updatedAt"`
}

// Suggestion is a profile ranked by compatibility.
type Suggestion struct {
	Profile ProfileCard `json:"profile"`
	Score   int         `json:"score"`
}
