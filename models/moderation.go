package models

// Block hides two users from each other.
type Block struct {
	BlockerID string `dynamodbav:"blockerId" json:"blockerId"`
	BlockedID string `dynamodbav:"blockedId" json:"blockedId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Report is a user complaint reviewed in the admin views.
type Report struct {
	ReportID   string `dynamodbav:"reportId" json:"reportId"`
	ReporterID string `dynamodbav:"reporterId" json:"reporterId"`
	TargetID   string `dynamodbav:"targetId" json:"targetId"`
	Reason     string `dynamodbav:"reason" json:"reason"`
	Details    string `dynamodbav:"details,omitempty" json:"details,omitempty"`
	Status     string `dynamodbav:"status" json:"status"`
	AdminNote  string `dynamodbav:"adminNote,omitempty" json:"adminNote,omitempty"`
	ResolvedBy string `dynamodbav:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt" json:"updatedAt"`
}
