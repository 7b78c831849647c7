package models

// MaxGroupInvitees bounds the size of a group proposal, proposer excluded.
const MaxGroupInvitees = 5

// GroupProposal invites several users into a group conversation.
type GroupProposal struct {
	ProposalID     string            `dynamodbav:"proposalId" json:"proposalId"`
	ProposerID     string            `dynamodbav:"proposerId" json:"proposerId"`
	Title          string            `dynamodbav:"title" json:"title"`
	Message        string            `dynamodbav:"message,omitempty" json:"message,omitempty"`
	MemberIDs      []string          `dynamodbav:"memberIds" json:"memberIds"`
	Members        map[string]string `dynamodbav:"members" json:"members"` // userId -> pending/accepted/declined
	Status         string            `dynamodbav:"status" json:"status"`
	ConversationID string            `dynamodbav:"conversationId,omitempty" json:"conversationId,omitempty"`
	Version        int               `dynamodbav:"version" json:"-"`
	CreatedAt      string            `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string            `dynamodbav:"updatedAt" json:"updatedAt"`
}

// AllAccepted reports whether every member has accepted.
func (g *GroupProposal) AllAccepted() bool {
	for _, status := range g.Members {
		if status != StatusAccepted {
			return false
		}
	}
	return true
}
