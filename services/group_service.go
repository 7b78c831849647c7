package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

// groupNamespace seeds the conversation id of an accepted proposal.
var groupNamespace = uuid.MustParse("0b5d3c1e-7a2f-4e69-b8d4-2c9e1f7a6d30")

// GroupInput is a new group proposal.
type GroupInput struct {
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	InviteeIDs []string `json:"inviteeIds"`
}

// GroupService runs group proposals: invite up to five members, open a group
// conversation once everybody accepted.
type GroupService struct {
	Proposals     GroupProposalStore
	Profiles      ProfileStore
	Blocks        BlockStore
	Conversations ConversationStore
	Notifications NotificationStore
	Log           *zap.SugaredLogger
	Now           func() time.Time
}

func (gs *GroupService) Create(ctx context.Context, proposerID string, in GroupInput) (*models.GroupProposal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || runeLen(in.Title) > 80 {
		return nil, utils.InvalidInput("title is required and must be under 80 characters")
	}
	in.Message = strings.TrimSpace(in.Message)
	if runeLen(in.Message) > maxMessageLength {
		return nil, utils.InvalidInput("message is too long")
	}

	seen := map[string]bool{proposerID: true}
	invitees := make([]string, 0, len(in.InviteeIDs))
	for _, id := range in.InviteeIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		invitees = append(invitees, id)
	}
	if len(invitees) == 0 || len(invitees) > models.MaxGroupInvitees {
		return nil, utils.InvalidInput("Invite between 1 and 5 other members")
	}

	hidden, err := hiddenUsers(ctx, gs.Blocks, proposerID)
	if err != nil {
		return nil, err
	}
	for _, id := range invitees {
		if hidden[id] {
			return nil, utils.Forbidden("You cannot invite a blocked member")
		}
		p, err := gs.Profiles.Get(ctx, id)
		if err != nil {
			return nil, dbError("load profile", err)
		}
		if p == nil || p.Suspended {
			return nil, utils.NotFound("Profile not found")
		}
	}

	at := now(gs.Now)
	ts := utils.Timestamp(at)
	members := map[string]string{proposerID: models.StatusAccepted}
	for _, id := range invitees {
		members[id] = models.StatusPending
	}
	proposal := &models.GroupProposal{
		ProposalID: uuid.NewString(),
		ProposerID: proposerID,
		Title:      in.Title,
		Message:    in.Message,
		MemberIDs:  append([]string{proposerID}, invitees...),
		Members:    members,
		Status:     models.StatusPending,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := gs.Proposals.Create(ctx, proposal); err != nil {
		return nil, dbError("create group proposal", err)
	}

	for _, id := range invitees {
		gs.notify(ctx, id, proposerID, proposal, at)
	}
	gs.Log.Infow("group proposal created", "proposalId", proposal.ProposalID, "members", len(proposal.MemberIDs))
	return proposal, nil
}

// Respond records the caller's answer. Any decline closes the proposal; the last
// acceptance opens the group conversation.
func (gs *GroupService) Respond(ctx context.Context, userID, proposalID string, accept bool) (*models.GroupProposal, error) {
	proposal, err := gs.Proposals.Get(ctx, proposalID)
	if err != nil {
		return nil, dbError("load group proposal", err)
	}
	if proposal == nil {
		return nil, utils.NotFound("Group proposal not found")
	}
	current, ok := proposal.Members[userID]
	if !ok {
		return nil, utils.NotFound("Group proposal not found")
	}
	if proposal.Status == models.StatusAccepted && accept && current == models.StatusAccepted {
		// The acceptance was saved but the conversation may not have been created.
		if err := gs.openConversation(ctx, proposal, proposal.UpdatedAt); err != nil {
			return nil, err
		}
		return proposal, nil
	}
	if proposal.Status != models.StatusPending {
		return nil, utils.Conflict("This group proposal is already closed")
	}
	if current != models.StatusPending {
		return nil, utils.Conflict("You already answered this group proposal")
	}

	at := now(gs.Now)
	ts := utils.Timestamp(at)
	proposal.UpdatedAt = ts
	if !accept {
		proposal.Members[userID] = models.StatusDeclined
		proposal.Status = models.StatusDeclined
	} else {
		proposal.Members[userID] = models.StatusAccepted
		if proposal.AllAccepted() {
			proposal.Status = models.StatusAccepted
			proposal.ConversationID = uuid.NewSHA1(groupNamespace, []byte(proposal.ProposalID)).String()
		}
	}

	if err := gs.Proposals.Save(ctx, proposal); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, utils.Conflict("The group proposal changed, please retry")
		}
		return nil, dbError("save group proposal", err)
	}
	if proposal.Status == models.StatusAccepted {
		if err := gs.openConversation(ctx, proposal, ts); err != nil {
			return nil, err
		}
	}

	if proposal.Status != models.StatusPending {
		for _, id := range proposal.MemberIDs {
			if id != userID {
				gs.notify(ctx, id, userID, proposal, at)
			}
		}
	}
	return proposal, nil
}

// openConversation creates the group conversation. Its id derives from the
// proposal, so accepting again after a failed create converges on one conversation.
func (gs *GroupService) openConversation(ctx context.Context, p *models.GroupProposal, ts string) error {
	participants := make([]models.Participant, 0, len(p.MemberIDs))
	for _, id := range p.MemberIDs {
		participants = append(participants, models.Participant{UserID: id, ConversationID: p.ConversationID, JoinedAt: ts})
	}
	opening := &models.Message{
		ConversationID: p.ConversationID,
		MessageID:      newMessageID(),
		Kind:           models.MessageSystem,
		Body:           "Everyone is in! Welcome to " + p.Title,
		CreatedAt:      ts,
	}
	conv := &models.Conversation{
		ConversationID:     p.ConversationID,
		Kind:               models.ConversationGroup,
		Participants:       p.MemberIDs,
		Title:              p.Title,
		CreatedAt:          ts,
		LastMessageAt:      ts,
		LastMessagePreview: opening.Preview(),
	}
	err := gs.Conversations.Create(ctx, conv, participants, opening)
	if err != nil && !errors.Is(err, store.ErrConditionFailed) {
		return dbError("create group conversation", err)
	}
	return nil
}

// List returns the proposals involving the caller, newest first.
func (gs *GroupService) List(ctx context.Context, userID string) ([]models.GroupProposal, error) {
	proposals, err := gs.Proposals.ListForUser(ctx, userID)
	if err != nil {
		return nil, dbError("load group proposals", err)
	}
	sort.Slice(proposals, func(i, j int) bool { return proposals[i].CreatedAt > proposals[j].CreatedAt })
	return proposals, nil
}

func (gs *GroupService) notify(ctx context.Context, userID, actorID string, p *models.GroupProposal, at time.Time) {
	payload := map[string]string{"proposalId": p.ProposalID, "title": p.Title, "status": p.Status}
	if p.ConversationID != "" {
		payload["conversationId"] = p.ConversationID
	}
	n := newNotification(userID, models.NotificationGroupProposal, actorID, payload, at)
	if err := gs.Notifications.Put(ctx, n); err != nil {
		gs.Log.Warnw("failed to store group notification", "userId", userID, "proposalId", p.ProposalID, "error", err)
	}
}
