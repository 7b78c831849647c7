package services

import (
	"context"

	"cupidwave/models"
	"cupidwave/store"
)

// The services depend on these narrow views of the DynamoDB stores.

type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) (*models.Profile, error)
	Delete(ctx context.Context, userID string) error
	ListActive(ctx context.Context) ([]models.Profile, error)
	AddPushCredits(ctx context.Context, userID string, n int) (int, error)
	ConsumePushCredit(ctx context.Context, userID string) (int, error)
}

type AnswerStore interface {
	Get(ctx context.Context, userID string) (*models.MatchmakingAnswers, error)
	Put(ctx context.Context, answers *models.MatchmakingAnswers) error
	All(ctx context.Context) (map[string]map[string]string, error)
}

type SwipeStore interface {
	Put(ctx context.Context, swipe *models.Swipe) error
	Get(ctx context.Context, swiperID, targetID string) (*models.Swipe, error)
	ListBySwiper(ctx context.Context, swiperID string) ([]models.Swipe, error)
	ListLikesReceived(ctx context.Context, userID string) ([]models.Swipe, error)
	IncrementQuota(ctx context.Context, userID, day string, limit int) (int, error)
	QuotaUsed(ctx context.Context, userID, day string) (int, error)
}

type ConversationStore interface {
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	Create(ctx context.Context, conv *models.Conversation, participants []models.Participant, opening *models.Message) error
	ListParticipations(ctx context.Context, userID string) ([]models.Participant, error)
	GetParticipant(ctx context.Context, userID, conversationID string) (*models.Participant, error)
	MarkRead(ctx context.Context, userID, conversationID, at string) error
	Touch(ctx context.Context, conversationID, at, preview string) error
}

type MessageStore interface {
	Put(ctx context.Context, msg *models.Message) error
	Get(ctx context.Context, conversationID, messageID string) (*models.Message, error)
	Latest(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	CountUnread(ctx context.Context, conversationID, userID, since string) (int, error)
}

type ReactionStore interface {
	Put(ctx context.Context, r *models.Reaction) error
	Delete(ctx context.Context, conversationID, messageID, userID string) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Reaction, error)
}

type BlockStore interface {
	Put(ctx context.Context, b *models.Block) error
	Delete(ctx context.Context, blockerID, blockedID string) error
	Exists(ctx context.Context, blockerID, blockedID string) (bool, error)
	ListByBlocker(ctx context.Context, blockerID string) ([]models.Block, error)
	ListByBlocked(ctx context.Context, blockedID string) ([]models.Block, error)
}

type ReportStore interface {
	Put(ctx context.Context, r *models.Report) error
	Get(ctx context.Context, reportID string) (*models.Report, error)
	ListByStatus(ctx context.Context, status string) ([]models.Report, error)
	Resolve(ctx context.Context, reportID, status, note, adminID, at string) (*models.Report, error)
}

type GroupProposalStore interface {
	Create(ctx context.Context, p *models.GroupProposal) error
	Get(ctx context.Context, proposalID string) (*models.GroupProposal, error)
	Save(ctx context.Context, p *models.GroupProposal) error
	ListForUser(ctx context.Context, userID string) ([]models.GroupProposal, error)
}

type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) error
	Get(ctx context.Context, sessionID string) (*models.Purchase, error)
	Transition(ctx context.Context, sessionID, from, to, at string) error
	Complete(ctx context.Context, p *models.Purchase, n *models.Notification, at string) error
}

type NotificationStore interface {
	Put(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type StatsStore interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

var (
	_ ProfileStore       = (*store.ProfileStore)(nil)
	_ AnswerStore        = (*store.AnswerStore)(nil)
	_ SwipeStore         = (*store.SwipeStore)(nil)
	_ ConversationStore  = (*store.ConversationStore)(nil)
	_ MessageStore       = (*store.MessageStore)(nil)
	_ ReactionStore      = (*store.ReactionStore)(nil)
	_ BlockStore         = (*store.BlockStore)(nil)
	_ ReportStore        = (*store.ReportStore)(nil)
	_ GroupProposalStore = (*store.GroupProposalStore)(nil)
	_ PurchaseStore      = (*store.PurchaseStore)(nil)
	_ NotificationStore  = (*store.NotificationStore)(nil)
	_ StatsStore         = (*store.StatsStore)(nil)
)
