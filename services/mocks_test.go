package services

import (
	"context"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"

	"cupidwave/models"
)

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileStore) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) (*models.Profile, error) {
	args := m.Called(ctx, userID, fields)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfileStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockProfileStore) ListActive(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Profile)
	return list, args.Error(1)
}

func (m *mockProfileStore) AddPushCredits(ctx context.Context, userID string, n int) (int, error) {
	args := m.Called(ctx, userID, n)
	return args.Int(0), args.Error(1)
}

func (m *mockProfileStore) ConsumePushCredit(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockAnswerStore struct{ mock.Mock }

func (m *mockAnswerStore) Get(ctx context.Context, userID string) (*models.MatchmakingAnswers, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*models.MatchmakingAnswers)
	return a, args.Error(1)
}

func (m *mockAnswerStore) Put(ctx context.Context, answers *models.MatchmakingAnswers) error {
	return m.Called(ctx, answers).Error(0)
}

func (m *mockAnswerStore) All(ctx context.Context) (map[string]map[string]string, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).(map[string]map[string]string)
	return all, args.Error(1)
}

type mockSwipeStore struct{ mock.Mock }

func (m *mockSwipeStore) Put(ctx context.Context, swipe *models.Swipe) error {
	return m.Called(ctx, swipe).Error(0)
}

func (m *mockSwipeStore) Get(ctx context.Context, swiperID, targetID string) (*models.Swipe, error) {
	args := m.Called(ctx, swiperID, targetID)
	s, _ := args.Get(0).(*models.Swipe)
	return s, args.Error(1)
}

func (m *mockSwipeStore) ListBySwiper(ctx context.Context, swiperID string) ([]models.Swipe, error) {
	args := m.Called(ctx, swiperID)
	list, _ := args.Get(0).([]models.Swipe)
	return list, args.Error(1)
}

func (m *mockSwipeStore) ListLikesReceived(ctx context.Context, userID string) ([]models.Swipe, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Swipe)
	return list, args.Error(1)
}

func (m *mockSwipeStore) IncrementQuota(ctx context.Context, userID, day string, limit int) (int, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Int(0), args.Error(1)
}

func (m *mockSwipeStore) QuotaUsed(ctx context.Context, userID, day string) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}

type mockConversationStore struct{ mock.Mock }

func (m *mockConversationStore) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	args := m.Called(ctx, conversationID)
	c, _ := args.Get(0).(*models.Conversation)
	return c, args.Error(1)
}

func (m *mockConversationStore) Create(ctx context.Context, conv *models.Conversation, participants []models.Participant, opening *models.Message) error {
	return m.Called(ctx, conv, participants, opening).Error(0)
}

func (m *mockConversationStore) ListParticipations(ctx context.Context, userID string) ([]models.Participant, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Participant)
	return list, args.Error(1)
}

func (m *mockConversationStore) GetParticipant(ctx context.Context, userID, conversationID string) (*models.Participant, error) {
	args := m.Called(ctx, userID, conversationID)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *mockConversationStore) MarkRead(ctx context.Context, userID, conversationID, at string) error {
	return m.Called(ctx, userID, conversationID, at).Error(0)
}

func (m *mockConversationStore) Touch(ctx context.Context, conversationID, at, preview string) error {
	return m.Called(ctx, conversationID, at, preview).Error(0)
}

type mockMessageStore struct{ mock.Mock }

func (m *mockMessageStore) Put(ctx context.Context, msg *models.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageStore) Get(ctx context.Context, conversationID, messageID string) (*models.Message, error) {
	args := m.Called(ctx, conversationID, messageID)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *mockMessageStore) Latest(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	list, _ := args.Get(0).([]models.Message)
	return list, args.Error(1)
}

func (m *mockMessageStore) CountUnread(ctx context.Context, conversationID, userID, since string) (int, error) {
	args := m.Called(ctx, conversationID, userID, since)
	return args.Int(0), args.Error(1)
}

type mockReactionStore struct{ mock.Mock }

func (m *mockReactionStore) Put(ctx context.Context, r *models.Reaction) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReactionStore) Delete(ctx context.Context, conversationID, messageID, userID string) error {
	return m.Called(ctx, conversationID, messageID, userID).Error(0)
}

func (m *mockReactionStore) ListByConversation(ctx context.Context, conversationID string) ([]models.Reaction, error) {
	args := m.Called(ctx, conversationID)
	list, _ := args.Get(0).([]models.Reaction)
	return list, args.Error(1)
}

type mockBlockStore struct{ mock.Mock }

func (m *mockBlockStore) Put(ctx context.Context, b *models.Block) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBlockStore) Delete(ctx context.Context, blockerID, blockedID string) error {
	return m.Called(ctx, blockerID, blockedID).Error(0)
}

func (m *mockBlockStore) Exists(ctx context.Context, blockerID, blockedID string) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlockStore) ListByBlocker(ctx context.Context, blockerID string) ([]models.Block, error) {
	args := m.Called(ctx, blockerID)
	list, _ := args.Get(0).([]models.Block)
	return list, args.Error(1)
}

func (m *mockBlockStore) ListByBlocked(ctx context.Context, blockedID string) ([]models.Block, error) {
	args := m.Called(ctx, blockedID)
	list, _ := args.Get(0).([]models.Block)
	return list, args.Error(1)
}

// noBlocks makes every block lookup come back empty.
func noBlocks() *mockBlockStore {
	m := &mockBlockStore{}
	m.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	m.On("ListByBlocker", mock.Anything, mock.Anything).Return([]models.Block{}, nil)
	m.On("ListByBlocked", mock.Anything, mock.Anything).Return([]models.Block{}, nil)
	return m
}

type mockReportStore struct{ mock.Mock }

func (m *mockReportStore) Put(ctx context.Context, r *models.Report) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReportStore) Get(ctx context.Context, reportID string) (*models.Report, error) {
	args := m.Called(ctx, reportID)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportStore) ListByStatus(ctx context.Context, status string) ([]models.Report, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]models.Report)
	return list, args.Error(1)
}

func (m *mockReportStore) Resolve(ctx context.Context, reportID, status, note, adminID, at string) (*models.Report, error) {
	args := m.Called(ctx, reportID, status, note, adminID, at)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

type mockGroupProposalStore struct{ mock.Mock }

func (m *mockGroupProposalStore) Create(ctx context.Context, p *models.GroupProposal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockGroupProposalStore) Get(ctx context.Context, proposalID string) (*models.GroupProposal, error) {
	args := m.Called(ctx, proposalID)
	p, _ := args.Get(0).(*models.GroupProposal)
	return p, args.Error(1)
}

func (m *mockGroupProposalStore) Save(ctx context.Context, p *models.GroupProposal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockGroupProposalStore) ListForUser(ctx context.Context, userID string) ([]models.GroupProposal, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.GroupProposal)
	return list, args.Error(1)
}

type mockPurchaseStore struct{ mock.Mock }

func (m *mockPurchaseStore) Create(ctx context.Context, p *models.Purchase) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPurchaseStore) Get(ctx context.Context, sessionID string) (*models.Purchase, error) {
	args := m.Called(ctx, sessionID)
	p, _ := args.Get(0).(*models.Purchase)
	return p, args.Error(1)
}

func (m *mockPurchaseStore) Transition(ctx context.Context, sessionID, from, to, at string) error {
	return m.Called(ctx, sessionID, from, to, at).Error(0)
}

func (m *mockPurchaseStore) Complete(ctx context.Context, p *models.Purchase, n *models.Notification, at string) error {
	return m.Called(ctx, p, n, at).Error(0)
}

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Put(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationStore) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockStatsStore struct{ mock.Mock }

func (m *mockStatsStore) Counts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(room, event string, payload interface{}) {
	m.Called(room, event, payload)
}

type mockPoster struct{ mock.Mock }

func (m *mockPoster) Post(ctx context.Context, msg *models.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockCheckout struct{ mock.Mock }

func (m *mockCheckout) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*CheckoutSession)
	return s, args.Error(1)
}

func (m *mockCheckout) ParseEvent(payload []byte, signature string) (*CheckoutEvent, error) {
	args := m.Called(payload, signature)
	e, _ := args.Get(0).(*CheckoutEvent)
	return e, args.Error(1)
}

type mockGeocoder struct{ mock.Mock }

func (m *mockGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

type mockPresigner struct{ mock.Mock }

func (m *mockPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	r, _ := args.Get(0).(*v4.PresignedHTTPRequest)
	return r, args.Error(1)
}

func (m *mockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	r, _ := args.Get(0).(*v4.PresignedHTTPRequest)
	return r, args.Error(1)
}
