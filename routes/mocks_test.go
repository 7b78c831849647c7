package routes

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cupidwave/models"
	"cupidwave/services"
)

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) CreateProfile(ctx context.Context, userID string, in services.ProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) GetOwnProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) GetProfile(ctx context.Context, viewerID, targetID string) (*models.Profile, error) {
	args := m.Called(ctx, viewerID, targetID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) UpdateProfile(ctx context.Context, userID string, in services.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) SetLocation(ctx context.Context, userID string, lat, lon float64) (*models.Profile, error) {
	args := m.Called(ctx, userID, lat, lon)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) DeleteProfile(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockProfiles) BrowseProfiles(ctx context.Context, viewerID string, filter models.BrowseFilter) ([]models.Profile, error) {
	args := m.Called(ctx, viewerID, filter)
	list, _ := args.Get(0).([]models.Profile)
	return list, args.Error(1)
}

type mockTornado struct{ mock.Mock }

func (m *mockTornado) Swipe(ctx context.Context, swiperID, targetID, direction string) (*models.SwipeResult, error) {
	args := m.Called(ctx, swiperID, targetID, direction)
	r, _ := args.Get(0).(*models.SwipeResult)
	return r, args.Error(1)
}

func (m *mockTornado) Remaining(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockTornado) Deck(ctx context.Context, userID string, limit int) ([]models.DeckCard, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]models.DeckCard)
	return list, args.Error(1)
}

func (m *mockTornado) LikesReceived(ctx context.Context, userID string) ([]models.ProfileCard, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.ProfileCard)
	return list, args.Error(1)
}

type mockChat struct{ mock.Mock }

func (m *mockChat) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.ConversationSummary)
	return list, args.Error(1)
}

func (m *mockChat) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, userID, conversationID, limit)
	list, _ := args.Get(0).([]models.Message)
	return list, args.Error(1)
}

func (m *mockChat) Send(ctx context.Context, userID, conversationID string, in models.SendMessageInput) (*models.Message, error) {
	args := m.Called(ctx, userID, conversationID, in)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *mockChat) MarkRead(ctx context.Context, userID, conversationID string) error {
	return m.Called(ctx, userID, conversationID).Error(0)
}

func (m *mockChat) React(ctx context.Context, userID, conversationID, messageID, emoji string) (*models.Reaction, error) {
	args := m.Called(ctx, userID, conversationID, messageID, emoji)
	r, _ := args.Get(0).(*models.Reaction)
	return r, args.Error(1)
}

func (m *mockChat) Unread(ctx context.Context, userID string) (*models.UnreadSummary, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*models.UnreadSummary)
	return s, args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) CreateCheckout(ctx context.Context, userID, productID, recipientID string) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, userID, productID, recipientID)
	r, _ := args.Get(0).(*models.CheckoutResponse)
	return r, args.Error(1)
}

func (m *mockPayments) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

func (m *mockPayments) Purchase(ctx context.Context, userID, sessionID string, wait bool) (*models.Purchase, error) {
	args := m.Called(ctx, userID, sessionID, wait)
	p, _ := args.Get(0).(*models.Purchase)
	return p, args.Error(1)
}

type mockAdmin struct{ mock.Mock }

func (m *mockAdmin) ListReports(ctx context.Context, status string) ([]models.Report, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]models.Report)
	return list, args.Error(1)
}

func (m *mockAdmin) ResolveReport(ctx context.Context, adminID, reportID, status, note string) (*models.Report, error) {
	args := m.Called(ctx, adminID, reportID, status, note)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockAdmin) SetSuspended(ctx context.Context, adminID, userID string, suspended bool) (*models.Profile, error) {
	args := m.Called(ctx, adminID, userID, suspended)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockAdmin) Stats(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

type mockNotifications struct{ mock.Mock }

func (m *mockNotifications) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *mockNotifications) MarkAllRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotifications) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
