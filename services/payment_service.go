package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

// PaymentService sells catalog products through a hosted checkout and settles
// them from the provider's webhook.
type PaymentService struct {
	Purchases     PurchaseStore
	Profiles      ProfileStore
	Conversations ConversationStore
	Poster        MessagePoster
	Checkout      CheckoutProvider
	Currency      string
	PollAttempts  int
	PollDelay     time.Duration
	Log           *zap.SugaredLogger
	Now           func() time.Time
}

// CreateCheckout opens a session for productID and records the pending purchase.
// Goodies need a recipient other than the buyer.
func (ps *PaymentService) CreateCheckout(ctx context.Context, userID, productID, recipientID string) (*models.CheckoutResponse, error) {
	product, ok := models.Catalog[productID]
	if !ok {
		return nil, utils.InvalidInput("Unknown product")
	}
	buyer, err := ps.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if buyer == nil {
		return nil, utils.NotFound("Create your profile first")
	}
	if product.Kind == models.ProductGoodie {
		if recipientID == "" || recipientID == userID {
			return nil, utils.InvalidInput("Pick who receives the goodie")
		}
		recipient, err := ps.Profiles.Get(ctx, recipientID)
		if err != nil {
			return nil, dbError("load profile", err)
		}
		if recipient == nil || recipient.Suspended {
			return nil, utils.NotFound("Profile not found")
		}
	} else {
		recipientID = ""
	}

	session, err := ps.Checkout.CreateSession(ctx, CheckoutRequest{
		Product:     product,
		UserID:      userID,
		RecipientID: recipientID,
		Currency:    ps.Currency,
	})
	if err != nil {
		return nil, utils.Internal("failed to start checkout", err)
	}

	ts := utils.Timestamp(now(ps.Now))
	purchase := &models.Purchase{
		SessionID:   session.ID,
		UserID:      userID,
		ProductID:   product.ID,
		Credits:     product.Credits,
		RecipientID: recipientID,
		AmountCents: product.AmountCents,
		Currency:    ps.Currency,
		Status:      models.StatusPending,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := ps.Purchases.Create(ctx, purchase); err != nil {
		return nil, dbError("record purchase", err)
	}
	ps.Log.Infow("checkout started", "sessionId", session.ID, "userId", userID, "productId", product.ID)
	return &models.CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

// HandleWebhook verifies and applies a provider notification. Deliveries are
// idempotent: a purchase is settled at most once whatever the number of retries.
func (ps *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := ps.Checkout.ParseEvent(payload, signature)
	if err != nil {
		ps.Log.Warnw("rejected webhook", "error", err)
		return utils.InvalidInput("Invalid webhook signature")
	}

	switch event.Type {
	case EventCheckoutCompleted:
		if event.PaymentStatus != "paid" {
			ps.Log.Infow("checkout completed without payment yet", "sessionId", event.SessionID, "paymentStatus", event.PaymentStatus)
			return nil
		}
		return ps.fulfill(ctx, event.SessionID)
	case EventCheckoutAsyncSucceeded:
		return ps.fulfill(ctx, event.SessionID)
	case EventCheckoutExpired, EventCheckoutAsyncFailed:
		err := ps.Purchases.Transition(ctx, event.SessionID, models.StatusPending, models.StatusFailed, utils.Timestamp(now(ps.Now)))
		if err != nil && !errors.Is(err, store.ErrConditionFailed) {
			return dbError("update purchase", err)
		}
		ps.Log.Infow("checkout failed", "sessionId", event.SessionID, "type", event.Type)
		return nil
	default:
		ps.Log.Debugw("ignored webhook event", "type", event.Type)
		return nil
	}
}

func (ps *PaymentService) fulfill(ctx context.Context, sessionID string) error {
	purchase, err := ps.Purchases.Get(ctx, sessionID)
	if err != nil {
		return dbError("load purchase", err)
	}
	if purchase == nil {
		ps.Log.Warnw("webhook for unknown checkout session", "sessionId", sessionID)
		return nil
	}
	if purchase.Status != models.StatusPending {
		return nil
	}

	at := now(ps.Now)
	product := models.Catalog[purchase.ProductID]
	var notification *models.Notification
	if purchase.RecipientID != "" {
		notification = newNotification(purchase.RecipientID, models.NotificationGoodie, purchase.UserID,
			map[string]string{"productId": product.ID, "name": product.Name, "emoji": product.Emoji}, at)
	}

	err = ps.Purchases.Complete(ctx, purchase, notification, utils.Timestamp(at))
	if errors.Is(err, store.ErrConditionFailed) {
		ps.Log.Infow("purchase already settled", "sessionId", sessionID)
		return nil
	}
	if err != nil {
		return dbError("settle purchase", err)
	}
	ps.Log.Infow("purchase paid", "sessionId", sessionID, "userId", purchase.UserID, "productId", purchase.ProductID)

	if purchase.RecipientID != "" {
		ps.deliverGoodie(ctx, purchase, product)
	}
	return nil
}

// deliverGoodie drops the goodie in the pair's direct conversation when they already talk.
func (ps *PaymentService) deliverGoodie(ctx context.Context, purchase *models.Purchase, product models.Product) {
	conversationID := DirectConversationID(purchase.UserID, purchase.RecipientID)
	conv, err := ps.Conversations.Get(ctx, conversationID)
	if err != nil {
		ps.Log.Warnw("failed to load conversation for goodie", "conversationId", conversationID, "error", err)
		return
	}
	if conv == nil || ps.Poster == nil {
		return
	}
	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       purchase.UserID,
		Kind:           models.MessageGoodie,
		Body:           product.Emoji + " " + product.Name,
	}
	if err := ps.Poster.Post(ctx, msg); err != nil {
		ps.Log.Warnw("failed to post goodie message", "conversationId", conversationID, "error", err)
	}
}

// Purchase returns the caller's purchase. With wait set it polls a pending purchase
// at most PollAttempts times, PollDelay apart, and stops when ctx is done.
func (ps *PaymentService) Purchase(ctx context.Context, userID, sessionID string, wait bool) (*models.Purchase, error) {
	purchase, err := ps.ownPurchase(ctx, userID, sessionID)
	if err != nil || !wait {
		return purchase, err
	}
	for attempt := 1; attempt < ps.PollAttempts && purchase.Status == models.StatusPending; attempt++ {
		timer := time.NewTimer(ps.PollDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		purchase, err = ps.ownPurchase(ctx, userID, sessionID)
		if err != nil {
			return nil, err
		}
	}
	return purchase, nil
}

func (ps *PaymentService) ownPurchase(ctx context.Context, userID, sessionID string) (*models.Purchase, error) {
	purchase, err := ps.Purchases.Get(ctx, sessionID)
	if err != nil {
		return nil, dbError("load purchase", err)
	}
	if purchase == nil || purchase.UserID != userID {
		return nil, utils.NotFound("Purchase not found")
	}
	return purchase, nil
}
