package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"cupidwave/models"
)

// Checkout webhook event types
const (
	EventCheckoutCompleted      = "checkout.session.completed"
	EventCheckoutAsyncSucceeded = "checkout.session.async_payment_succeeded"
	EventCheckoutAsyncFailed    = "checkout.session.async_payment_failed"
	EventCheckoutExpired        = "checkout.session.expired"
)

// CheckoutRequest describes the session to open for one product.
type CheckoutRequest struct {
	Product     models.Product
	UserID      string
	RecipientID string
	Currency    string
}

// CheckoutSession is the provider side of a created session.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutEvent is a verified webhook notification about a session.
type CheckoutEvent struct {
	Type          string
	SessionID     string
	PaymentStatus string
}

// CheckoutProvider opens hosted checkout sessions and verifies their webhooks.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	ParseEvent(payload []byte, signature string) (*CheckoutEvent, error)
}

// StripeCheckout implements CheckoutProvider with Stripe Checkout.
type StripeCheckout struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

func (c *StripeCheckout) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.SuccessURL),
		CancelURL:         stripe.String(c.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(req.Currency)),
				UnitAmount: stripe.Int64(req.Product.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.Product.Name),
				},
			},
		}},
	}
	params.Context = ctx
	params.AddMetadata("productId", req.Product.ID)
	params.AddMetadata("userId", req.UserID)
	if req.RecipientID != "" {
		params.AddMetadata("recipientId", req.RecipientID)
	}

	client := &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: c.SecretKey}
	s, err := client.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (c *StripeCheckout) ParseEvent(payload []byte, signature string) (*CheckoutEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook: %w", err)
	}
	out := &CheckoutEvent{Type: string(event.Type)}
	if !strings.HasPrefix(out.Type, "checkout.session.") || event.Data == nil {
		return out, nil
	}
	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	out.SessionID = s.ID
	out.PaymentStatus = string(s.PaymentStatus)
	return out, nil
}
