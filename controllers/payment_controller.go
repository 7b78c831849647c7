package controllers

import (
	"context"
	"io"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

const maxWebhookBytes = 65536

// PaymentService is implemented by *services.PaymentService.
type PaymentService interface {
	CreateCheckout(ctx context.Context, userID, productID, recipientID string) (*models.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Purchase(ctx context.Context, userID, sessionID string, wait bool) (*models.Purchase, error)
}

// PaymentController exposes the checkout, the provider webhook and purchase status
type PaymentController struct {
	Service PaymentService
	Log     *zap.SugaredLogger
}

func NewPaymentController(service PaymentService, log *zap.SugaredLogger) *PaymentController {
	return &PaymentController{Service: service, Log: log}
}

func (c *PaymentController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products := make([]models.Product, 0, len(models.Catalog))
	for _, p := range models.Catalog {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	utils.WriteJSONResponse(w, http.StatusOK, products)
}

func (c *PaymentController) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID   string `json:"productId"`
		RecipientID string `json:"recipientId"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	session, err := c.Service.CreateCheckout(r.Context(), callerID(r), payload.ProductID, payload.RecipientID)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, session)
}

// HandleWebhook needs the raw body for signature verification
func (c *PaymentController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		utils.WriteError(w, c.Log, utils.InvalidInput("Invalid request payload"))
		return
	}
	if err := c.Service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"received": true})
}

// GetSession returns a purchase; ?wait=true polls until it settles or the attempts run out
func (c *PaymentController) GetSession(w http.ResponseWriter, r *http.Request) {
	wait := r.URL.Query().Get("wait") == "true"
	purchase, err := c.Service.Purchase(r.Context(), callerID(r), mux.Vars(r)["id"], wait)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, purchase)
}
