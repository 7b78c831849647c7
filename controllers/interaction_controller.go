package controllers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

// TornadoService is implemented by *services.TornadoService.
type TornadoService interface {
	Swipe(ctx context.Context, swiperID, targetID, direction string) (*models.SwipeResult, error)
	Remaining(ctx context.Context, userID string) (int, error)
	Deck(ctx context.Context, userID string, limit int) ([]models.DeckCard, error)
	LikesReceived(ctx context.Context, userID string) ([]models.ProfileCard, error)
}

// InteractionController serves Tornado mode: the deck, swipes and received likes
type InteractionController struct {
	Service TornadoService
	Log     *zap.SugaredLogger
}

func NewInteractionController(service TornadoService, log *zap.SugaredLogger) *InteractionController {
	return &InteractionController{Service: service, Log: log}
}

func (c *InteractionController) GetDeck(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	deck, err := c.Service.Deck(r.Context(), callerID(r), limit)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, deck)
}

// Swipe records a like or a pass; a reciprocal like opens a conversation
func (c *InteractionController) Swipe(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TargetID  string `json:"targetId"`
		Direction string `json:"direction"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if payload.TargetID == "" {
		utils.WriteError(w, c.Log, utils.InvalidInput("targetId is required"))
		return
	}
	result, err := c.Service.Swipe(r.Context(), callerID(r), payload.TargetID, payload.Direction)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

func (c *InteractionController) GetRemaining(w http.ResponseWriter, r *http.Request) {
	remaining, err := c.Service.Remaining(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]int{"remaining": remaining})
}

func (c *InteractionController) GetLikesReceived(w http.ResponseWriter, r *http.Request) {
	likes, err := c.Service.LikesReceived(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, likes)
}
