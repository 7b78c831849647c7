package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/services"
	"cupidwave/utils"
)

// MatchmakingService is implemented by *services.MatchmakingService.
type MatchmakingService interface {
	SaveAnswers(ctx context.Context, userID string, answers map[string]string) (*models.MatchmakingAnswers, error)
	GetAnswers(ctx context.Context, userID string) (*models.MatchmakingAnswers, error)
	Suggestions(ctx context.Context, userID string, limit int) ([]models.Suggestion, error)
	Compatibility(ctx context.Context, userID, otherID string) (*services.CompatibilityResult, error)
}

// MatchController serves the matchmaking questionnaire and suggestions
type MatchController struct {
	Service MatchmakingService
	Log     *zap.SugaredLogger
}

func NewMatchController(service MatchmakingService, log *zap.SugaredLogger) *MatchController {
	return &MatchController{Service: service, Log: log}
}

func (c *MatchController) GetAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := c.Service.GetAnswers(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, answers)
}

func (c *MatchController) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Answers map[string]string `json:"answers"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	answers, err := c.Service.SaveAnswers(r.Context(), callerID(r), payload.Answers)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, answers)
}

// GetSuggestions returns members ranked by compatibility
func (c *MatchController) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	suggestions, err := c.Service.Suggestions(r.Context(), callerID(r), limit)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, suggestions)
}

func (c *MatchController) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.Compatibility(r.Context(), callerID(r), mux.Vars(r)["userId"])
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}
