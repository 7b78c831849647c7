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

// ModerationService is implemented by *services.ModerationService.
type ModerationService interface {
	Block(ctx context.Context, blockerID, blockedID string) (*models.Block, error)
	Unblock(ctx context.Context, blockerID, blockedID string) error
	ListBlocks(ctx context.Context, blockerID string) ([]models.Block, error)
	Report(ctx context.Context, reporterID string, in services.ReportInput) (*models.Report, error)
}

// ActionController handles the member-to-member safety actions: blocks and reports
type ActionController struct {
	Service ModerationService
	Log     *zap.SugaredLogger
}

func NewActionController(service ModerationService, log *zap.SugaredLogger) *ActionController {
	return &ActionController{Service: service, Log: log}
}

func (c *ActionController) BlockUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	block, err := c.Service.Block(r.Context(), callerID(r), payload.UserID)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, block)
}

func (c *ActionController) UnblockUser(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Unblock(r.Context(), callerID(r), mux.Vars(r)["userId"]); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ActionController) GetBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := c.Service.ListBlocks(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, blocks)
}

func (c *ActionController) ReportUser(w http.ResponseWriter, r *http.Request) {
	var in services.ReportInput
	if err := decodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	report, err := c.Service.Report(r.Context(), callerID(r), in)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, report)
}
