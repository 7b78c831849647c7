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

// GroupService is implemented by *services.GroupService.
type GroupService interface {
	Create(ctx context.Context, proposerID string, in services.GroupInput) (*models.GroupProposal, error)
	Respond(ctx context.Context, userID, proposalID string, accept bool) (*models.GroupProposal, error)
	List(ctx context.Context, userID string) ([]models.GroupProposal, error)
}

// GroupController handles group proposals
type GroupController struct {
	Service GroupService
	Log     *zap.SugaredLogger
}

func NewGroupController(service GroupService, log *zap.SugaredLogger) *GroupController {
	return &GroupController{Service: service, Log: log}
}

func (c *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var in services.GroupInput
	if err := decodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	proposal, err := c.Service.Create(r.Context(), callerID(r), in)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, proposal)
}

func (c *GroupController) GetGroups(w http.ResponseWriter, r *http.Request) {
	proposals, err := c.Service.List(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, proposals)
}

// RespondToGroup accepts or declines an invitation
func (c *GroupController) RespondToGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Accept *bool `json:"accept"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if payload.Accept == nil {
		utils.WriteError(w, c.Log, utils.InvalidInput("accept is required"))
		return
	}
	proposal, err := c.Service.Respond(r.Context(), callerID(r), mux.Vars(r)["id"], *payload.Accept)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, proposal)
}
