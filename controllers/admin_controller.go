package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

// AdminService is implemented by *services.AdminService.
type AdminService interface {
	ListReports(ctx context.Context, status string) ([]models.Report, error)
	ResolveReport(ctx context.Context, adminID, reportID, status, note string) (*models.Report, error)
	SetSuspended(ctx context.Context, adminID, userID string, suspended bool) (*models.Profile, error)
	Stats(ctx context.Context) (map[string]int64, error)
}

// AdminController backs the moderation views. Routes are mounted behind RequireAdmin.
type AdminController struct {
	Service AdminService
	Log     *zap.SugaredLogger
}

func NewAdminController(service AdminService, log *zap.SugaredLogger) *AdminController {
	return &AdminController{Service: service, Log: log}
}

func (c *AdminController) GetReports(w http.ResponseWriter, r *http.Request) {
	reports, err := c.Service.ListReports(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, reports)
}

func (c *AdminController) ResolveReport(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	report, err := c.Service.ResolveReport(r.Context(), callerID(r), mux.Vars(r)["id"], payload.Status, payload.Note)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, report)
}

// SuspendProfile hides ({"suspended": true}) or restores a profile
func (c *AdminController) SuspendProfile(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Suspended *bool `json:"suspended"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if payload.Suspended == nil {
		utils.WriteError(w, c.Log, utils.InvalidInput("suspended is required"))
		return
	}
	profile, err := c.Service.SetSuspended(r.Context(), callerID(r), mux.Vars(r)["userId"], *payload.Suspended)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

func (c *AdminController) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := c.Service.Stats(r.Context())
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, counts)
}
