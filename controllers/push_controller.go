package controllers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cupidwave/services"
	"cupidwave/utils"
)

// PushService is implemented by *services.PushService.
type PushService interface {
	Broadcast(ctx context.Context, senderID string, in services.PushInput) (*services.PushResult, error)
}

type PushController struct {
	Service PushService
	Log     *zap.SugaredLogger
}

func NewPushController(service PushService, log *zap.SugaredLogger) *PushController {
	return &PushController{Service: service, Log: log}
}

// SendPush spends one credit to reach the members around the caller
func (c *PushController) SendPush(w http.ResponseWriter, r *http.Request) {
	var in services.PushInput
	if err := decodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	result, err := c.Service.Broadcast(r.Context(), callerID(r), in)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}
