package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WriteJSONResponse encodes payload as JSON with the given status.
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError sends {"message": ...}; the client shows the message verbatim.
func WriteError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Errorw("request failed", "error", err)
	}
	WriteJSONResponse(w, status, map[string]string{"message": PublicMessage(err)})
}
