package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cupidwave/middleware"
	"cupidwave/utils"
)

const maxBodyBytes = 1 << 20

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Welcome to the CupidWave API"})
}

// NotFoundHandler keeps unknown routes on the {"message"} error shape
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, nil, utils.NotFound("Route not found"))
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
}

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return utils.InvalidInput("Invalid request payload")
	}
	return nil
}

// queryInt parses an optional integer query parameter, 0 when absent.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, utils.InvalidInput(key + " must be a positive number")
	}
	return n, nil
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, utils.InvalidInput(key + " must be a positive number")
	}
	return f, nil
}

func callerID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
