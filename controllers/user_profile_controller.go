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

// ProfileService is implemented by *services.UserProfileService.
type ProfileService interface {
	CreateProfile(ctx context.Context, userID string, in services.ProfileInput) (*models.Profile, error)
	GetOwnProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetProfile(ctx context.Context, viewerID, targetID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in services.ProfileUpdate) (*models.Profile, error)
	SetLocation(ctx context.Context, userID string, lat, lon float64) (*models.Profile, error)
	DeleteProfile(ctx context.Context, userID string) error
	BrowseProfiles(ctx context.Context, viewerID string, filter models.BrowseFilter) ([]models.Profile, error)
}

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	Service ProfileService
	Log     *zap.SugaredLogger
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(service ProfileService, log *zap.SugaredLogger) *UserProfileController {
	return &UserProfileController{Service: service, Log: log}
}

func (c *UserProfileController) CreateUserProfile(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	if err := decodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	profile, err := c.Service.CreateProfile(r.Context(), callerID(r), in)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, profile)
}

func (c *UserProfileController) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := c.Service.GetOwnProfile(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// UpdateUserProfile applies a partial update to the caller's profile
func (c *UserProfileController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	profile, err := c.Service.UpdateProfile(r.Context(), callerID(r), in)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

func (c *UserProfileController) SetLocation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		utils.WriteError(w, c.Log, utils.InvalidInput("latitude and longitude are required"))
		return
	}
	profile, err := c.Service.SetLocation(r.Context(), callerID(r), *payload.Latitude, *payload.Longitude)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// GetUserProfileByID returns another member's profile with the distance to the caller
func (c *UserProfileController) GetUserProfileByID(w http.ResponseWriter, r *http.Request) {
	profile, err := c.Service.GetProfile(r.Context(), callerID(r), mux.Vars(r)["userId"])
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// DeleteUserProfile handles deleting the caller's profile
func (c *UserProfileController) DeleteUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if err := c.Service.DeleteProfile(r.Context(), userID); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Profile deleted successfully", "userId": userID})
}

// BrowseProfiles lists members, filtered by gender, city, age and distance
func (c *UserProfileController) BrowseProfiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.BrowseFilter{
		Gender: q.Get("gender"),
		City:   q.Get("city"),
		Sort:   q.Get("sort"),
	}
	var err error
	if filter.MinAge, err = queryInt(r, "minAge"); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if filter.MaxAge, err = queryInt(r, "maxAge"); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if filter.MaxDistanceKm, err = queryFloat(r, "maxDistanceKm"); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}

	profiles, err := c.Service.BrowseProfiles(r.Context(), callerID(r), filter)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, profiles)
}
