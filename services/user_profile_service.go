package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

const (
	minAge        = 18
	maxPhotos     = 6
	maxBioLength  = 500
	maxNameLength = 50
)

// ProfileInput is the onboarding form.
type ProfileInput struct {
	DisplayName string   `json:"displayName"`
	Gender      string   `json:"gender"`
	BirthDate   string   `json:"birthDate"`
	Bio         string   `json:"bio"`
	City        string   `json:"city"`
	LookingFor  string   `json:"lookingFor"`
	Photos      []string `json:"photos"`
}

// ProfileUpdate carries only the fields the client wants to change.
type ProfileUpdate struct {
	DisplayName *string   `json:"displayName"`
	Gender      *string   `json:"gender"`
	BirthDate   *string   `json:"birthDate"`
	Bio         *string   `json:"bio"`
	City        *string   `json:"city"`
	LookingFor  *string   `json:"lookingFor"`
	Photos      *[]string `json:"photos"`
}

type UserProfileService struct {
	Profiles ProfileStore
	Blocks   BlockStore
	Geocoder Geocoder
	Log      *zap.SugaredLogger
	Now      func() time.Time
}

// CreateProfile registers the caller's profile. A second call fails with CONFLICT.
func (ups *UserProfileService) CreateProfile(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	at := now(ups.Now)
	in.DisplayName = trimmed(in.DisplayName)
	if err := validateName(in.DisplayName); err != nil {
		return nil, err
	}
	if err := validateGender(in.Gender); err != nil {
		return nil, err
	}
	if err := validateBirthDate(in.BirthDate, at); err != nil {
		return nil, err
	}
	if err := validateIntent(in.LookingFor); err != nil {
		return nil, err
	}
	if err := validateBio(in.Bio); err != nil {
		return nil, err
	}
	if err := validatePhotos(userID, in.Photos); err != nil {
		return nil, err
	}

	ts := utils.Timestamp(at)
	profile := &models.Profile{
		UserID:      userID,
		DisplayName: in.DisplayName,
		Gender:      in.Gender,
		BirthDate:   in.BirthDate,
		Bio:         trimmed(in.Bio),
		City:        trimmed(in.City),
		LookingFor:  in.LookingFor,
		Photos:      in.Photos,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := ups.Profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, utils.Conflict("You already have a profile")
		}
		return nil, dbError("create profile", err)
	}
	ups.Log.Infow("profile created", "userId", userID)
	return profile, nil
}

// GetOwnProfile returns the caller's profile, suspended or not.
func (ups *UserProfileService) GetOwnProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := ups.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if profile == nil {
		return nil, utils.NotFound("Profile not found")
	}
	return profile, nil
}

// GetProfile returns another member's profile with the distance to the viewer.
// Suspended profiles and blocked pairs look like missing profiles.
func (ups *UserProfileService) GetProfile(ctx context.Context, viewerID, targetID string) (*models.Profile, error) {
	if viewerID == targetID {
		return ups.GetOwnProfile(ctx, viewerID)
	}
	target, err := ups.Profiles.Get(ctx, targetID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if target == nil || target.Suspended {
		return nil, utils.NotFound("Profile not found")
	}
	blocked, err := blockedEitherWay(ctx, ups.Blocks, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, utils.NotFound("Profile not found")
	}
	viewer, err := ups.Profiles.Get(ctx, viewerID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	out := publicView(viewer, target)
	return &out, nil
}

// UpdateProfile applies a partial update to the caller's profile.
func (ups *UserProfileService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.Profile, error) {
	at := now(ups.Now)
	fields := map[string]interface{}{}
	if in.DisplayName != nil {
		name := trimmed(*in.DisplayName)
		if err := validateName(name); err != nil {
			return nil, err
		}
		fields["displayName"] = name
	}
	if in.Gender != nil {
		if err := validateGender(*in.Gender); err != nil {
			return nil, err
		}
		fields["gender"] = *in.Gender
	}
	if in.BirthDate != nil {
		if err := validateBirthDate(*in.BirthDate, at); err != nil {
			return nil, err
		}
		fields["birthDate"] = *in.BirthDate
	}
	if in.Bio != nil {
		if err := validateBio(*in.Bio); err != nil {
			return nil, err
		}
		fields["bio"] = trimmed(*in.Bio)
	}
	if in.City != nil {
		fields["city"] = trimmed(*in.City)
	}
	if in.LookingFor != nil {
		if err := validateIntent(*in.LookingFor); err != nil {
			return nil, err
		}
		fields["lookingFor"] = *in.LookingFor
	}
	if in.Photos != nil {
		if err := validatePhotos(userID, *in.Photos); err != nil {
			return nil, err
		}
		fields["photos"] = *in.Photos
	}
	if len(fields) == 0 {
		return ups.GetOwnProfile(ctx, userID)
	}
	fields["updatedAt"] = utils.Timestamp(at)
	return ups.updateFields(ctx, userID, fields)
}

// SetLocation stores the coordinates and the city they resolve to.
// A geocoding failure keeps the coordinates and the previous city.
func (ups *UserProfileService) SetLocation(ctx context.Context, userID string, lat, lon float64) (*models.Profile, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || (lat == 0 && lon == 0) {
		return nil, utils.InvalidInput("Invalid coordinates")
	}
	fields := map[string]interface{}{
		"latitude":  lat,
		"longitude": lon,
		"updatedAt": utils.Timestamp(now(ups.Now)),
	}
	if ups.Geocoder != nil {
		city, err := ups.Geocoder.Reverse(ctx, lat, lon)
		if err != nil {
			ups.Log.Warnw("reverse geocoding failed", "userId", userID, "error", err)
		} else if city != "" {
			fields["city"] = city
		}
	}
	return ups.updateFields(ctx, userID, fields)
}

// SetSuspended hides or restores a profile.
func (ups *UserProfileService) SetSuspended(ctx context.Context, userID string, suspended bool) (*models.Profile, error) {
	return ups.updateFields(ctx, userID, map[string]interface{}{
		"suspended": suspended,
		"updatedAt": utils.Timestamp(now(ups.Now)),
	})
}

func (ups *UserProfileService) DeleteProfile(ctx context.Context, userID string) error {
	if _, err := ups.GetOwnProfile(ctx, userID); err != nil {
		return err
	}
	if err := ups.Profiles.Delete(ctx, userID); err != nil {
		return dbError("delete profile", err)
	}
	ups.Log.Infow("profile deleted", "userId", userID)
	return nil
}

// BrowseProfiles lists visible members matching filter.
func (ups *UserProfileService) BrowseProfiles(ctx context.Context, viewerID string, filter models.BrowseFilter) ([]models.Profile, error) {
	if filter.Sort != "" && filter.Sort != "distance" && filter.Sort != "newest" {
		return nil, utils.InvalidInput("sort must be distance or newest")
	}
	if filter.MinAge > 0 && filter.MaxAge > 0 && filter.MinAge > filter.MaxAge {
		return nil, utils.InvalidInput("minAge cannot exceed maxAge")
	}
	viewer, err := ups.Profiles.Get(ctx, viewerID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if filter.MaxDistanceKm > 0 && (viewer == nil || !viewer.HasLocation()) {
		return nil, utils.InvalidInput("Set your location to filter by distance")
	}
	hidden, err := hiddenUsers(ctx, ups.Blocks, viewerID)
	if err != nil {
		return nil, err
	}
	all, err := ups.Profiles.ListActive(ctx)
	if err != nil {
		return nil, dbError("list profiles", err)
	}

	at := now(ups.Now)
	out := make([]models.Profile, 0, len(all))
	for i := range all {
		p := &all[i]
		if p.UserID == viewerID || hidden[p.UserID] {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if filter.City != "" && !strings.EqualFold(strings.TrimSpace(p.City), strings.TrimSpace(filter.City)) {
			continue
		}
		age := p.Age(at)
		if filter.MinAge > 0 && age < filter.MinAge {
			continue
		}
		if filter.MaxAge > 0 && age > filter.MaxAge {
			continue
		}
		candidate := publicView(viewer, p)
		if filter.MaxDistanceKm > 0 && (candidate.DistanceKm == nil || *candidate.DistanceKm > filter.MaxDistanceKm) {
			continue
		}
		out = append(out, candidate)
	}

	if filter.Sort == "distance" {
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := out[i].DistanceKm, out[j].DistanceKm
			if di == nil || dj == nil {
				return di != nil
			}
			return *di < *dj
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	}

	limit := clampLimit(filter.Limit, 50, 100)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (ups *UserProfileService) updateFields(ctx context.Context, userID string, fields map[string]interface{}) (*models.Profile, error) {
	profile, err := ups.Profiles.UpdateFields(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, utils.NotFound("Profile not found")
		}
		return nil, dbError("update profile", err)
	}
	return profile, nil
}

func validateName(name string) error {
	if name == "" {
		return utils.InvalidInput("displayName is required")
	}
	if runeLen(name) > maxNameLength {
		return utils.InvalidInput("displayName is too long")
	}
	return nil
}

func validateGender(g string) error {
	if !models.Contains(models.Genders, g) {
		return utils.InvalidInput("gender must be one of " + strings.Join(models.Genders, ", "))
	}
	return nil
}

func validateBirthDate(d string, at time.Time) error {
	p := models.Profile{BirthDate: d}
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return utils.InvalidInput("birthDate must be formatted YYYY-MM-DD")
	}
	if p.Age(at) < minAge {
		return utils.InvalidInput("You must be at least 18 years old")
	}
	return nil
}

func validateIntent(intent string) error {
	if intent != "" && !models.Contains(models.Intents, intent) {
		return utils.InvalidInput("lookingFor must be one of " + strings.Join(models.Intents, ", "))
	}
	return nil
}

func validateBio(bio string) error {
	if runeLen(bio) > maxBioLength {
		return utils.InvalidInput("bio is too long")
	}
	return nil
}

func validatePhotos(userID string, photos []string) error {
	if len(photos) > maxPhotos {
		return utils.InvalidInput("A profile holds at most 6 photos")
	}
	for _, key := range photos {
		if !strings.HasPrefix(key, PhotoPrefix+userID+"/") {
			return utils.InvalidInput("Photos must be uploaded through the photo upload endpoint")
		}
	}
	return nil
}
