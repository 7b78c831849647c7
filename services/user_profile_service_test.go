package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

func newProfileService(profiles *mockProfileStore, blocks *mockBlockStore, geo Geocoder) *UserProfileService {
	return &UserProfileService{Profiles: profiles, Blocks: blocks, Geocoder: geo, Log: nopLog(), Now: clock}
}

func validInput() ProfileInput {
	return ProfileInput{
		DisplayName: " Camille ",
		Gender:      "woman",
		BirthDate:   "2000-02-29",
		Bio:         "Coffee first",
		LookingFor:  "serious",
		Photos:      []string{"profile-photos/u1/20261018-me.jpg"},
	}
}

func TestCreateProfile_Validation(t *testing.T) {
	svc := newProfileService(&mockProfileStore{}, noBlocks(), nil)

	cases := map[string]func(*ProfileInput){
		"missing name":    func(in *ProfileInput) { in.DisplayName = "  " },
		"unknown gender":  func(in *ProfileInput) { in.Gender = "robot" },
		"bad birth date":  func(in *ProfileInput) { in.BirthDate = "29/02/2000" },
		"underage":        func(in *ProfileInput) { in.BirthDate = "2008-10-19" },
		"unknown intent":  func(in *ProfileInput) { in.LookingFor = "everything" },
		"foreign photo":   func(in *ProfileInput) { in.Photos = []string{"profile-photos/u2/x.jpg"} },
		"too many photos": func(in *ProfileInput) { in.Photos = make([]string, 7) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.CreateProfile(context.Background(), "u1", in)
			assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestCreateProfile_EighteenToday(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := newProfileService(profiles, noBlocks(), nil)

	in := validInput()
	in.BirthDate = "2008-10-18"
	p, err := svc.CreateProfile(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "Camille", p.DisplayName)
	assert.Equal(t, "2026-10-18T10:00:00.000000Z", p.CreatedAt)
	assert.Zero(t, p.PushCredits)
}

func TestCreateProfile_Duplicate(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Create", mock.Anything, mock.Anything).Return(store.ErrConditionFailed)
	svc := newProfileService(profiles, noBlocks(), nil)

	_, err := svc.CreateProfile(context.Background(), "u1", validInput())
	assert.True(t, utils.IsErrorCode(err, utils.ErrConflict))
}

func TestGetProfile_HiddenProfiles(t *testing.T) {
	profiles := &mockProfileStore{}
	suspended := person("s", 0, 0, "")
	suspended.Suspended = true
	profiles.On("Get", mock.Anything, "s").Return(suspended, nil)
	profiles.On("Get", mock.Anything, "b").Return(person("b", 0, 0, ""), nil)
	profiles.On("Get", mock.Anything, "missing").Return(nil, nil)

	blocks := &mockBlockStore{}
	blocks.On("Exists", mock.Anything, "a", "b").Return(false, nil)
	blocks.On("Exists", mock.Anything, "b", "a").Return(true, nil)
	svc := newProfileService(profiles, blocks, nil)

	for _, id := range []string{"s", "b", "missing"} {
		_, err := svc.GetProfile(context.Background(), "a", id)
		assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound), id)
	}
}

func TestGetProfile_DistanceAndPrivateFields(t *testing.T) {
	profiles := &mockProfileStore{}
	target := person("b", 48.8049, 2.1204, "Versailles")
	target.PushCredits = 4
	target.Role = models.RoleAdmin
	profiles.On("Get", mock.Anything, "b").Return(target, nil)
	profiles.On("Get", mock.Anything, "a").Return(person("a", 48.8566, 2.3522, "Paris"), nil)
	svc := newProfileService(profiles, noBlocks(), nil)

	p, err := svc.GetProfile(context.Background(), "a", "b")
	require.NoError(t, err)
	require.NotNil(t, p.DistanceKm)
	assert.InDelta(t, 17.9, *p.DistanceKm, 0.5)
	assert.Zero(t, p.PushCredits)
	assert.Zero(t, p.Latitude)
	assert.Zero(t, p.Longitude)
	assert.Empty(t, p.Role)
	assert.Equal(t, "Versailles", p.City)
	assert.Equal(t, 4, target.PushCredits, "stored profile untouched")
	assert.Equal(t, 48.8049, target.Latitude)

	own, err := svc.GetProfile(context.Background(), "b", "b")
	require.NoError(t, err)
	assert.Equal(t, 48.8049, own.Latitude, "owners see their own coordinates")
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("UpdateFields", mock.Anything, "u1", map[string]interface{}{
		"bio":       "Tea now",
		"city":      "Lyon",
		"updatedAt": "2026-10-18T10:00:00.000000Z",
	}).Return(person("u1", 0, 0, "Lyon"), nil)
	svc := newProfileService(profiles, noBlocks(), nil)

	bio, city := " Tea now ", "Lyon"
	p, err := svc.UpdateProfile(context.Background(), "u1", ProfileUpdate{Bio: &bio, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Lyon", p.City)

	missing := &mockProfileStore{}
	missing.On("UpdateFields", mock.Anything, "ghost", mock.Anything).Return(nil, store.ErrConditionFailed)
	_, err = newProfileService(missing, noBlocks(), nil).UpdateProfile(context.Background(), "ghost", ProfileUpdate{City: &city})
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestSetLocation_Geocoding(t *testing.T) {
	geo := &mockGeocoder{}
	geo.On("Reverse", mock.Anything, 45.764, 4.8357).Return("Lyon", nil)
	geo.On("Reverse", mock.Anything, 43.2965, 5.3698).Return("", errors.New("timeout"))

	profiles := &mockProfileStore{}
	profiles.On("UpdateFields", mock.Anything, "u1", mock.MatchedBy(func(f map[string]interface{}) bool {
		return f["city"] == "Lyon" && f["latitude"] == 45.764
	})).Return(person("u1", 45.764, 4.8357, "Lyon"), nil).Once()
	profiles.On("UpdateFields", mock.Anything, "u1", mock.MatchedBy(func(f map[string]interface{}) bool {
		_, hasCity := f["city"]
		return !hasCity && f["latitude"] == 43.2965
	})).Return(person("u1", 43.2965, 5.3698, "Lyon"), nil).Once()
	svc := newProfileService(profiles, noBlocks(), geo)

	_, err := svc.SetLocation(context.Background(), "u1", 45.764, 4.8357)
	require.NoError(t, err)
	_, err = svc.SetLocation(context.Background(), "u1", 43.2965, 5.3698)
	require.NoError(t, err)
	profiles.AssertExpectations(t)

	_, err = svc.SetLocation(context.Background(), "u1", 0, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	_, err = svc.SetLocation(context.Background(), "u1", 91, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func browseFixture() (*UserProfileService, *mockProfileStore) {
	profiles := &mockProfileStore{}
	old := person("old", 45.764, 4.8357, "Lyon")
	old.BirthDate = "1970-01-01"
	man := person("man", 48.86, 2.35, "Paris")
	man.Gender = "man"
	man.CreatedAt = "2026-05-01T00:00:00.000000Z"
	near := person("near", 48.8686, 2.3412, "paris")
	near.CreatedAt = "2026-03-01T00:00:00.000000Z"
	far := person("far", 48.8049, 2.1204, "Versailles")
	far.CreatedAt = "2026-04-01T00:00:00.000000Z"

	profiles.On("Get", mock.Anything, "a").Return(person("a", 48.8566, 2.3522, "Paris"), nil)
	profiles.On("ListActive", mock.Anything).Return([]models.Profile{
		*person("a", 48.8566, 2.3522, "Paris"), *old, *man, *near, *far,
	}, nil)
	return newProfileService(profiles, noBlocks(), nil), profiles
}

func profileIDs(list []models.Profile) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.UserID
	}
	return out
}

func TestBrowseProfiles_Filters(t *testing.T) {
	svc, _ := browseFixture()
	ctx := context.Background()

	list, err := svc.BrowseProfiles(ctx, "a", models.BrowseFilter{Gender: "woman", MaxAge: 40, Sort: "distance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "far"}, profileIDs(list))

	list, err = svc.BrowseProfiles(ctx, "a", models.BrowseFilter{City: "PARIS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"man", "near"}, profileIDs(list), "newest first by default")

	list, err = svc.BrowseProfiles(ctx, "a", models.BrowseFilter{MaxDistanceKm: 10, Limit: 1, Sort: "distance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"man"}, profileIDs(list))
	require.NotNil(t, list[0].DistanceKm)
	assert.Zero(t, list[0].Latitude)
	assert.Zero(t, list[0].Longitude)

	_, err = svc.BrowseProfiles(ctx, "a", models.BrowseFilter{Sort: "random"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	_, err = svc.BrowseProfiles(ctx, "a", models.BrowseFilter{MinAge: 40, MaxAge: 30})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestBrowseProfiles_DistanceNeedsLocation(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Get", mock.Anything, "a").Return(person("a", 0, 0, ""), nil)
	svc := newProfileService(profiles, noBlocks(), nil)

	_, err := svc.BrowseProfiles(context.Background(), "a", models.BrowseFilter{MaxDistanceKm: 5})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestDeleteProfile(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Get", mock.Anything, "u1").Return(person("u1", 0, 0, ""), nil)
	profiles.On("Get", mock.Anything, "ghost").Return(nil, nil)
	profiles.On("Delete", mock.Anything, "u1").Return(nil)
	svc := newProfileService(profiles, noBlocks(), nil)

	require.NoError(t, svc.DeleteProfile(context.Background(), "u1"))
	err := svc.DeleteProfile(context.Background(), "ghost")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	profiles.AssertNumberOfCalls(t, "Delete", 1)
}
