package services

import (
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"cupidwave/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func person(id string, lat, lon float64, city string) *models.Profile {
	return &models.Profile{
		UserID:      id,
		DisplayName: id,
		Gender:      "woman",
		BirthDate:   "1995-04-12",
		City:        city,
		Latitude:    lat,
		Longitude:   lon,
		LookingFor:  "serious",
		CreatedAt:   "2026-01-01T00:00:00.000000Z",
	}
}

func sampleAnswers() map[string]string {
	return map[string]string{
		"relationship_goal": "long_term",
		"children":          "wants",
		"smoking":           "never",
		"drinking":          "socially",
		"religion":          "somewhat",
		"politics":          "center",
		"pets":              "loves",
		"sport":             "weekly",
		"going_out":         "balanced",
		"diet":              "omnivore",
		"love_language":     "time",
		"ambition":          "balanced",
	}
}

func ids(cards []models.ProfileCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.UserID
	}
	return out
}
