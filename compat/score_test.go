package compat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paris      = ProfileInfo{Latitude: 48.8566, Longitude: 2.3522, City: "Paris", Intent: "serious"}
	versailles = ProfileInfo{Latitude: 48.8049, Longitude: 2.1204, City: "Versailles", Intent: "serious"}
	lyon       = ProfileInfo{Latitude: 45.7640, Longitude: 4.8357, City: "Lyon", Intent: "casual"}
)

func fullAnswers() Answers {
	return Answers{
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

func TestDefaultTableIsValid(t *testing.T) {
	table := DefaultTable()
	require.NotNil(t, table)
	assert.Len(t, table.QuestionIDs(), 12)

	_, ok := table.Question("smoking")
	assert.True(t, ok)
}

func TestScore_MissingInputIsZero(t *testing.T) {
	assert.Equal(t, 0, Score(nil, fullAnswers(), paris, paris))
	assert.Equal(t, 0, Score(fullAnswers(), Answers{}, paris, paris))
}

func TestScore_PerfectMatch(t *testing.T) {
	assert.Equal(t, MaxScore, Score(fullAnswers(), fullAnswers(), paris, paris))
}

func TestScore_Components(t *testing.T) {
	a := Answers{"smoking": "never", "drinking": "never"}
	b := Answers{"smoking": "occasionally", "drinking": "often"}

	bd := DefaultTable().Breakdown(a, b, paris, lyon)
	assert.Equal(t, 40, bd.Questions["smoking"], "adjacent answers earn adjacent points")
	assert.Equal(t, 0, bd.Questions["drinking"])
	assert.Equal(t, 0, bd.Geography, "Paris-Lyon is farther than every band")
	assert.Equal(t, 0, bd.Intent)
	assert.Equal(t, 40, bd.Total)
}

func TestScore_SmokingPenalty(t *testing.T) {
	a := Answers{"smoking": "never", "relationship_goal": "long_term"}
	b := Answers{"smoking": "regularly", "relationship_goal": "long_term"}

	bd := DefaultTable().Breakdown(a, b, paris, paris)
	assert.Equal(t, 100, bd.Penalties)
	// 120 (goal) - 100 (penalty) + 200 (same city) + 100 (intent)
	assert.Equal(t, 320, bd.Total)
}

func TestScore_PenaltyNeverGoesNegative(t *testing.T) {
	a := Answers{"smoking": "never", "children": "wants"}
	b := Answers{"smoking": "regularly", "children": "doesnt_want"}
	assert.Equal(t, 0, Score(a, b, ProfileInfo{}, ProfileInfo{}))
}

func TestScore_GeographyBands(t *testing.T) {
	a := Answers{"diet": "vegan"}
	b := Answers{"diet": "omnivore"}
	noIntent := func(p ProfileInfo) ProfileInfo { p.Intent = ""; return p }

	// Paris - Versailles is ~17 km
	assert.Equal(t, 150, Score(a, b, noIntent(paris), noIntent(versailles)))
	// Same city wins even without coordinates
	assert.Equal(t, 200, Score(a, b, ProfileInfo{City: "paris "}, ProfileInfo{City: "Paris"}))
	// No coordinates and different city
	assert.Equal(t, 0, Score(a, b, ProfileInfo{City: "Paris"}, ProfileInfo{}))
}

func TestScore_IntentAdjacency(t *testing.T) {
	a := Answers{"diet": "vegan"}
	b := Answers{"diet": "omnivore"}
	assert.Equal(t, 50, Score(a, b, ProfileInfo{Intent: "serious"}, ProfileInfo{Intent: "open"}))
	assert.Equal(t, 0, Score(a, b, ProfileInfo{Intent: "serious"}, ProfileInfo{Intent: "casual"}))
}

func TestScore_RangeAndSymmetry(t *testing.T) {
	table := DefaultTable()
	rng := rand.New(rand.NewSource(42))
	cities := []string{"Paris", "Lyon", "", "Nantes"}
	intents := []string{"serious", "casual", "friendship", "open", ""}

	randomAnswers := func() Answers {
		out := Answers{}
		for _, q := range table.Questions {
			if rng.Intn(4) == 0 {
				continue
			}
			out[q.ID] = q.Values[rng.Intn(len(q.Values))]
		}
		return out
	}
	randomProfile := func() ProfileInfo {
		return ProfileInfo{
			Latitude:  43 + rng.Float64()*7,
			Longitude: -1 + rng.Float64()*8,
			City:      cities[rng.Intn(len(cities))],
			Intent:    intents[rng.Intn(len(intents))],
		}
	}

	for i := 0; i < 500; i++ {
		a, b := randomAnswers(), randomAnswers()
		pa, pb := randomProfile(), randomProfile()
		s := table.Score(a, b, pa, pb)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, MaxScore)
		assert.Equal(t, s, table.Score(b, a, pb, pa))
	}
}

func TestValidateAnswers(t *testing.T) {
	table := DefaultTable()
	assert.NoError(t, table.ValidateAnswers(fullAnswers()))
	assert.ErrorContains(t, table.ValidateAnswers(Answers{"horoscope": "leo"}), "unknown question")
	assert.ErrorContains(t, table.ValidateAnswers(Answers{"smoking": "sometimes"}), "invalid answer")
}

func TestLoadTable_RejectsBadTables(t *testing.T) {
	_, err := LoadTable([]byte("questions: [{id: a, points: 10, values: [x]}]\nintent: {points: 10}"))
	assert.ErrorContains(t, err, "maximum is 20")

	_, err = LoadTable([]byte(`
questions:
  - id: a
    points: 900
    values: [x, y]
    adjacent: [[x, z]]
intent: {points: 100}
`))
	assert.ErrorContains(t, err, "unknown value")
}
