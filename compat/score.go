// Package compat scores how well two members fit, from their questionnaire
// answers, where they live and what they are looking for.
package compat

import (
	"strings"

	"cupidwave/utils"
)

// Answers maps a question id to an enumerated answer.
type Answers map[string]string

// ProfileInfo is the part of a profile the score looks at.
type ProfileInfo struct {
	Latitude  float64
	Longitude float64
	City      string
	Intent    string
}

func (p ProfileInfo) hasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// Breakdown splits a score into its components.
type Breakdown struct {
	Questions map[string]int `json:"questions"`
	Penalties int            `json:"penalties"`
	Geography int            `json:"geography"`
	Intent    int            `json:"intent"`
	Total     int            `json:"total"`
}

// Score uses the embedded table.
func Score(a, b Answers, pa, pb ProfileInfo) int {
	return DefaultTable().Score(a, b, pa, pb)
}

// Score returns a value in [0, MaxScore]. Either answer map being empty yields 0.
func (t *Table) Score(a, b Answers, pa, pb ProfileInfo) int {
	return t.Breakdown(a, b, pa, pb).Total
}

// Breakdown computes every component of the score.
func (t *Table) Breakdown(a, b Answers, pa, pb ProfileInfo) Breakdown {
	out := Breakdown{Questions: map[string]int{}}
	if len(a) == 0 || len(b) == 0 {
		return out
	}

	sum := 0
	for _, q := range t.Questions {
		va, okA := a[q.ID]
		vb, okB := b[q.ID]
		if !okA || !okB || va == "" || vb == "" {
			continue
		}
		points := questionPoints(q, va, vb)
		out.Questions[q.ID] = points
		sum += points
		for _, p := range q.Penalties {
			if pairMatches(p.Pair, va, vb) {
				out.Penalties += p.Points
			}
		}
	}

	out.Geography = t.geographyPoints(pa, pb)
	out.Intent = t.intentPoints(pa.Intent, pb.Intent)

	total := sum - out.Penalties + out.Geography + out.Intent
	switch {
	case total < 0:
		total = 0
	case total > MaxScore:
		total = MaxScore
	}
	out.Total = total
	return out
}

func questionPoints(q Question, va, vb string) int {
	if va == vb {
		return q.Points
	}
	for _, pair := range q.Adjacent {
		if pairMatches(pair, va, vb) {
			return q.AdjacentPoints
		}
	}
	return 0
}

func (t *Table) geographyPoints(pa, pb ProfileInfo) int {
	if pa.City != "" && strings.EqualFold(strings.TrimSpace(pa.City), strings.TrimSpace(pb.City)) {
		return t.Geography.SameCityPoints
	}
	if !pa.hasLocation() || !pb.hasLocation() {
		return 0
	}
	d := utils.CalculateDistance(pa.Latitude, pa.Longitude, pb.Latitude, pb.Longitude)
	for _, band := range t.Geography.Bands {
		if d <= band.MaxKm {
			return band.Points
		}
	}
	return 0
}

func (t *Table) intentPoints(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return t.Intent.Points
	}
	for _, pair := range t.Intent.Adjacent {
		if pairMatches(pair, a, b) {
			return t.Intent.AdjacentPoints
		}
	}
	return 0
}
