package compat

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// MaxScore is the upper bound of Score.
const MaxScore = 1000

//go:embed table.yaml
var defaultTableYAML []byte

// Question is one questionnaire entry and how answers to it are rewarded.
type Question struct {
	ID             string     `yaml:"id"`
	Points         int        `yaml:"points"`
	AdjacentPoints int        `yaml:"adjacentPoints"`
	Values         []string   `yaml:"values"`
	Adjacent       [][]string `yaml:"adjacent"`
	Penalties      []Penalty  `yaml:"penalties"`
}

// Penalty subtracts points when the two answers form an explicit clash.
type Penalty struct {
	Pair   []string `yaml:"pair"`
	Points int      `yaml:"points"`
}

// DistanceBand rewards profiles closer than MaxKm.
type DistanceBand struct {
	MaxKm  float64 `yaml:"maxKm"`
	Points int     `yaml:"points"`
}

// Geography scores proximity.
type Geography struct {
	SameCityPoints int            `yaml:"sameCityPoints"`
	Bands          []DistanceBand `yaml:"bands"`
}

// IntentRule scores the stated intent of both profiles.
type IntentRule struct {
	Points         int        `yaml:"points"`
	AdjacentPoints int        `yaml:"adjacentPoints"`
	Adjacent       [][]string `yaml:"adjacent"`
}

// Table is the full scoring configuration.
type Table struct {
	Questions []Question `yaml:"questions"`
	Geography Geography  `yaml:"geography"`
	Intent    IntentRule `yaml:"intent"`

	byID map[string]*Question
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the embedded table, parsed once.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := LoadTable(defaultTableYAML)
		if err != nil {
			panic(fmt.Sprintf("compat: embedded table is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadTable parses and validates a YAML scoring table.
func LoadTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse compatibility table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	sort.Slice(t.Geography.Bands, func(i, j int) bool {
		return t.Geography.Bands[i].MaxKm < t.Geography.Bands[j].MaxKm
	})
	t.byID = make(map[string]*Question, len(t.Questions))
	for i := range t.Questions {
		t.byID[t.Questions[i].ID] = &t.Questions[i]
	}
	return &t, nil
}

func (t *Table) validate() error {
	total := t.Intent.Points + t.maxGeography()
	seen := map[string]bool{}
	for _, q := range t.Questions {
		if q.ID == "" {
			return fmt.Errorf("question without id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question %q", q.ID)
		}
		seen[q.ID] = true
		if q.AdjacentPoints > q.Points {
			return fmt.Errorf("question %q: adjacent points exceed full points", q.ID)
		}
		for _, pair := range q.Adjacent {
			if err := checkPair(q, pair); err != nil {
				return err
			}
		}
		for _, p := range q.Penalties {
			if err := checkPair(q, p.Pair); err != nil {
				return err
			}
		}
		total += q.Points
	}
	for _, pair := range t.Intent.Adjacent {
		if len(pair) != 2 {
			return fmt.Errorf("intent adjacency must be a pair, got %v", pair)
		}
	}
	if total != MaxScore {
		return fmt.Errorf("table maximum is %d, want %d", total, MaxScore)
	}
	return nil
}

func checkPair(q Question, pair []string) error {
	if len(pair) != 2 {
		return fmt.Errorf("question %q: expected a pair, got %v", q.ID, pair)
	}
	for _, v := range pair {
		if !contains(q.Values, v) {
			return fmt.Errorf("question %q: unknown value %q", q.ID, v)
		}
	}
	return nil
}

func (t *Table) maxGeography() int {
	best := t.Geography.SameCityPoints
	for _, b := range t.Geography.Bands {
		if b.Points > best {
			best = b.Points
		}
	}
	return best
}

// Question looks up a question by id.
func (t *Table) Question(id string) (*Question, bool) {
	q, ok := t.byID[id]
	return q, ok
}

// QuestionIDs lists the questionnaire in table order.
func (t *Table) QuestionIDs() []string {
	ids := make([]string, 0, len(t.Questions))
	for _, q := range t.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

// ValidateAnswers rejects unknown questions and values.
func (t *Table) ValidateAnswers(answers Answers) error {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, id := range keys {
		q, ok := t.byID[id]
		if !ok {
			return fmt.Errorf("unknown question %q", id)
		}
		if !contains(q.Values, answers[id]) {
			return fmt.Errorf("invalid answer %q for %s (expected one of %s)", answers[id], id, strings.Join(q.Values, ", "))
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func pairMatches(pair []string, a, b string) bool {
	return len(pair) == 2 && ((pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a))
}
