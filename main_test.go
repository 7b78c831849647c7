package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupidwave/compat"
)

const sampleAnswers = `{
  "answers": {
    "relationship_goal": "long_term", "children": "wants", "smoking": "never",
    "drinking": "socially", "religion": "somewhat", "politics": "center",
    "pets": "loves", "sport": "weekly", "going_out": "balanced",
    "diet": "omnivore", "love_language": "time", "ambition": "balanced"
  },
  "latitude": 48.8566, "longitude": 2.3522, "city": "Paris", "lookingFor": "serious"
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScoreCommand_PerfectMatch(t *testing.T) {
	a := writeFile(t, "a.json", sampleAnswers)
	b := writeFile(t, "b.json", sampleAnswers)

	out, err := runCLI(t, "score", a, b)
	require.NoError(t, err)

	var bd compat.Breakdown
	require.NoError(t, json.Unmarshal([]byte(out), &bd))
	assert.Equal(t, compat.MaxScore, bd.Total)
	assert.Len(t, bd.Questions, 12)
}

func TestScoreCommand_EmptyAnswers(t *testing.T) {
	a := writeFile(t, "a.json", sampleAnswers)
	b := writeFile(t, "b.json", `{"city": "Paris"}`)

	out, err := runCLI(t, "score", a, b)
	require.NoError(t, err)

	var bd compat.Breakdown
	require.NoError(t, json.Unmarshal([]byte(out), &bd))
	assert.Zero(t, bd.Total)
}

func TestScoreCommand_Errors(t *testing.T) {
	a := writeFile(t, "a.json", sampleAnswers)

	_, err := runCLI(t, "score", a)
	assert.Error(t, err)

	_, err = runCLI(t, "score", a, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")

	_, err = runCLI(t, "score", a, writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = runCLI(t, "score", "--compat-table", writeFile(t, "table.yaml", "questions: ["), a, a)
	assert.Error(t, err)
}
