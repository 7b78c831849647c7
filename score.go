package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cupidwave/compat"
)

// scoreInput is one side of an offline comparison.
type scoreInput struct {
	Answers    compat.Answers `json:"answers"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	City       string         `json:"city"`
	LookingFor string         `json:"lookingFor"`
}

func (in scoreInput) profile() compat.ProfileInfo {
	return compat.ProfileInfo{
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		City:      in.City,
		Intent:    in.LookingFor,
	}
}

func newScoreCmd() *cobra.Command {
	var tablePath string
	cmd := &cobra.Command{
		Use:   "score <answersA.json> <answersB.json>",
		Short: "Print the compatibility breakdown of two answer files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadCompatTable(tablePath)
			if err != nil {
				return err
			}
			a, err := readScoreInput(args[0])
			if err != nil {
				return err
			}
			b, err := readScoreInput(args[1])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(table.Breakdown(a.Answers, b.Answers, a.profile(), b.profile()))
		},
	}
	cmd.Flags().StringVar(&tablePath, "compat-table", "", "YAML compatibility table replacing the built-in one")
	return cmd
}

func readScoreInput(path string) (scoreInput, error) {
	var in scoreInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return in, nil
}
