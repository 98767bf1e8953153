package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/pkg/logger"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank foods for one biometric profile",
	Long:  "Reads a request JSON ({sex, ageYears, weightKg, heightCm, activityLevel, topK}), loads the configured food table and prints the recommendation JSON.",
	RunE:  runRecommend,
}

var caloriesCmd = &cobra.Command{
	Use:   "calories",
	Short: "Estimate daily calories and macro targets for one profile",
	RunE:  runCalories,
}

var (
	requestPath string
	outputPath  string
)

func init() {
	for _, cmd := range []*cobra.Command{recommendCmd, caloriesCmd} {
		cmd.Flags().StringVarP(&requestPath, "request", "r", "", "Path to request JSON file, - for stdin (required)")
		cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Path to output JSON file (default stdout)")
		if err := cmd.MarkFlagRequired("request"); err != nil {
			panic(fmt.Sprintf("failed to mark request flag as required: %v", err))
		}
		rootCmd.AddCommand(cmd)
	}
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(requestPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	svc, err := initializeService(cmd.Context(), cliLogger())
	if err != nil {
		return fmt.Errorf("failed to load recommender: %w", err)
	}
	resp, err := svc.Recommend(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), outputPath, resp)
}

func runCalories(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(requestPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	// The estimate never touches the food table, so skip loading it.
	resp, err := recommender.NewService(recommender.Config{}, nil, cliLogger()).Estimate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), outputPath, resp)
}

func cliLogger() *slog.Logger {
	return logger.NewWithWriter(os.Stderr, os.Getenv("LOG_LEVEL"))
}

func readRequest(path string, stdin io.Reader) (recommender.Request, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return recommender.Request{}, fmt.Errorf("failed to read request %s: %w", path, err)
	}
	var req recommender.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return recommender.Request{}, fmt.Errorf("failed to unmarshal request JSON: %w", err)
	}
	return req, nil
}

func writeJSON(stdout io.Writer, path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	payload = append(payload, '\n')
	if path == "" {
		_, err = stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write response to %s: %w", path, err)
	}
	return nil
}
