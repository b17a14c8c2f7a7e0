package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabibiq/matchengine/config"
	"github.com/tabibiq/matchengine/core/match"
	coremetrics "github.com/tabibiq/matchengine/core/metrics"
	"github.com/tabibiq/matchengine/core/model"
	"github.com/tabibiq/matchengine/infra/logger"
)

var inputPath string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a single matching pass from a JSON input file",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON file with the request and candidate pool")
	_ = matchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(matchCmd)
}

// matchInput mirrors the MQTT request envelope for offline runs.
type matchInput struct {
	Request    model.ConsultationRequest `json:"request"`
	Candidates []model.DoctorCandidate   `json:"candidates"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var input matchInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	engine, err := match.NewEngine(cfg.Match, logger.New("match-command"), coremetrics.NopSink{}, nil)
	if err != nil {
		return fmt.Errorf("match engine: %w", err)
	}
	result, err := engine.Match(context.Background(), input.Request, input.Candidates)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
