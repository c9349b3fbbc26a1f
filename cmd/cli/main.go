package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gomood/adapters/dataset"
	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
	"gomood/internal"
	"gomood/internal/analysis"
	"gomood/internal/config"
	"gomood/internal/errors"
	"gomood/internal/testkit"
	"gomood/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "gomood",
		Short:         "Temporal pattern analysis over valence/arousal/dominance histories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newStatsCmd(),
		newDetectorsCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type analyzeOptions struct {
	minConfidence float64
	uuidIDs       bool
}

type analyzeOutput struct {
	Samples  int                  `json:"samples"`
	Counts   map[pattern.Type]int `json:"counts"`
	Patterns []pattern.Pattern    `json:"patterns"`
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Detect trends, cycles, shifts and stable periods",
		Long: `Read an emotion-analysis history and print the detected patterns as JSON.

Supported inputs: .json, .yaml/.yml, .csv and .xlsx (Sheet1 with timestamp,
valence, arousal and dominance columns).

Thresholds come from the environment (PATTERN_CONFIDENCE_FLOOR, TREND_SLOPE_THRESHOLD,
CYCLE_METRIC, ...). A .env file in the working directory is loaded first.

Example: gomood analyze history.json --min-confidence 0.7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-confidence") {
				cfg.Analyzer.ConfidenceFloor = opts.minConfidence
				if err := config.Validate(cfg); err != nil {
					return err
				}
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), args[0], cfg.Analyzer, opts, logger)
		},
	}

	cmd.Flags().Float64Var(&opts.minConfidence, "min-confidence", 0.5, "Override the confidence floor (exclusive)")
	cmd.Flags().BoolVar(&opts.uuidIDs, "uuid-ids", false, "Assign UUIDv7 pattern ids instead of sequential ones")

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print aggregate dimension statistics for a history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return runStats(cmd.Context(), cmd.OutOrStdout(), args[0], logger)
		},
	}
}

func newDetectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List the registered pattern detectors in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			a := analysis.NewPatternAnalyzer(cfg.Analyzer, analysis.WithLogger(logger))
			for i, name := range a.Detectors() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var seed int64
	var n int
	var shape string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic history as JSON",
		Long: `Generate a synthetic emotion-analysis history with a known shape.

Shapes: ramp, periodic, plateau, constant, noisy.

Example: gomood generate --shape periodic -n 24 > history.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), shape, n, seed)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().IntVarP(&n, "samples", "n", 20, "Number of samples")
	cmd.Flags().StringVar(&shape, "shape", "ramp", "Sequence shape")

	return cmd
}

func loadConfig() (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := internal.NewLoggerWithOutput(internal.ParseLogLevel(cfg.Log.Level), os.Stderr)
	return cfg, logger, nil
}

func readHistory(ctx context.Context, path string, logger *internal.Logger) ([]emotion.Analysis, error) {
	reader, err := dataset.NewReader(path, logger)
	if err != nil {
		return nil, err
	}
	return reader.ReadAnalyses(ctx)
}

func runAnalyze(ctx context.Context, w io.Writer, path string, cfg config.AnalyzerConfig, opts analyzeOptions, logger *internal.Logger) error {
	start := time.Now()
	history, err := readHistory(ctx, path, logger)
	if err != nil {
		return err
	}

	analyzerOpts := []analysis.Option{analysis.WithLogger(logger)}
	if opts.uuidIDs {
		analyzerOpts = append(analyzerOpts, analysis.WithIDGenerator(core.UUIDGenerator{}))
	}
	analyzer := analysis.NewPatternAnalyzer(cfg, analyzerOpts...)

	maps := ports.DimensionalMaps(history)
	patterns := analyzer.AnalyzeMultidimensionalPatterns(ctx, history, maps)
	logger.Debug("analyzed %s in %s", path, time.Since(start))

	return writeJSON(w, analyzeOutput{
		Samples:  len(maps),
		Counts:   pattern.CountByType(patterns),
		Patterns: patterns,
	})
}

func runStats(ctx context.Context, w io.Writer, path string, logger *internal.Logger) error {
	history, err := readHistory(ctx, path, logger)
	if err != nil {
		return err
	}
	stats, err := analysis.NewStatisticsCalculator(logger).CalculateEmotionStatistics(history)
	if err != nil {
		return err
	}
	return writeJSON(w, stats)
}

func runGenerate(w io.Writer, shape string, n int, seed int64) error {
	cfg := testkit.DefaultVADConfig()
	cfg.Seed = seed
	gen := testkit.NewVADGenerator(cfg)

	if n < 1 {
		return errors.InvalidInput(fmt.Sprintf("sample count must be positive, got %d", n))
	}

	var maps []emotion.DimensionalMap
	switch shape {
	case "ramp":
		maps = gen.Ramp(n, emotion.Dimensions{Valence: -1, Arousal: 0.2}, emotion.Dimensions{Valence: 1, Arousal: 0.2})
	case "periodic":
		maps = gen.Periodic(n, 6, 0, 1)
	case "plateau":
		maps = gen.Plateau(n, n/2, emotion.Dimensions{Valence: -0.4}, emotion.Dimensions{Valence: 0.5, Arousal: 0.5, Dominance: 0.4})
	case "constant":
		maps = gen.Constant(n, emotion.Dimensions{Valence: 0.1, Arousal: 0.1})
	case "noisy":
		maps = gen.Noisy(n)
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown shape %q (use ramp, periodic, plateau, constant or noisy)", shape))
	}

	history := testkit.ToAnalyses(maps)
	for i := range history {
		history[i].ID = fmt.Sprintf("a%d", i+1)
	}
	return writeJSON(w, map[string]interface{}{"analyses": history})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
