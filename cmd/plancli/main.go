// Package main implements plancli, a command line tool that builds a workout
// plan from body measurements against the configured dataset.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"reprise/backend/internal/config"
	"reprise/backend/internal/dataset"
	"reprise/backend/internal/domain"
	"reprise/backend/internal/recommend"
	"reprise/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	genAge    int
	genHeight float64
	genWeight float64
	genIdeal  float64
	genLevel  string
	genDay    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "plancli",
	Short: "Workout plan tools",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&genAge, "age", 0, "age in years (required)")
	generateCmd.Flags().Float64Var(&genHeight, "height", 0, "height in cm (required)")
	generateCmd.Flags().Float64Var(&genWeight, "weight", 0, "current weight in kg (required)")
	generateCmd.Flags().Float64Var(&genIdeal, "ideal", 0, "target weight in kg (required)")
	generateCmd.Flags().StringVar(&genLevel, "level", "", "force a fitness level instead of the computed one")
	generateCmd.Flags().StringVar(&genDay, "day", "", "print only this day of the schedule")
	for _, name := range []string{"age", "height", "weight", "ideal"} {
		_ = generateCmd.MarkFlagRequired(name)
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a plan and print it as JSON",
	Long: `Generate a weekly workout plan from body measurements.

Examples:
  # Plan for a 30 year old, 175cm, 80kg aiming for 70kg
  plancli generate --age 30 --height 175 --weight 80 --ideal 70

  # Force the advanced split and print only the first day
  plancli generate --age 30 --height 175 --weight 80 --ideal 70 --level advanced --day "Day 1"`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if os.Getenv("PLANCLI_DEBUG") != "" {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	store, err := storage.FromConfig(cfg.Dataset, cfg.S3)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	catalog := dataset.NewCatalog(store, cfg.Dataset.CatalogKey, logger, nil)
	links := dataset.NewVideoLinks(store, cfg.Dataset.LinksKey, logger, nil)

	in := recommend.Input{Age: genAge, Height: genHeight, Weight: genWeight, IdealWeight: genIdeal}
	if genLevel != "" {
		level := domain.ParseLevel(genLevel)
		in.LevelOverride = &level
	}

	plan, err := recommend.NewGenerator(catalog, recommend.NewSelector(nil), logger).Generate(ctx, in)
	if err != nil {
		return err
	}
	doc := recommend.NewEnricher(links, logger).Enrich(ctx, plan.Schedule)

	return printPlan(cmd.OutOrStdout(), plan.Meta, doc, genDay)
}

type planOutput struct {
	Meta recommend.Meta `json:"meta"`
	Plan any            `json:"plan"`
}

func printPlan(w io.Writer, meta recommend.Meta, doc domain.PlanDocument, day string) error {
	out := planOutput{Meta: meta, Plan: doc}
	if day != "" {
		dp, ok := doc.Schedule.Day(day)
		if !ok {
			return fmt.Errorf("no %q in the schedule, have %v", day, doc.Schedule.Days())
		}
		out.Plan = dp.Exercises
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
