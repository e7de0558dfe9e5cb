package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go-analytics-pipeline/internal/ai"
	"go-analytics-pipeline/internal/config"
	"go-analytics-pipeline/internal/logger"
	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/pipeline"
	"go-analytics-pipeline/internal/route"
	"go-analytics-pipeline/internal/staging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds a runner; exits on configuration errors,
// which are operator mistakes rather than stage failures.
func setup() (*pipeline.Runner, *config.Config, *slog.Logger) {
	log := logger.New("pipelinectl")
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(2)
	}
	store, err := staging.Open(cfg.StagingBackend, cfg.StagingDir)
	if err != nil {
		log.Error("open staging store", slog.Any("err", err))
		os.Exit(2)
	}
	return pipeline.NewRunner(cfg, store, log), cfg, log
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pipelinectl",
		Short:         "Run analytics pipeline stages against the staging store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	stage := func(use, short string, fn func(r *pipeline.Runner, ctx context.Context) int) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				r, _, _ := setup()
				os.Exit(fn(r, cmd.Context()))
			},
		}
	}

	root.AddCommand(stage("ingest", "Pull raw records into the staging store",
		func(r *pipeline.Runner, ctx context.Context) int { return r.Ingest(ctx) }))
	root.AddCommand(stage("clean", "Validate and flatten the raw input",
		func(r *pipeline.Runner, ctx context.Context) int { return r.Clean(ctx) }))
	root.AddCommand(stage("analyze", "Aggregate cleaned data into analytics",
		func(r *pipeline.Runner, ctx context.Context) int { return r.Analyze(ctx) }))
	root.AddCommand(stage("deliver", "Push the report to the webhook and write the summary",
		func(r *pipeline.Runner, ctx context.Context) int { return r.Deliver(ctx) }))
	root.AddCommand(stage("health", "Check environment and source reachability",
		func(r *pipeline.Runner, ctx context.Context) int { return r.Health(ctx) }))
	root.AddCommand(stage("run", "Run the full pipeline in order",
		func(r *pipeline.Runner, ctx context.Context) int { return r.RunAll(ctx) }))

	root.AddCommand(newReportCmd())
	root.AddCommand(newRouteCmd())
	return root
}

func newReportCmd() *cobra.Command {
	var title, period string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the analytics result into a report payload",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r, _, _ := setup()
			os.Exit(r.Report(cmd.Context(), title, period))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "report title override")
	cmd.Flags().StringVar(&period, "period", "", "report period override")
	return cmd
}

func newRouteCmd() *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Show the route decision for an action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, log := setup()

			var classifier route.Classifier
			if cfg.GeminiAPIKey != "" {
				client, err := ai.NewClient(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AIRateLimitRPM)
				if err == nil {
					classifier = route.NewGeminiClassifier(client)
				}
			}

			decision := route.New(classifier, log).Route(cmd.Context(), model.RouteRequest{Action: action})
			out, err := json.MarshalIndent(decision, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "requested action (unrecognized values run the full pipeline)")
	return cmd
}
