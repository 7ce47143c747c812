package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"mealplanner"
	"mealplanner/catalog"
	"mealplanner/pipeline"
	"mealplanner/planner"
	"mealplanner/shopping"
	"mealplanner/tools"
	"mealplanner/tools/storage"
)

// Params selects a tool. An empty Tool plans a week for the profile stored in S3.
type Params struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var plannerConfig mealplanner.PlannerConfig
		if err := envdecode.Decode(&plannerConfig); err != nil {
			return Results{}, fmt.Errorf("SETUP: failed to decode planner config: %w", err)
		}

		var s3Config mealplanner.S3Config
		if err := envdecode.Decode(&s3Config); err != nil {
			return Results{}, fmt.Errorf("missing S3 config: %w", err)
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return Results{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s3Client := s3.NewFromConfig(awsCfg)

		var nutrients storage.NutrientState
		if s3Config.NutrientsKey != "" {
			nutrients = storage.NewS3State(s3Client, "nutrients", s3Config.Bucket, s3Config.NutrientsKey)
		}
		src, err := catalog.LoadSource(ctx, nutrients)
		if err != nil {
			slog.Error("SETUP: Failed to load nutrient table from S3", "error", err)
			return Results{}, err
		}

		cs := storage.NewS3State(s3Client, "catalog", s3Config.Bucket, s3Config.CatalogKey)
		pool, err := catalog.Load(ctx, cs, src)
		if err != nil {
			slog.Error("SETUP: Failed to load catalog from S3", "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: Catalog loaded from S3", "meals", len(pool))

		strategy, err := planner.StrategyByName(plannerConfig.SelectionStrategy)
		if err != nil {
			return Results{}, err
		}
		opts := []pipeline.Option{
			pipeline.WithStrategy(strategy),
			pipeline.WithRunLogger(mealplanner.NewStdoutRunLogger()),
		}
		if s3Config.PricesKey != "" {
			b, err := storage.NewS3State(s3Client, "prices", s3Config.Bucket, s3Config.PricesKey).Load(ctx)
			if err != nil {
				slog.Error("SETUP: Failed to load price list from S3", "error", err)
				return Results{}, err
			}
			prices, err := shopping.LoadPriceTable(b)
			if err != nil {
				return Results{}, err
			}
			opts = append(opts, pipeline.WithPricing(prices))
			if plannerConfig.WeeklyBudget > 0 {
				opts = append(opts, pipeline.WithBudget(plannerConfig.WeeklyBudget, plannerConfig.Currency))
			}
		}

		tracerProvider, meterProvider, otelShutdown, err := mealplanner.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		runner := pipeline.NewInstrumented(pipeline.New(pool, opts...),
			tracerProvider.Tracer(mealplanner.TracerNamePipeline),
			meterProvider.Meter(mealplanner.MeterNamePipeline))

		if params.Tool == "" {
			ps := storage.NewS3State(s3Client, "profile", s3Config.Bucket, s3Config.ProfileKey)
			profile, err := mealplanner.NewStateProfileProvider(ps).Profile(ctx)
			if err != nil {
				slog.Error("SETUP: Failed to load profile from S3", "error", err)
				return Results{}, err
			}
			res, err := runner.Run(ctx, profile)
			if err != nil {
				slog.Error("RESULT: Error planning week", "error", err)
				return Results{}, err
			}
			return Results{Output: res}, nil
		}

		registry, err := tools.NewRegistry(cs, src, runner)
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}
		tool, err := registry.GetTool(params.Tool)
		if err != nil {
			return Results{}, err
		}
		output, err := tool.Run(ctx, params.Input)
		if err != nil {
			slog.Error("RESULT: Error running tool", "tool", params.Tool, "error", err)
			return Results{}, err
		}
		return Results{Output: output}, nil
	}

	lambda.Start(fn)
}
