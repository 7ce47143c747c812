package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"

	"mealplanner"
	"mealplanner/catalog"
	"mealplanner/history"
	"mealplanner/nutrition"
	"mealplanner/pipeline"
	"mealplanner/planner"
	"mealplanner/shopping"
	"mealplanner/tools/storage"
)

var (
	cfg mealplanner.PlannerConfig

	catalogPath   string
	profilePath   string
	pricesPath    string
	nutrientsPath string
	strategyName  string
	historyDBPath string
	budget        float64
	withOtel      bool
)

var rootCmd = &cobra.Command{
	Use:   "weekplan",
	Short: "Plan, score and price a week of meals",
	Long:  "Builds a seven-day meal plan from a recipe catalog, scores every day against a health profile and estimates the weekly shopping cost.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := envdecode.Decode(&cfg); err != nil {
			return fmt.Errorf("SETUP: failed to decode planner config: %w", err)
		}
		applyFlags(cmd)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&catalogPath, "catalog", "", "Recipe catalog JSON (default: $ARTIFACTS_CATALOG_PATH)")
	f.StringVar(&profilePath, "profile", "", "Health profile JSON (default: $ARTIFACTS_PROFILE_PATH)")
	f.StringVar(&pricesPath, "prices", "", "Price list JSON (default: $ARTIFACTS_PRICES_PATH)")
	f.StringVar(&nutrientsPath, "nutrients", "", "Nutrient table JSON overlaid on the built-in table")
	f.StringVarP(&strategyName, "strategy", "s", "", "Meal selection strategy: static or rotation")
	f.StringVar(&historyDBPath, "history-db", "", "SQLite database recording finished runs (default: $HISTORY_DB_PATH)")
	f.Float64Var(&budget, "budget", 0, "Weekly budget (default: $WEEKLY_BUDGET)")
	f.BoolVar(&withOtel, "otel", false, "Export traces and metrics over OTLP")
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("catalog") {
		cfg.ArtifactsCatalogPath = catalogPath
	}
	if f.Changed("profile") {
		cfg.ArtifactsProfilePath = profilePath
	}
	if f.Changed("prices") {
		cfg.ArtifactsPricesPath = pricesPath
	}
	if f.Changed("nutrients") {
		cfg.ArtifactsNutrientsPath = nutrientsPath
	}
	if f.Changed("strategy") {
		cfg.SelectionStrategy = strategyName
	}
	if f.Changed("history-db") {
		cfg.HistoryDBPath = historyDBPath
	}
	if f.Changed("budget") {
		cfg.WeeklyBudget = budget
	}
}

// environment is everything a command needs to run the pipeline.
type environment struct {
	catalog storage.CatalogState
	source  nutrition.NutrientSource
	runner  pipeline.Runner
	cleanup func() error
}

// setup loads the catalog and wires a pipeline from cfg.
func setup(ctx context.Context) (*environment, error) {
	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	var nutrients storage.NutrientState
	if cfg.ArtifactsNutrientsPath != "" {
		nutrients = storage.NewFileState(cfg.ArtifactsNutrientsPath)
	}
	src, err := catalog.LoadSource(ctx, nutrients)
	if err != nil {
		return nil, err
	}

	catalogState := storage.NewFileState(cfg.ArtifactsCatalogPath)
	pool, err := catalog.Load(ctx, catalogState, src)
	if err != nil {
		return nil, err
	}
	slog.Info("SETUP: Catalog loaded", "path", cfg.ArtifactsCatalogPath, "meals", len(pool))

	strategy, err := planner.StrategyByName(cfg.SelectionStrategy)
	if err != nil {
		return nil, err
	}
	opts := []pipeline.Option{pipeline.WithStrategy(strategy)}

	prices, err := loadPrices(ctx, cfg.ArtifactsPricesPath)
	if err != nil {
		return nil, err
	}
	if prices != nil {
		opts = append(opts, pipeline.WithPricing(prices))
		if cfg.WeeklyBudget > 0 {
			opts = append(opts, pipeline.WithBudget(cfg.WeeklyBudget, cfg.Currency))
		}
	}

	if cfg.HistoryDBPath != "" {
		store, err := history.NewSQLiteStore(cfg.HistoryDBPath)
		if err != nil {
			return nil, err
		}
		closers = append(closers, store.Close)
		opts = append(opts, pipeline.WithRecorder(store))
	}

	logger, closeLog, err := newRunLogger(cfg.RunLogDir, strategy.Name())
	if err != nil {
		_ = cleanup()
		return nil, err
	}
	closers = append(closers, closeLog)
	opts = append(opts, pipeline.WithRunLogger(logger))

	p := pipeline.New(pool, opts...)
	var runner pipeline.Runner = p

	if withOtel {
		tracerProvider, meterProvider, otelShutdown, err := mealplanner.InitOtel(ctx)
		if err != nil {
			_ = cleanup()
			return nil, fmt.Errorf("initialize OpenTelemetry: %w", err)
		}
		closers = append(closers, func() error { return otelShutdown(context.Background()) })
		runner = pipeline.NewInstrumented(p,
			tracerProvider.Tracer(mealplanner.TracerNamePipeline),
			meterProvider.Meter(mealplanner.MeterNamePipeline))
	}

	return &environment{catalog: catalogState, source: src, runner: runner, cleanup: cleanup}, nil
}

// loadPrices returns nil when the price list does not exist.
func loadPrices(ctx context.Context, path string) (*shopping.PriceTable, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Warn("SETUP: No price list, skipping cost estimate", "path", path)
		return nil, nil
	}
	b, err := storage.NewFileState(path).Load(ctx)
	if err != nil {
		return nil, err
	}
	return shopping.LoadPriceTable(b)
}

func loadProfile(ctx context.Context) (mealplanner.UserHealthProfile, error) {
	return mealplanner.NewStateProfileProvider(storage.NewFileState(cfg.ArtifactsProfilePath)).Profile(ctx)
}

func newRunLogger(dir, strategy string) (mealplanner.RunLogger, func() error, error) {
	if dir == "" {
		return mealplanner.NewNoOpRunLogger(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFilePath := mealplanner.NewRunLogFilePath(dir, strategy)
	logFile, err := os.OpenFile(filepath.Clean(logFilePath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := mealplanner.NewFileRunLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
