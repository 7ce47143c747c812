package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"mealplanner"
)

// Instrumented wraps a Pipeline with run-level spans and metrics.
type Instrumented struct {
	inner  *Pipeline
	tracer trace.Tracer
	meter  metric.Meter
}

func NewInstrumented(p *Pipeline, tracer trace.Tracer, meter metric.Meter) *Instrumented {
	return &Instrumented{inner: p, tracer: tracer, meter: meter}
}

// Run executes the wrapped pipeline and records its outcome.
func (i *Instrumented) Run(ctx context.Context, profile mealplanner.UserHealthProfile) (Result, error) {
	ctx, span := i.tracer.Start(ctx, "InstrumentedPipeline.Run")
	defer span.End()

	strategy := attribute.String("strategy", i.inner.Strategy())
	span.SetAttributes(
		strategy,
		attribute.String("profile.diet_type", profile.DietType),
		attribute.Int("profile.meals_per_day", profile.MealsPerDay),
		attribute.Int("pool.size", i.inner.builder.PoolSize()),
	)

	runsCounter, _ := i.meter.Int64Counter("planning_runs_total",
		metric.WithDescription("Total number of planning runs started"))
	runsFailedCounter, _ := i.meter.Int64Counter("planning_runs_failed_total",
		metric.WithDescription("Total number of planning runs that failed"))
	flagsCounter, _ := i.meter.Int64Counter("health_flags_total",
		metric.WithDescription("Total number of days a health flag was raised"))
	runDurationHist, _ := i.meter.Float64Histogram("planning_run_duration_seconds",
		metric.WithDescription("Duration of a planning run in seconds"))
	averageScoreGauge, _ := i.meter.Float64Gauge("weekly_average_score",
		metric.WithDescription("Average daily health score of the latest weekly plan"))
	costGauge, _ := i.meter.Float64Gauge("shopping_estimated_cost",
		metric.WithDescription("Estimated shopping cost of the latest weekly plan"))

	runsCounter.Add(ctx, 1, metric.WithAttributes(strategy))

	start := time.Now()
	res, err := i.inner.Run(ctx, profile)
	runDurationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(strategy))
	if err != nil {
		runsFailedCounter.Add(ctx, 1, metric.WithAttributes(strategy))
		span.SetStatus(codes.Error, "planning run failed")
		span.RecordError(err)
		return Result{}, err
	}

	averageScoreGauge.Record(ctx, res.Report.AverageScore, metric.WithAttributes(strategy))
	for flag, days := range res.Report.FlagCounts() {
		flagsCounter.Add(ctx, int64(days), metric.WithAttributes(attribute.String("flag", flag)))
	}
	if res.Estimate != nil {
		costGauge.Record(ctx, res.Estimate.Total, metric.WithAttributes(attribute.String("currency", res.Estimate.Currency)))
	}

	span.SetAttributes(
		attribute.String("run.id", res.RunID),
		attribute.Float64("report.average_score", res.Report.AverageScore),
		attribute.StringSlice("report.global_flags", res.Report.GlobalFlags),
	)
	slog.Info("PIPELINE: Instrumented run recorded", "run_id", res.RunID, "duration", time.Since(start))

	return res, nil
}
