package pipeline_test

import (
	"context"
	"testing"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mealplanner"
	"mealplanner/pipeline"
)

func metricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	must.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestInstrumented_Run(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	runner := pipeline.NewInstrumented(
		pipeline.New(scenarioPool()),
		tp.Tracer(mealplanner.TracerNamePipeline),
		mp.Meter(mealplanner.MeterNamePipeline),
	)

	res, err := runner.Run(context.Background(), scenarioProfile())
	must.NoError(t, err)
	should.Equal(t, 60.0, res.Report.AverageScore)

	metrics := metricNames(t, reader)
	should.Contains(t, metrics, "planning_runs_total")
	should.Contains(t, metrics, "planning_run_duration_seconds")
	should.Contains(t, metrics, "weekly_average_score")
	should.Contains(t, metrics, "health_flags_total")
	should.NotContains(t, metrics, "planning_runs_failed_total")

	gauge, ok := metrics["weekly_average_score"].Data.(metricdata.Gauge[float64])
	must.True(t, ok)
	must.Len(t, gauge.DataPoints, 1)
	should.Equal(t, 60.0, gauge.DataPoints[0].Value)

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	should.Contains(t, names, "InstrumentedPipeline.Run")
}

func TestInstrumented_RunFailure(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	tp := sdktrace.NewTracerProvider()

	profile := scenarioProfile()
	profile.MealsPerDay = 5

	var runner pipeline.Runner = pipeline.NewInstrumented(pipeline.New(scenarioPool()), tp.Tracer("test"), mp.Meter("test"))
	_, err := runner.Run(context.Background(), profile)
	must.Error(t, err)

	metrics := metricNames(t, reader)
	failed, ok := metrics["planning_runs_failed_total"].Data.(metricdata.Sum[int64])
	must.True(t, ok)
	must.Len(t, failed.DataPoints, 1)
	should.Equal(t, int64(1), failed.DataPoints[0].Value)
}
