// Package pipeline runs one planning run: profile in, plan, health report,
// shopping list, cost estimate and budget status out.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"mealplanner"
	"mealplanner/health"
	"mealplanner/history"
	"mealplanner/nutrition"
	"mealplanner/planner"
	"mealplanner/shopping"
)

// Result is everything one run produces.
type Result struct {
	RunID     string                        `json:"run_id"`
	CreatedAt time.Time                     `json:"created_at"`
	Strategy  string                        `json:"strategy"`
	Profile   mealplanner.UserHealthProfile `json:"profile"`
	Plan      mealplanner.WeekPlan          `json:"plan"`
	Report    health.WeeklyReport           `json:"report"`
	Shopping  shopping.List                 `json:"shopping_list"`
	Estimate  *shopping.Estimate            `json:"estimate,omitempty"`
	Budget    shopping.BudgetStatus         `json:"budget"`
}

// Recorder persists finished runs.
type Recorder interface {
	Save(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Runner is satisfied by Pipeline and Instrumented.
type Runner interface {
	Run(ctx context.Context, profile mealplanner.UserHealthProfile) (Result, error)
}

// Pipeline holds the collaborators of a run. The meal pool is fixed at construction.
type Pipeline struct {
	builder  *planner.Builder
	strategy planner.SelectionStrategy
	pricing  shopping.PricingProvider
	budget   *float64
	currency string
	logger   mealplanner.RunLogger
	recorder Recorder
	now      func() time.Time
}

type Option func(*Pipeline)

func WithStrategy(s planner.SelectionStrategy) Option {
	return func(p *Pipeline) { p.strategy = s }
}

// WithPricing prices the shopping list with provider.
func WithPricing(provider shopping.PricingProvider) Option {
	return func(p *Pipeline) { p.pricing = provider }
}

// WithBudget sets the weekly budget the estimate is compared against.
func WithBudget(amount float64, currency string) Option {
	return func(p *Pipeline) {
		p.budget = &amount
		p.currency = currency
	}
}

func WithRunLogger(l mealplanner.RunLogger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// New returns a Pipeline planning from pool, which must already be macro-computed.
func New(pool []nutrition.Meal, opts ...Option) *Pipeline {
	p := &Pipeline{
		strategy: planner.StaticStrategy{},
		currency: shopping.DefaultCurrency,
		logger:   mealplanner.NewNoOpRunLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.builder = planner.NewBuilder(pool, planner.WithStrategy(p.strategy))
	return p
}

// Strategy returns the name of the selection strategy in use.
func (p *Pipeline) Strategy() string { return p.builder.Strategy().Name() }

// Run plans and scores a week for profile. Validation errors from planning are
// returned unchanged; pricing and history failures are wrapped.
func (p *Pipeline) Run(ctx context.Context, profile mealplanner.UserHealthProfile) (Result, error) {
	ctx, span := otel.Tracer(mealplanner.TracerNamePipeline).Start(ctx, "Pipeline.Run")
	defer span.End()

	created := p.now().UTC()
	res := Result{
		RunID:     ulid.MustNew(ulid.Timestamp(created), ulid.DefaultEntropy()).String(),
		CreatedAt: created,
		Strategy:  p.Strategy(),
		Profile:   profile,
	}
	span.SetAttributes(attribute.String("run.id", res.RunID), attribute.String("plan.strategy", res.Strategy))

	slog.Info("PIPELINE: Starting run",
		"run_id", res.RunID,
		"diet_type", profile.DietType,
		"meals_per_day", profile.MealsPerDay,
		"strategy", res.Strategy)

	err := p.stage(ctx, res.RunID, "plan", func() (map[string]any, error) {
		plan, err := p.builder.GenerateWeekPlan(profile)
		if err != nil {
			return map[string]any{"pool_size": p.builder.PoolSize()}, err
		}
		res.Plan = plan
		return map[string]any{"days": len(plan.Days), "meals": plan.MealCount()}, nil
	})
	if err != nil {
		span.SetStatus(codes.Error, "planning failed")
		span.RecordError(err)
		slog.Error("PIPELINE: Planning failed", "run_id", res.RunID, "error", err)
		return Result{}, err
	}

	_ = p.stage(ctx, res.RunID, "score", func() (map[string]any, error) {
		res.Report = health.ScoreWeek(res.Plan, profile)
		return map[string]any{"average_score": res.Report.AverageScore, "global_flags": res.Report.GlobalFlags}, nil
	})

	_ = p.stage(ctx, res.RunID, "shopping", func() (map[string]any, error) {
		res.Shopping = shopping.BuildList(res.Plan)
		return map[string]any{"items": len(res.Shopping.Items)}, nil
	})

	total := 0.0
	if p.pricing != nil {
		err := p.stage(ctx, res.RunID, "pricing", func() (map[string]any, error) {
			est, err := p.pricing.Estimate(ctx, res.Shopping)
			if err != nil {
				return nil, err
			}
			res.Estimate = &est
			total = est.Total
			return map[string]any{"total": est.Total, "currency": est.Currency, "unpriced": len(est.Unpriced)}, nil
		})
		if err != nil {
			span.SetStatus(codes.Error, "pricing failed")
			span.RecordError(err)
			return Result{}, fmt.Errorf("estimate shopping cost: %w", err)
		}
	}

	currency := p.currency
	if res.Estimate != nil && res.Estimate.Currency != "" {
		currency = res.Estimate.Currency
	}
	budget := p.budget
	if res.Estimate == nil {
		budget = nil
	}
	res.Budget = shopping.EvaluateBudget(total, budget, currency)

	if p.recorder != nil {
		err := p.stage(ctx, res.RunID, "history", func() (map[string]any, error) {
			payload, err := json.Marshal(res)
			if err != nil {
				return nil, err
			}
			_, err = p.recorder.Save(ctx, history.Entry{
				ID:           res.RunID,
				CreatedAt:    res.CreatedAt,
				Label:        profile.DietType,
				Strategy:     res.Strategy,
				AverageScore: res.Report.AverageScore,
				GlobalFlags:  res.Report.GlobalFlags,
				Payload:      payload,
			})
			return nil, err
		})
		if err != nil {
			span.SetStatus(codes.Error, "history failed")
			span.RecordError(err)
			return Result{}, fmt.Errorf("record run: %w", err)
		}
	}

	span.SetAttributes(attribute.Float64("report.average_score", res.Report.AverageScore))
	slog.Info("PIPELINE: Run complete",
		"run_id", res.RunID,
		"average_score", res.Report.AverageScore,
		"global_flags", res.Report.GlobalFlags,
		"shopping_items", len(res.Shopping.Items))

	return res, nil
}

// stage runs fn inside a child span and records it with the run logger.
func (p *Pipeline) stage(ctx context.Context, runID, name string, fn func() (map[string]any, error)) error {
	_, span := otel.Tracer(mealplanner.TracerNamePipeline).Start(ctx, "Pipeline."+name)
	defer span.End()

	start := time.Now()
	details, err := fn()
	entry := mealplanner.StageLog{
		RunID:     runID,
		Stage:     name,
		Timestamp: start,
		Duration:  time.Since(start),
		Details:   details,
	}
	if err != nil {
		entry.Error = err.Error()
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	if logErr := p.logger.LogStage(entry); logErr != nil {
		slog.Warn("PIPELINE: Failed to log stage", "stage", name, "error", logErr)
	}
	return err
}
