package mealplanner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mealplanner/nutrition"
	"mealplanner/tools/storage"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Defaults applied by ParseProfile when a field is missing.
const (
	DefaultCalorieTarget = 2200
	DefaultProteinTarget = 100
	DefaultCarbTarget    = 230
	DefaultFatTarget     = 70
	DefaultMealsPerDay   = 3
)

// UserHealthProfile is the structured profile a planning run works against.
// It is read-only once validated.
type UserHealthProfile struct {
	DietType           string   `json:"diet_type"`
	DailyCalorieTarget float64  `json:"daily_calorie_target"`
	ProteinTargetG     float64  `json:"protein_target_g"`
	CarbTargetG        float64  `json:"carb_target_g"`
	FatTargetG         float64  `json:"fat_target_g"`
	MealsPerDay        int      `json:"meals_per_day"`
	Allergies          []string `json:"allergies"`
	Dislikes           []string `json:"dislikes"`
	HealthNotes        []string `json:"health_notes"`
}

// Targets returns the daily targets as a bundle.
func (p UserHealthProfile) Targets() nutrition.MacroBundle {
	return nutrition.MacroBundle{
		Calories: p.DailyCalorieTarget,
		ProteinG: p.ProteinTargetG,
		CarbsG:   p.CarbTargetG,
		FatG:     p.FatTargetG,
	}
}

// HasNote reports whether the profile carries the given health note.
func (p UserHealthProfile) HasNote(note string) bool {
	for _, n := range p.HealthNotes {
		if strings.EqualFold(n, note) {
			return true
		}
	}
	return false
}

// Validate rejects profiles the planner cannot work with.
func (p UserHealthProfile) Validate() error {
	if p.MealsPerDay < 1 {
		return fmt.Errorf("%w: meals_per_day must be at least 1, got %d", ErrInvalidProfile, p.MealsPerDay)
	}
	targets := []struct {
		name  string
		value float64
	}{
		{"daily_calorie_target", p.DailyCalorieTarget},
		{"protein_target_g", p.ProteinTargetG},
		{"carb_target_g", p.CarbTargetG},
		{"fat_target_g", p.FatTargetG},
	}
	for _, t := range targets {
		if t.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidProfile, t.name, t.value)
		}
	}
	return nil
}

type rawProfile struct {
	DietType           string   `json:"diet_type"`
	DailyCalorieTarget *float64 `json:"daily_calorie_target"`
	ProteinTargetG     *float64 `json:"protein_target_g"`
	CarbTargetG        *float64 `json:"carb_target_g"`
	FatTargetG         *float64 `json:"fat_target_g"`
	MealsPerDay        *int     `json:"meals_per_day"`
	Allergies          []string `json:"allergies"`
	Dislikes           []string `json:"dislikes"`
	HealthNotes        []string `json:"health_notes"`
}

// ParseProfile decodes and validates a profile document. Null or missing targets
// take the package defaults; list fields are trimmed, lower-cased and deduplicated.
func ParseProfile(data []byte) (UserHealthProfile, error) {
	var raw rawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return UserHealthProfile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	p := UserHealthProfile{
		DietType:           strings.TrimSpace(raw.DietType),
		DailyCalorieTarget: orDefault(raw.DailyCalorieTarget, DefaultCalorieTarget),
		ProteinTargetG:     orDefault(raw.ProteinTargetG, DefaultProteinTarget),
		CarbTargetG:        orDefault(raw.CarbTargetG, DefaultCarbTarget),
		FatTargetG:         orDefault(raw.FatTargetG, DefaultFatTarget),
		MealsPerDay:        DefaultMealsPerDay,
		Allergies:          normalizeSet(raw.Allergies),
		Dislikes:           normalizeSet(raw.Dislikes),
		HealthNotes:        normalizeSet(raw.HealthNotes),
	}
	if raw.MealsPerDay != nil {
		p.MealsPerDay = *raw.MealsPerDay
	}
	if p.DietType == "" {
		p.DietType = "balanced"
	}

	if err := p.Validate(); err != nil {
		return UserHealthProfile{}, err
	}
	return p, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func normalizeSet(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ProfileProvider supplies the profile for a planning run.
type ProfileProvider interface {
	Profile(ctx context.Context) (UserHealthProfile, error)
}

// StateProfileProvider reads a profile document from a storage backend.
type StateProfileProvider struct {
	state storage.ProfileState
}

func NewStateProfileProvider(state storage.ProfileState) *StateProfileProvider {
	return &StateProfileProvider{state: state}
}

func (p *StateProfileProvider) Profile(ctx context.Context) (UserHealthProfile, error) {
	b, err := p.state.Load(ctx)
	if err != nil {
		return UserHealthProfile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(b)
}
