package mealplanner_test

import (
	"context"
	"testing"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"

	"mealplanner"
	"mealplanner/tools/storage"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name string
		data string
		want mealplanner.UserHealthProfile
	}{
		{
			name: "defaults",
			data: `{}`,
			want: mealplanner.UserHealthProfile{
				DietType:           "balanced",
				DailyCalorieTarget: 2200,
				ProteinTargetG:     100,
				CarbTargetG:        230,
				FatTargetG:         70,
				MealsPerDay:        3,
				Allergies:          []string{},
				Dislikes:           []string{},
				HealthNotes:        []string{},
			},
		},
		{
			name: "explicit values and normalized lists",
			data: `{
				"diet_type": "keto",
				"daily_calorie_target": 1800,
				"protein_target_g": 120,
				"carb_target_g": 40,
				"fat_target_g": 130,
				"meals_per_day": 2,
				"allergies": [" Peanut", "peanut", ""],
				"dislikes": ["Mushroom"],
				"health_notes": ["LOW_CARB"]
			}`,
			want: mealplanner.UserHealthProfile{
				DietType:           "keto",
				DailyCalorieTarget: 1800,
				ProteinTargetG:     120,
				CarbTargetG:        40,
				FatTargetG:         130,
				MealsPerDay:        2,
				Allergies:          []string{"peanut"},
				Dislikes:           []string{"mushroom"},
				HealthNotes:        []string{"low_carb"},
			},
		},
		{
			name: "null targets take defaults",
			data: `{"daily_calorie_target": null, "meals_per_day": 1}`,
			want: mealplanner.UserHealthProfile{
				DietType:           "balanced",
				DailyCalorieTarget: 2200,
				ProteinTargetG:     100,
				CarbTargetG:        230,
				FatTargetG:         70,
				MealsPerDay:        1,
				Allergies:          []string{},
				Dislikes:           []string{},
				HealthNotes:        []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mealplanner.ParseProfile([]byte(tt.data))
			must.NoError(t, err)
			should.Equal(t, tt.want, got)
		})
	}
}

func TestParseProfile_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: `{"diet_type":`},
		{name: "zero meals", data: `{"meals_per_day": 0}`},
		{name: "negative meals", data: `{"meals_per_day": -1}`},
		{name: "zero calorie target", data: `{"daily_calorie_target": 0}`},
		{name: "negative fat target", data: `{"fat_target_g": -5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mealplanner.ParseProfile([]byte(tt.data))
			should.ErrorIs(t, err, mealplanner.ErrInvalidProfile)
		})
	}
}

func TestUserHealthProfile_HasNote(t *testing.T) {
	p := mealplanner.UserHealthProfile{HealthNotes: []string{"low_sodium"}}
	should.True(t, p.HasNote("LOW_SODIUM"))
	should.False(t, p.HasNote("low_sugar"))
}

func TestStateProfileProvider(t *testing.T) {
	ctx := context.Background()

	p, err := mealplanner.NewStateProfileProvider(storage.NewTestState([]byte(`{"meals_per_day": 4}`))).Profile(ctx)
	must.NoError(t, err)
	should.Equal(t, 4, p.MealsPerDay)

	_, err = mealplanner.NewStateProfileProvider(storage.NewTestStateWithError()).Profile(ctx)
	should.ErrorIs(t, err, storage.ErrNotFound)
}
