package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacroBundle_Add(t *testing.T) {
	tests := []struct {
		name string
		a, b MacroBundle
		want MacroBundle
	}{
		{
			name: "zero values",
			want: MacroBundle{},
		},
		{
			name: "field-wise sum",
			a:    MacroBundle{Calories: 800, ProteinG: 40, CarbsG: 60, FatG: 20},
			b:    MacroBundle{Calories: 900, ProteinG: 45, CarbsG: 70, FatG: 25},
			want: MacroBundle{Calories: 1700, ProteinG: 85, CarbsG: 130, FatG: 45},
		},
		{
			name: "no cross-field leakage",
			a:    MacroBundle{Calories: 1},
			b:    MacroBundle{FatG: 2},
			want: MacroBundle{Calories: 1, FatG: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Add(tt.b))
			assert.Equal(t, tt.a.Add(tt.b), tt.b.Add(tt.a), "addition must commute")
		})
	}
}

func TestMacroBundle_Scale(t *testing.T) {
	b := MacroBundle{Calories: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6}

	got := b.Scale(2)

	assert.Equal(t, MacroBundle{Calories: 330, ProteinG: 62, CarbsG: 0, FatG: 7.2}, got)
	assert.Equal(t, 165.0, b.Calories, "receiver must be left untouched")
}

func TestMacroBundle_Validate(t *testing.T) {
	assert.NoError(t, MacroBundle{}.Validate())
	assert.Error(t, MacroBundle{ProteinG: -1}.Validate())
}

func TestAccumulator(t *testing.T) {
	var acc Accumulator
	acc.Add(MacroBundle{Calories: 100, ProteinG: 1})
	acc.Add(MacroBundle{Calories: 50, CarbsG: 5})

	assert.Equal(t, MacroBundle{Calories: 150, ProteinG: 1, CarbsG: 5}, acc.Total())
	assert.Equal(t, 2, acc.Count())
	assert.Equal(t, acc.Total(), Sum(MacroBundle{Calories: 100, ProteinG: 1}, MacroBundle{Calories: 50, CarbsG: 5}))
}
