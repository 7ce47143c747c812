package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngredient(t *testing.T) {
	tests := []struct {
		name    string
		ingName string
		qty     float64
		unit    string
		want    Ingredient
		errorIs error
	}{
		{
			name:    "grams",
			ingName: "rice",
			qty:     150,
			unit:    "g",
			want:    Ingredient{Name: "rice", Quantity: 150, Unit: UnitGram},
		},
		{
			name:    "kilograms convert to grams",
			ingName: "potato",
			qty:     0.5,
			unit:    "kg",
			want:    Ingredient{Name: "potato", Quantity: 500, Unit: UnitGram},
		},
		{
			name:    "liters convert to milliliters",
			ingName: "milk",
			qty:     1,
			unit:    "L",
			want:    Ingredient{Name: "milk", Quantity: 1000, Unit: UnitMilliliter},
		},
		{
			name:    "empty unit is a count",
			ingName: "egg",
			qty:     2,
			want:    Ingredient{Name: "egg", Quantity: 2, Unit: UnitPiece},
		},
		{
			name:    "zero quantity",
			ingName: "egg",
			qty:     0,
			unit:    "piece",
			errorIs: ErrInvalidIngredient,
		},
		{
			name:    "negative quantity",
			ingName: "egg",
			qty:     -3,
			unit:    "piece",
			errorIs: ErrInvalidIngredient,
		},
		{
			name:    "NaN quantity",
			ingName: "rice",
			qty:     math.NaN(),
			unit:    "g",
			errorIs: ErrInvalidIngredient,
		},
		{
			name:    "infinite quantity",
			ingName: "rice",
			qty:     math.Inf(1),
			unit:    "g",
			errorIs: ErrInvalidIngredient,
		},
		{
			name:    "empty name",
			ingName: "  ",
			qty:     1,
			unit:    "g",
			errorIs: ErrInvalidIngredient,
		},
		{
			name:    "unknown unit",
			ingName: "flour",
			qty:     1,
			unit:    "bushel",
			errorIs: ErrUnknownUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewIngredient(tt.ingName, tt.qty, tt.unit)
			if tt.errorIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errorIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIngredient_Validate(t *testing.T) {
	assert.NoError(t, Ingredient{Name: "egg", Quantity: 1, Unit: UnitPiece}.Validate())
	assert.ErrorIs(t, Ingredient{Name: "egg", Quantity: 0, Unit: UnitPiece}.Validate(), ErrInvalidIngredient)
	assert.ErrorIs(t, Ingredient{Name: "egg", Quantity: math.NaN(), Unit: UnitPiece}.Validate(), ErrInvalidIngredient)
	assert.ErrorIs(t, Ingredient{Name: "egg", Quantity: math.Inf(-1), Unit: UnitPiece}.Validate(), ErrInvalidIngredient)
	assert.ErrorIs(t, Ingredient{Name: "egg", Quantity: 1, Unit: "cup"}.Validate(), ErrUnknownUnit)
}

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		line    string
		want    Ingredient
		wantOK  bool
		errorIs error
	}{
		{line: "200 g chicken breast", want: Ingredient{Name: "chicken breast", Quantity: 200, Unit: UnitGram}, wantOK: true},
		{line: "200g paneer, cubed", want: Ingredient{Name: "paneer, cubed", Quantity: 200, Unit: UnitGram}, wantOK: true},
		{line: "2 eggs", want: Ingredient{Name: "eggs", Quantity: 2, Unit: UnitPiece}, wantOK: true},
		{line: "3 cloves garlic, minced", want: Ingredient{Name: "garlic, minced", Quantity: 3, Unit: UnitPiece}, wantOK: true},
		{line: "1/2 l milk", want: Ingredient{Name: "milk", Quantity: 500, Unit: UnitMilliliter}, wantOK: true},
		{line: "1 1/2 kg potatoes", want: Ingredient{Name: "potatoes", Quantity: 1500, Unit: UnitGram}, wantOK: true},
		{line: "salt to taste", wantOK: false},
		{line: "", wantOK: false},
		{line: "nan bread", wantOK: false},
		{line: "NaN g rice", wantOK: false},
		{line: "inf g rice", wantOK: false},
		{line: "infinity eggs", wantOK: false},
		{line: "0 g sugar", errorIs: ErrInvalidIngredient},
		{line: "-2 eggs", errorIs: ErrInvalidIngredient},
		{line: "0 cup milk", errorIs: ErrInvalidIngredient},
		{line: "-100g rice", errorIs: ErrInvalidIngredient},
		{line: "1/0 cup milk", errorIs: ErrInvalidIngredient},
		{line: "2", errorIs: ErrInvalidIngredient},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok, err := ParseIngredientLine(tt.line)
			if tt.errorIs != nil {
				assert.ErrorIs(t, err, tt.errorIs)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
