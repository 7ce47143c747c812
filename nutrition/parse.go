package nutrition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	gluedQuantity = regexp.MustCompile(`^([-+]?\d+(?:\.\d+)?)([a-zA-Z]+)$`)
	decimalToken  = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?$`)
	fractionToken = regexp.MustCompile(`^([-+]?\d+)/(\d+)$`)
)

// ParseIngredientLine reads a free-text line such as "1 1/2 cup milk, warm" or
// "200g chicken breast". A missing or unrecognized unit makes the line a count.
// Lines that do not start with a numeric quantity return ok=false and no error;
// a line that has a quantity but cannot form a valid Ingredient returns the error.
func ParseIngredientLine(line string) (ing Ingredient, ok bool, err error) {
	tokens := strings.Fields(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return Ingredient{}, false, nil
	}

	var qty float64
	var unit string
	if m := gluedQuantity.FindStringSubmatch(tokens[0]); m != nil {
		q, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Ingredient{}, false, nil
		}
		qty, unit = q, m[2]
		tokens = tokens[1:]
	} else {
		q, found, err := parseQuantity(tokens[0])
		if err != nil {
			return Ingredient{}, false, fmt.Errorf("%w: %q: %w", ErrInvalidIngredient, line, err)
		}
		if !found {
			return Ingredient{}, false, nil
		}
		qty = q
		tokens = tokens[1:]
		if len(tokens) > 0 && fractionToken.MatchString(tokens[0]) {
			frac, _, err := parseFraction(tokens[0])
			if err != nil {
				return Ingredient{}, false, fmt.Errorf("%w: %q: %w", ErrInvalidIngredient, line, err)
			}
			qty += frac
			tokens = tokens[1:]
		}
	}

	if unit == "" && len(tokens) > 0 {
		if _, _, err := ParseUnit(tokens[0]); err == nil {
			unit = tokens[0]
			tokens = tokens[1:]
		}
	}
	if _, _, err := ParseUnit(unit); err != nil {
		unit = string(UnitPiece)
	}

	name := strings.TrimSpace(strings.Join(tokens, " "))
	ing, err = NewIngredient(name, qty, unit)
	if err != nil {
		return Ingredient{}, false, err
	}
	return ing, true, nil
}

// parseQuantity accepts decimal and a/b tokens only; found is false for anything else.
func parseQuantity(tok string) (qty float64, found bool, err error) {
	if fractionToken.MatchString(tok) {
		return parseFraction(tok)
	}
	if !decimalToken.MatchString(tok) {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, true, err
	}
	return f, true, nil
}

func parseFraction(tok string) (float64, bool, error) {
	m := fractionToken.FindStringSubmatch(tok)
	if m == nil {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, true, err
	}
	d, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, true, err
	}
	if d == 0 {
		return 0, true, fmt.Errorf("zero denominator in %q", tok)
	}
	return n / d, true, nil
}
