package shopping

// BudgetStatus compares an estimated total with the user's budget. Every pointer
// field is nil when no budget was given.
type BudgetStatus struct {
	Currency          string   `json:"currency"`
	EstimatedTotal    float64  `json:"estimated_total_cost"`
	Budget            *float64 `json:"budget"`
	WithinBudget      *bool    `json:"within_budget"`
	AmountOverBudget  *float64 `json:"amount_over_budget"`
	AmountUnderBudget *float64 `json:"amount_under_budget"`
}

// EvaluateBudget reports whether total fits in budget, with the gap rounded to cents.
func EvaluateBudget(total float64, budget *float64, currency string) BudgetStatus {
	if currency == "" {
		currency = DefaultCurrency
	}
	status := BudgetStatus{Currency: currency, EstimatedTotal: round2(total)}
	if budget == nil {
		return status
	}

	b := *budget
	within := total <= b
	over, under := 0.0, 0.0
	if within {
		under = round2(b - total)
	} else {
		over = round2(total - b)
	}
	status.Budget = &b
	status.WithinBudget = &within
	status.AmountOverBudget = &over
	status.AmountUnderBudget = &under
	return status
}
