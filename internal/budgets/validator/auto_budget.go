package validator

import (
	"encoding/json"
	"strings"

	"budgetly/pkg/validation"

	"github.com/shopspring/decimal"
)

const (
	KeyAutoBudgetType         = "auto_budget_type"
	KeyAutoBudgetAmount       = "auto_budget_amount"
	KeyAutoBudgetPeriod       = "auto_budget_period"
	KeyAutoBudgetCurrencyID   = "auto_budget_currency_id"
	KeyAutoBudgetCurrencyCode = "auto_budget_currency_code"
)

const (
	MsgAmountRequired   = "auto-budget amount is required"
	MsgAmountInvalid    = "auto-budget amount must be a number"
	MsgAmountPositive   = "auto-budget amount must be positive"
	MsgPeriodRequired   = "auto-budget period is required"
	MsgCurrencyRequired = "auto-budget currency id or code is required"
)

// ValidateAutoBudget checks the auto-budget fields of data together. Nothing is
// checked when the type is the "none" sentinel (0, "none" or empty). Otherwise
// amount, period and currency are checked independently and every violation
// is reported.
func ValidateAutoBudget(data map[string]any) validation.Errors {
	if IsNoAutoBudget(data[KeyAutoBudgetType]) {
		return nil
	}

	var errs validation.Errors

	amount := strings.TrimSpace(text(data[KeyAutoBudgetAmount]))
	switch d, err := decimal.NewFromString(amount); {
	case amount == "":
		errs = errs.Add(KeyAutoBudgetAmount, MsgAmountRequired)
	case err != nil:
		errs = errs.Add(KeyAutoBudgetAmount, MsgAmountInvalid)
	case !d.IsPositive():
		errs = errs.Add(KeyAutoBudgetAmount, MsgAmountPositive)
	}

	if strings.TrimSpace(text(data[KeyAutoBudgetPeriod])) == "" {
		errs = errs.Add(KeyAutoBudgetPeriod, MsgPeriodRequired)
	}

	currencyID := strings.TrimSpace(text(data[KeyAutoBudgetCurrencyID]))
	currencyCode := strings.TrimSpace(text(data[KeyAutoBudgetCurrencyCode]))
	if currencyID == "" && currencyCode == "" {
		errs = errs.Add(KeyAutoBudgetCurrencyID, MsgCurrencyRequired)
	}

	return errs
}

// IsNoAutoBudget reports the "none" sentinel. Numeric-looking values are
// compared as integers, so "0", "00" and 0 all mean none.
func IsNoAutoBudget(raw any) bool {
	if n, ok := AutoBudgetType(raw); ok {
		return n == 0
	}
	s := strings.TrimSpace(text(raw))
	return s == "" || s == "none"
}

// AutoBudgetType coerces raw to an integer when it looks numeric.
func AutoBudgetType(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text(raw)))
	if err != nil {
		return 0, false
	}
	return int(d.IntPart()), true
}

func text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return string(v)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case int:
		return decimal.NewFromInt(int64(v)).String()
	case int64:
		return decimal.NewFromInt(v).String()
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return ""
	}
}
