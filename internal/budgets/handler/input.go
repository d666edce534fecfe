package handler

import (
	"strings"

	"budgetly/internal/budgets/validator"
	"budgetly/pkg/model"
	"budgetly/pkg/request"
)

var autoBudgetTypeNames = map[string]int{
	"reset":    model.AutoBudgetReset,
	"rollover": model.AutoBudgetRollover,
	"adjusted": model.AutoBudgetAdjusted,
}

// parseBudget reads a full budget from a creation request. An absent active
// flag means active.
func parseBudget(n *request.Normalizer, in request.Input) (*model.Budget, map[string]any) {
	active := true
	if in.Has("active") {
		active = n.Boolean(in, "active")
	}

	b := &model.Budget{
		Name:       n.CleanString(in, "name"),
		Active:     active,
		Notes:      n.NullableCleanStringKeepNewlines(in, "notes"),
		Order:      n.Int(in, "order"),
		AutoBudget: parseAutoBudget(n, in),
	}
	return b, autoBudgetData(n, in)
}

// parseBudgetUpdate keeps absent fields out of the update. The auto-budget
// block is only touched, and only validated, when its type was sent.
func parseBudgetUpdate(n *request.Normalizer, in request.Input) (model.BudgetUpdate, map[string]any) {
	var u model.BudgetUpdate
	if in.Has("name") {
		u.Name = model.Replace(n.CleanString(in, "name"))
	}
	if in.Has("active") {
		u.Active = model.Replace(n.Boolean(in, "active"))
	}
	if in.Has("notes") {
		u.Notes = model.ReplaceOrClear(n.NullableCleanStringKeepNewlines(in, "notes"))
	}
	if in.Has("order") {
		u.Order = model.Replace(n.Int(in, "order"))
	}

	data := map[string]any{}
	if in.Has(validator.KeyAutoBudgetType) {
		u.AutoBudget = model.ReplaceOrClear(parseAutoBudget(n, in))
		data = autoBudgetData(n, in)
	}
	return u, data
}

func parseAutoBudget(n *request.Normalizer, in request.Input) *model.AutoBudget {
	raw := in.Get(validator.KeyAutoBudgetType).Raw()
	if validator.IsNoAutoBudget(raw) {
		return nil
	}

	typ, ok := validator.AutoBudgetType(raw)
	if !ok {
		name := strings.ToLower(n.CleanString(in, validator.KeyAutoBudgetType))
		if typ, ok = autoBudgetTypeNames[name]; !ok {
			typ = -1
		}
	}

	return &model.AutoBudget{
		Type:         typ,
		Amount:       n.CleanString(in, validator.KeyAutoBudgetAmount),
		Period:       n.CleanString(in, validator.KeyAutoBudgetPeriod),
		CurrencyID:   n.CleanString(in, validator.KeyAutoBudgetCurrencyID),
		CurrencyCode: strings.ToUpper(n.CleanString(in, validator.KeyAutoBudgetCurrencyCode)),
	}
}

// autoBudgetData is the field map the cross-field rules run on. The type is
// passed raw so the validator can apply its own coercion.
func autoBudgetData(n *request.Normalizer, in request.Input) map[string]any {
	return map[string]any{
		validator.KeyAutoBudgetType:         in.Get(validator.KeyAutoBudgetType).Raw(),
		validator.KeyAutoBudgetAmount:       n.CleanString(in, validator.KeyAutoBudgetAmount),
		validator.KeyAutoBudgetPeriod:       n.CleanString(in, validator.KeyAutoBudgetPeriod),
		validator.KeyAutoBudgetCurrencyID:   n.CleanString(in, validator.KeyAutoBudgetCurrencyID),
		validator.KeyAutoBudgetCurrencyCode: n.CleanString(in, validator.KeyAutoBudgetCurrencyCode),
	}
}
