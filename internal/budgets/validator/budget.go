package validator

import (
	"fmt"
	"strings"

	"budgetly/pkg/logger"
	"budgetly/pkg/model"
	"budgetly/pkg/validation"
)

type BudgetValidator struct {
	structs  *validation.StructValidator
	pipeline validation.Pipeline
	logger   *logger.Logger
}

func NewBudgetValidator(log *logger.Logger) *BudgetValidator {
	v := &BudgetValidator{
		structs:  validation.NewStructValidator(),
		pipeline: validation.Pipeline{ValidateAutoBudget},
		logger:   log,
	}

	log.Info("Budget validator initialized successfully")
	return v
}

// Validate runs the single-field rules on b and the cross-field pipeline on
// the parsed field map. Both sets of errors are returned together.
func (v *BudgetValidator) Validate(b *model.Budget, data map[string]any) (validation.Errors, error) {
	errs := v.pipeline.Run(data)

	structErrs, err := v.structs.Struct(b)
	if err != nil {
		return nil, fmt.Errorf("failed to validate budget: %w", err)
	}

	// cross-field rules already cover the auto-budget block they own
	for _, fe := range structErrs.MapFields(formField) {
		if errs.Has(fe.Field) {
			continue
		}
		errs = append(errs, fe)
	}

	if len(errs) > 0 {
		v.logger.Debug("Budget validation failed", "fields", errs.Fields())
	}
	return errs, nil
}

// formField maps nested struct paths to the flat form key, e.g.
// "auto_budget.period" to "auto_budget_period".
func formField(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}
