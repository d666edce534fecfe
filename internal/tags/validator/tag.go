package validator

import (
	"fmt"
	"strings"

	"budgetly/pkg/logger"
	"budgetly/pkg/model"
	"budgetly/pkg/validation"
)

type TagValidator struct {
	structs *validation.StructValidator
	logger  *logger.Logger
}

func NewTagValidator(log *logger.Logger) *TagValidator {
	v := &TagValidator{
		structs: validation.NewStructValidator(),
		logger:  log,
	}

	log.Info("Tag validator initialized successfully")
	return v
}

func (v *TagValidator) Validate(t *model.Tag) (validation.Errors, error) {
	errs, err := v.structs.Struct(t)
	if err != nil {
		return nil, fmt.Errorf("failed to validate tag: %w", err)
	}

	errs = errs.MapFields(formField)
	if len(errs) > 0 {
		v.logger.Debug("Tag validation failed", "fields", errs.Fields())
	}
	return errs, nil
}

// formField reports location errors under the bare coordinate keys the
// request used.
func formField(path string) string {
	return strings.TrimPrefix(path, "location.")
}
