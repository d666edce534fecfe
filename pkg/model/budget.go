package model

import "time"

// Auto-budget types. AutoBudgetNone means no auto-budget is configured.
const (
	AutoBudgetNone     = 0
	AutoBudgetReset    = 1
	AutoBudgetRollover = 2
	AutoBudgetAdjusted = 3
)

type Budget struct {
	ID         string      `json:"id" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name       string      `json:"name" bson:"name" validate:"required,min=1,max=255"`
	Active     bool        `json:"active" bson:"active"`
	Notes      *string     `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=32768"`
	Order      int         `json:"order" bson:"order" validate:"min=0"`
	AutoBudget *AutoBudget `json:"auto_budget,omitempty" bson:"auto_budget,omitempty"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}

// AutoBudget is stored as submitted once the cross-field rules accept it.
// Amount stays a decimal string so no precision is lost.
type AutoBudget struct {
	Type         int    `json:"type" bson:"type" validate:"oneof=1 2 3"`
	Amount       string `json:"amount" bson:"amount"`
	Period       string `json:"period" bson:"period" validate:"omitempty,oneof=daily weekly monthly quarterly half_year yearly"`
	CurrencyID   string `json:"currency_id,omitempty" bson:"currency_id,omitempty"`
	CurrencyCode string `json:"currency_code,omitempty" bson:"currency_code,omitempty" validate:"omitempty,iso4217"`
}

// BudgetUpdate carries only the fields a request actually sent.
type BudgetUpdate struct {
	Name       Patch[string]
	Active     Patch[bool]
	Notes      Patch[string]
	Order      Patch[int]
	AutoBudget Patch[AutoBudget]
}

// Apply merges u into a copy of b. ID and CreatedAt are never touched.
func (u BudgetUpdate) Apply(b Budget) Budget {
	if u.Name.Set && u.Name.Value != nil {
		b.Name = *u.Name.Value
	}
	if u.Active.Set && u.Active.Value != nil {
		b.Active = *u.Active.Value
	}
	if u.Notes.Set {
		b.Notes = u.Notes.Value
	}
	if u.Order.Set && u.Order.Value != nil {
		b.Order = *u.Order.Value
	}
	if u.AutoBudget.Set {
		b.AutoBudget = u.AutoBudget.Value
	}
	return b
}
