package request

import (
	"strings"
	"time"

	"budgetly/pkg/logger"

	"github.com/araddon/dateparse"
)

// Sanitizer neutralizes markup in user supplied text.
type Sanitizer interface {
	Clean(s string) string
	CleanKeepNewlines(s string) string
}

// ToArray returns a sequence as-is, splits a string on commas and maps null,
// missing and every other type to nil. A nil result means "no value", which
// is distinct from an empty slice.
func ToArray(v Value) []string {
	if !v.IsPresent() {
		return nil
	}
	switch raw := v.Raw().(type) {
	case []string:
		return raw
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			out = append(out, stringify(item))
		}
		return out
	case string:
		return strings.Split(raw, ",")
	default:
		return nil
	}
}

// ToBoolean is true only for "true", "yes", "1" and the integer 1. Every other
// input is false, including the boolean true.
func ToBoolean(raw any) bool {
	if v, ok := raw.(Value); ok {
		raw = v.Raw()
	}
	if s, ok := raw.(string); ok {
		return s == "true" || s == "yes" || s == "1"
	}
	return isIntegerOne(raw)
}

// ToIntFromValue maps null, missing and "" to nil and casts everything else.
// Non-numeric text casts to 0, not nil.
func ToIntFromValue(v Value) *int {
	if v.IsBlank() {
		return nil
	}
	n := castInt(v.Raw())
	return &n
}

// ToInt always casts; null and missing become 0.
func ToInt(v Value) int {
	return castInt(v.Raw())
}

// ToFloat maps missing to nil and casts everything else, so an explicit null
// or non-numeric text becomes 0.
func ToFloat(v Value) *float64 {
	if v.IsMissing() {
		return nil
	}
	f := castFloat(v.Raw())
	return &f
}

// Normalizer turns raw input fields into typed values. It holds no per-request
// state and is safe for concurrent use.
type Normalizer struct {
	sanitizer Sanitizer
	log       *logger.Logger
}

// NewNormalizer panics on a nil collaborator.
func NewNormalizer(sanitizer Sanitizer, log *logger.Logger) *Normalizer {
	if sanitizer == nil {
		panic("request: NewNormalizer called with nil sanitizer")
	}
	if log == nil {
		panic("request: NewNormalizer called with nil logger")
	}
	return &Normalizer{sanitizer: sanitizer, log: log}
}

// ToDate parses v with a flexible layout detector. Parse failures and values
// without a year are logged and yield nil.
func (n *Normalizer) ToDate(v Value) *time.Time {
	if v.IsBlank() {
		return nil
	}
	if t, ok := v.Raw().(time.Time); ok {
		return &t
	}

	s := strings.TrimSpace(stringify(v.Raw()))
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		n.log.Debug("Could not parse date value",
			"value", s,
			"error", err,
		)
		return nil
	}
	// fragments such as "1:" parse without a calendar date
	if t.Year() == 0 {
		n.log.Debug("Date value has no year", "value", s)
		return nil
	}
	return &t
}

func (n *Normalizer) Array(in Input, field string) []string {
	return ToArray(in.Get(field))
}

func (n *Normalizer) Boolean(in Input, field string) bool {
	return ToBoolean(in.Get(field).Raw())
}

func (n *Normalizer) Date(in Input, field string) *time.Time {
	if !in.Has(field) {
		return nil
	}
	return n.ToDate(in.Get(field))
}

// Float is nil only for a missing field. Non-numeric text becomes 0.0.
func (n *Normalizer) Float(in Input, field string) *float64 {
	if !in.Has(field) {
		return nil
	}
	return ToFloat(in.Get(field))
}

// Int is 0 for missing and non-numeric fields.
func (n *Normalizer) Int(in Input, field string) int {
	return ToInt(in.Get(field))
}

func (n *Normalizer) NullableInt(in Input, field string) *int {
	if !in.Has(field) {
		return nil
	}
	return ToIntFromValue(in.Get(field))
}

// CleanString sanitizes the field to a single trimmed line; missing is "".
func (n *Normalizer) CleanString(in Input, field string) string {
	if !in.Has(field) {
		return ""
	}
	return n.sanitizer.Clean(stringify(in.Get(field).Raw()))
}

// CleanStringKeepNewlines sanitizes the field but keeps its line breaks.
func (n *Normalizer) CleanStringKeepNewlines(in Input, field string) string {
	if !in.Has(field) {
		return ""
	}
	return n.sanitizer.CleanKeepNewlines(stringify(in.Get(field).Raw()))
}

// NullableString trims the field without sanitizing it. Missing, null and
// blank values are nil.
func (n *Normalizer) NullableString(in Input, field string) *string {
	if !in.Has(field) {
		return nil
	}
	return nonEmpty(strings.TrimSpace(stringify(in.Get(field).Raw())))
}

func (n *Normalizer) NullableCleanString(in Input, field string) *string {
	if !in.Has(field) {
		return nil
	}
	return nonEmpty(n.sanitizer.Clean(stringify(in.Get(field).Raw())))
}

func (n *Normalizer) NullableCleanStringKeepNewlines(in Input, field string) *string {
	if !in.Has(field) {
		return nil
	}
	return nonEmpty(n.sanitizer.CleanKeepNewlines(stringify(in.Get(field).Raw())))
}

func nonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
