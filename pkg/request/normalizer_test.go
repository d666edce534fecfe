package request

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"
	"time"

	"budgetly/pkg/logger"
	"budgetly/pkg/sanitizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(sanitizer.NewText(), logger.Discard())
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"string true", "true", true},
		{"string yes", "yes", true},
		{"string one", "1", true},
		{"int one", 1, true},
		{"int64 one", int64(1), true},
		{"json number one", json.Number("1"), true},
		{"present value one", Of("1"), true},
		{"nil", nil, false},
		{"missing", Missing, false},
		{"int zero", 0, false},
		{"string zero", "0", false},
		{"string false", "false", false},
		{"string on", "on", false},
		{"upper TRUE", "TRUE", false},
		{"padded true", " true", false},
		{"bool true", true, false},
		{"float one", 1.0, false},
		{"json number one point zero", json.Number("1.0"), false},
		{"int two", 2, false},
		{"slice", []string{"true"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBoolean(tt.raw))
		})
	}
}

func TestToIntFromValue(t *testing.T) {
	assert.Nil(t, ToIntFromValue(Null))
	assert.Nil(t, ToIntFromValue(Missing))
	assert.Nil(t, ToIntFromValue(Of("")))

	tests := []struct {
		raw  any
		want int
	}{
		{"42", 42},
		{"abc", 0},
		{" 7", 7},
		{"12abc", 12},
		{"-3", -3},
		{"12.9", 12},
		{"1e3", 1000},
		{json.Number("15"), 15},
		{int64(9), 9},
		{2.7, 2},
		{true, 1},
		{false, 0},
		{[]string{}, 0},
		{[]string{"a"}, 1},
		{"99999999999999999999", math.MaxInt},
		{"-99999999999999999999", math.MinInt},
		{"1e400", math.MaxInt},
	}
	for _, tt := range tests {
		got := ToIntFromValue(Of(tt.raw))
		require.NotNil(t, got, "raw %#v", tt.raw)
		assert.Equal(t, tt.want, *got, "raw %#v", tt.raw)
	}
}

func TestToArray(t *testing.T) {
	assert.Nil(t, ToArray(Missing))
	assert.Nil(t, ToArray(Null))
	assert.Nil(t, ToArray(Of(42)))

	assert.Equal(t, []string{"a", "b", " c"}, ToArray(Of("a,b, c")))
	assert.Equal(t, []string{""}, ToArray(Of("")))
	assert.Equal(t, []string{"x", "y"}, ToArray(Of([]string{"x", "y"})))
	assert.Equal(t, []string{"1", "two"}, ToArray(Of([]any{json.Number("1"), "two"})))

	empty := ToArray(Of([]string{}))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestToFloat(t *testing.T) {
	assert.Nil(t, ToFloat(Missing))

	got := ToFloat(Null)
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)

	got = ToFloat(Of("not a number"))
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)

	got = ToFloat(Of(" 3.25kg"))
	require.NotNil(t, got)
	assert.Equal(t, 3.25, *got)

	got = ToFloat(Of(json.Number("-0.5")))
	require.NotNil(t, got)
	assert.Equal(t, -0.5, *got)
}

func TestNormalizer_ToDate(t *testing.T) {
	n := newTestNormalizer()

	assert.Nil(t, n.ToDate(Null))
	assert.Nil(t, n.ToDate(Of("")))
	assert.Nil(t, n.ToDate(Of("definitely not a date")))
	assert.Nil(t, n.ToDate(Of("1:")))

	got := n.ToDate(Of("2024-03-15"))
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())

	got = n.ToDate(Of("2024-03-15T10:30:00Z"))
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Hour())

	stamp := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	got = n.ToDate(Of(stamp))
	require.NotNil(t, got)
	assert.True(t, stamp.Equal(*got))
}

func TestNormalizer_FieldVariants(t *testing.T) {
	n := newTestNormalizer()
	in := NewMapInput(http.MethodPost, IntentCreate, map[string]any{
		"blank":    "   ",
		"name":     "  <b>Groceries</b> ",
		"notes":    "line one\r\nline two ",
		"count":    "17",
		"empty":    "",
		"nothing":  nil,
		"word":     "abc",
		"active":   "yes",
		"tags":     "a,b",
		"amount":   "12.5",
		"when":     "2024-01-31",
		"bad_date": "31st of never",
	})

	t.Run("clean string", func(t *testing.T) {
		assert.Equal(t, "Groceries", n.CleanString(in, "name"))
		assert.Equal(t, "", n.CleanString(in, "absent"))
		assert.Equal(t, "", n.CleanString(in, "blank"))
		assert.Equal(t, "", n.CleanString(in, "nothing"))
	})

	t.Run("clean string keep newlines", func(t *testing.T) {
		assert.Equal(t, "line one\nline two", n.CleanStringKeepNewlines(in, "notes"))
		assert.Equal(t, "", n.CleanStringKeepNewlines(in, "absent"))
	})

	t.Run("nullable strings", func(t *testing.T) {
		assert.Nil(t, n.NullableCleanString(in, "blank"))
		assert.Nil(t, n.NullableCleanString(in, "absent"))
		assert.Nil(t, n.NullableCleanString(in, "nothing"))
		require.NotNil(t, n.NullableCleanString(in, "name"))
		assert.Equal(t, "Groceries", *n.NullableCleanString(in, "name"))

		assert.Nil(t, n.NullableString(in, "empty"))
		require.NotNil(t, n.NullableString(in, "word"))
		assert.Equal(t, "abc", *n.NullableString(in, "word"))

		require.NotNil(t, n.NullableCleanStringKeepNewlines(in, "notes"))
		assert.Equal(t, "line one\nline two", *n.NullableCleanStringKeepNewlines(in, "notes"))
		assert.Nil(t, n.NullableCleanStringKeepNewlines(in, "blank"))
	})

	t.Run("integers", func(t *testing.T) {
		assert.Equal(t, 17, n.Int(in, "count"))
		assert.Equal(t, 0, n.Int(in, "absent"))
		assert.Equal(t, 0, n.Int(in, "word"))

		assert.Nil(t, n.NullableInt(in, "absent"))
		assert.Nil(t, n.NullableInt(in, "empty"))
		assert.Nil(t, n.NullableInt(in, "nothing"))
		require.NotNil(t, n.NullableInt(in, "word"))
		assert.Equal(t, 0, *n.NullableInt(in, "word"))
	})

	t.Run("floats", func(t *testing.T) {
		assert.Nil(t, n.Float(in, "absent"))
		require.NotNil(t, n.Float(in, "nothing"))
		assert.Equal(t, 0.0, *n.Float(in, "nothing"))
		require.NotNil(t, n.Float(in, "amount"))
		assert.Equal(t, 12.5, *n.Float(in, "amount"))
		require.NotNil(t, n.Float(in, "word"))
		assert.Equal(t, 0.0, *n.Float(in, "word"))
	})

	t.Run("booleans arrays and dates", func(t *testing.T) {
		assert.True(t, n.Boolean(in, "active"))
		assert.False(t, n.Boolean(in, "absent"))
		assert.Equal(t, []string{"a", "b"}, n.Array(in, "tags"))
		assert.Nil(t, n.Array(in, "absent"))

		assert.Nil(t, n.Date(in, "absent"))
		assert.Nil(t, n.Date(in, "bad_date"))
		require.NotNil(t, n.Date(in, "when"))
		assert.Equal(t, 31, n.Date(in, "when").Day())
	})
}

func TestNewNormalizer_PanicsOnMissingCollaborator(t *testing.T) {
	assert.Panics(t, func() { NewNormalizer(nil, logger.Discard()) })
	assert.Panics(t, func() { NewNormalizer(sanitizer.NewText(), nil) })
}

func TestMapInput_IsSnapshot(t *testing.T) {
	fields := map[string]any{"name": "Rent"}
	in := NewMapInput("post", IntentCreate, fields)
	fields["name"] = "Changed"
	fields["extra"] = "x"

	assert.Equal(t, "Rent", in.Get("name").Raw())
	assert.False(t, in.Has("extra"))
	assert.Equal(t, http.MethodPost, in.Method())
	assert.True(t, in.Get("extra").IsMissing())
}
