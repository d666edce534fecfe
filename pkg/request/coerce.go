package request

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// reNumericPrefix matches the longest leading decimal number of a string.
var reNumericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

const castWhitespace = " \t\n\r\v\f"

// castFloat converts raw the way a loose numeric cast does: leading whitespace
// is skipped, the longest numeric prefix is used and anything else is 0.
func castFloat(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case Value:
		return castFloat(v.Raw())
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case json.Number:
		return parseFloatPrefix(string(v))
	case string:
		return parseFloatPrefix(v)
	case []string:
		return boolFloat(len(v) > 0)
	case []any:
		return boolFloat(len(v) > 0)
	case map[string]any:
		return boolFloat(len(v) > 0)
	default:
		return 0
	}
}

// castInt is castFloat truncated toward zero and clamped to the int range.
// Integer strings are parsed exactly so large values keep their precision.
func castInt(raw any) int {
	switch v := raw.(type) {
	case Value:
		return castInt(v.Raw())
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return clampInt64(v)
	case uint:
		return clampUint64(uint64(v))
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return clampUint64(uint64(v))
	case uint64:
		return clampUint64(v)
	case json.Number:
		return parseIntPrefix(string(v))
	case string:
		return parseIntPrefix(v)
	default:
		return clampFloat(castFloat(raw))
	}
}

func parseFloatPrefix(s string) float64 {
	m := reNumericPrefix.FindString(strings.TrimLeft(s, castWhitespace))
	if m == "" {
		return 0
	}
	// out of range input yields ±Inf, which is what a loose cast produces too
	f, _ := strconv.ParseFloat(m, 64)
	return f
}

func parseIntPrefix(s string) int {
	m := reNumericPrefix.FindString(strings.TrimLeft(s, castWhitespace))
	if m == "" {
		return 0
	}
	if !strings.ContainsAny(m, ".eE") {
		n, err := strconv.ParseInt(m, 10, 64)
		if err == nil {
			return clampInt64(n)
		}
		if strings.HasPrefix(m, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	f, _ := strconv.ParseFloat(m, 64)
	return clampFloat(f)
}

func clampFloat(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

func clampInt64(n int64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

func clampUint64(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// stringify renders a scalar raw value as text. Null and composite values
// render as the empty string.
func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case Value:
		return stringify(v.Raw())
	case string:
		return v
	case json.Number:
		return string(v)
	case []byte:
		return string(v)
	case bool:
		if v {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// isIntegerOne reports whether raw is the integer 1 in any integer encoding.
func isIntegerOne(raw any) bool {
	switch v := raw.(type) {
	case int:
		return v == 1
	case int8:
		return v == 1
	case int16:
		return v == 1
	case int32:
		return v == 1
	case int64:
		return v == 1
	case uint:
		return v == 1
	case uint8:
		return v == 1
	case uint16:
		return v == 1
	case uint32:
		return v == 1
	case uint64:
		return v == 1
	case json.Number:
		return string(v) == "1"
	}
	return false
}
