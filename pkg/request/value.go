package request

// State tells an absent field apart from an explicit null and a present value.
type State uint8

const (
	StateMissing State = iota
	StateNull
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StatePresent:
		return "present"
	default:
		return "missing"
	}
}

// Value is the raw content of one input field. The zero Value is missing.
type Value struct {
	state State
	raw   any
}

// Missing is the value of a field the request did not carry.
var Missing = Value{}

// Null is the value of a field sent with an explicit null.
var Null = Value{state: StateNull}

// Of wraps raw as a present value. A nil raw is an explicit null.
func Of(raw any) Value {
	if raw == nil {
		return Null
	}
	if v, ok := raw.(Value); ok {
		return v
	}
	return Value{state: StatePresent, raw: raw}
}

func (v Value) State() State { return v.state }

func (v Value) IsMissing() bool { return v.state == StateMissing }

func (v Value) IsNull() bool { return v.state == StateNull }

func (v Value) IsPresent() bool { return v.state == StatePresent }

// Raw returns the underlying value, nil unless present.
func (v Value) Raw() any { return v.raw }

// IsBlank reports missing, null and the empty string.
func (v Value) IsBlank() bool {
	if v.state != StatePresent {
		return true
	}
	s, ok := v.raw.(string)
	return ok && s == ""
}
