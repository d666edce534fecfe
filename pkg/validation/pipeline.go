package validation

// Func is a pure cross-field validation step over a parsed field map.
type Func func(data map[string]any) Errors

// Pipeline runs every step and aggregates the results. A failing step never
// prevents the next one from running.
type Pipeline []Func

func (p Pipeline) Run(data map[string]any) Errors {
	var out Errors
	for _, fn := range p {
		if fn == nil {
			continue
		}
		out = append(out, fn(data)...)
	}
	return out
}
