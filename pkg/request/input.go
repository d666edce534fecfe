package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

const maxMultipartMemory = 32 << 20

// Intent is what the route means to do with the submitted fields.
type Intent uint8

const (
	IntentUnknown Intent = iota
	IntentCreate
	IntentUpdate
)

func (i Intent) String() string {
	switch i {
	case IntentCreate:
		return "create"
	case IntentUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Input is the read-only view of one incoming request the normalizer works on.
type Input interface {
	Has(field string) bool
	Get(field string) Value
	Method() string
	Intent() Intent
}

// MapInput is an immutable snapshot of request fields.
type MapInput struct {
	fields map[string]any
	method string
	intent Intent
}

// NewMapInput copies fields so later changes to the map are not observed.
func NewMapInput(method string, intent Intent, fields map[string]any) *MapInput {
	return &MapInput{
		fields: maps.Clone(fields),
		method: strings.ToUpper(method),
		intent: intent,
	}
}

func (in *MapInput) Has(field string) bool {
	_, ok := in.fields[field]
	return ok
}

func (in *MapInput) Get(field string) Value {
	raw, ok := in.fields[field]
	if !ok {
		return Missing
	}
	return Of(raw)
}

func (in *MapInput) Method() string { return in.method }

func (in *MapInput) Intent() Intent { return in.intent }

// Fields returns a copy of the raw field map.
func (in *MapInput) Fields() map[string]any {
	return maps.Clone(in.fields)
}

// FromHTTP snapshots the query string and body of r. JSON bodies keep numbers
// as json.Number; form bodies turn repeated keys and "name[]" keys into
// string slices. Body fields win over query fields of the same name.
func FromHTTP(r *http.Request, intent Intent) (*MapInput, error) {
	fields := valuesToFields(r.URL.Query())

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("invalid content type %q: %w", ct, err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		body, err := decodeJSONObject(r.Body)
		if err != nil {
			return nil, err
		}
		maps.Copy(fields, body)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form body: %w", err)
		}
		maps.Copy(fields, valuesToFields(r.PostForm))
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("failed to parse multipart body: %w", err)
		}
		maps.Copy(fields, valuesToFields(r.MultipartForm.Value))
	}

	return &MapInput{
		fields: fields,
		method: r.Method,
		intent: intent,
	}, nil
}

func decodeJSONObject(body io.Reader) (map[string]any, error) {
	if body == nil {
		return map[string]any{}, nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	for key, v := range out {
		out[key] = formBooleans(v)
	}
	return out, nil
}

// formBooleans rewrites JSON booleans, also inside arrays, into the "1" and
// "0" strings a form checkbox would send.
func formBooleans(v any) any {
	switch raw := v.(type) {
	case bool:
		if raw {
			return "1"
		}
		return "0"
	case []any:
		for i, item := range raw {
			raw[i] = formBooleans(item)
		}
		return raw
	}
	return v
}

func valuesToFields(values url.Values) map[string]any {
	fields := make(map[string]any, len(values))
	for key, vs := range values {
		switch {
		case strings.HasSuffix(key, "[]"):
			fields[strings.TrimSuffix(key, "[]")] = append([]string(nil), vs...)
		case len(vs) > 1:
			fields[key] = append([]string(nil), vs...)
		case len(vs) == 1:
			fields[key] = vs[0]
		}
	}
	return fields
}
