package tmdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// nothingFoundSentinel is the literal body the API returns in place of a
// normal array when a search or lookup has no results. Detection compares
// the entire raw body against it verbatim; notably a body of "[]" is NOT
// the sentinel and is handed to the hydrator, which then fails on it. That
// mirrors the service's actual behavior and must not be "fixed".
const nothingFoundSentinel = `["Nothing found."]`

func isNothingFound(body []byte) bool {
	return string(body) == nothingFoundSentinel
}

// A payload is the parse boundary for entity hydration: the raw JSON text
// the entity was built from, plus an index of its top level fields. The
// API answers some endpoints with a bare object and others with a
// one-element array wrapping the same object; newPayload unwraps that
// array exactly once, by taking element 0, before any field is read.
type payload struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

func newPayload(raw []byte) (payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return payload{}, wrapErr(ErrMalformedPayload, fmt.Errorf("payload array: %w", err))
		}
		if len(elements) == 0 {
			return payload{}, wrapErr(ErrMalformedPayload, fmt.Errorf("payload array is empty"))
		}
		trimmed = bytes.TrimSpace(elements[0])
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return payload{}, wrapErr(ErrMalformedPayload, fmt.Errorf("payload object: %w", err))
	}

	return payload{raw: json.RawMessage(trimmed), fields: fields}, nil
}

// Typed field extractors. Each returns an explicit error instead of
// swallowing extraction failures; the hydrator decides per field whether
// an error aborts hydration or merely records a defaulted field.

func (p payload) str(key string) (string, error) {
	value, ok := p.fields[key]
	if !ok {
		return "", wrapErr(ErrMalformedPayload, fmt.Errorf("missing field %q", key))
	}

	var parsed string
	if err := json.Unmarshal(value, &parsed); err != nil {
		return "", wrapErr(ErrMalformedPayload, fmt.Errorf("field %q: %w", key, err))
	}

	return parsed, nil
}

func (p payload) integer(key string) (int, error) {
	value, ok := p.fields[key]
	if !ok {
		return 0, wrapErr(ErrMalformedPayload, fmt.Errorf("missing field %q", key))
	}

	var parsed int
	if err := json.Unmarshal(value, &parsed); err != nil {
		return 0, wrapErr(ErrMalformedPayload, fmt.Errorf("field %q: %w", key, err))
	}

	return parsed, nil
}

func (p payload) float(key string) (float64, error) {
	value, ok := p.fields[key]
	if !ok {
		return 0, wrapErr(ErrMalformedPayload, fmt.Errorf("missing field %q", key))
	}

	var parsed float64
	if err := json.Unmarshal(value, &parsed); err != nil {
		return 0, wrapErr(ErrMalformedPayload, fmt.Errorf("field %q: %w", key, err))
	}

	return parsed, nil
}

func (p payload) array(key string) ([]json.RawMessage, error) {
	value, ok := p.fields[key]
	if !ok {
		return nil, wrapErr(ErrMalformedPayload, fmt.Errorf("missing field %q", key))
	}

	var parsed []json.RawMessage
	if err := json.Unmarshal(value, &parsed); err != nil {
		return nil, wrapErr(ErrMalformedPayload, fmt.Errorf("field %q: %w", key, err))
	}

	return parsed, nil
}

// urlField reads a string field strictly, then parses it leniently: the
// field must be present, but a string that fails to parse as an absolute
// URL yields (nil, ErrMalformedURL) for the caller to record and recover.
func (p payload) urlField(key string) (*url.URL, error) {
	text, err := p.str(key)
	if err != nil {
		return nil, err
	}

	parsed, err := url.ParseRequestURI(text)
	if err != nil {
		return nil, wrapErr(ErrMalformedURL, fmt.Errorf("field %q: %w", key, err))
	}

	return parsed, nil
}
