package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ErrNotList is returned when a JSON body decodes to something other than an array.
var ErrNotList = errors.New("response is not a list")

// Request describes one HTTP call issued by the runner.
type Request struct {
	Method  string
	URL     string
	Body    any
	Timeout time.Duration
}

// Response is the outcome of one HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
	Elapsed    time.Duration
}

// ErrTrailingData is returned when a body holds more than one JSON value.
var ErrTrailingData = errors.New("invalid character after top-level value")

// JSON decodes the body, which must hold exactly one JSON value. Numbers are kept as json.Number.
func (r *Response) JSON() (any, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w at offset %d", ErrTrailingData, dec.InputOffset())
	}

	return v, nil
}

// Records decodes a list-shaped body into records.
func (r *Response) Records() ([]Record, error) {
	v, err := r.JSON()
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items, ok := v.([]any)
	if !ok {
		return nil, ErrNotList
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is %T, not an object", i, item)
		}

		records = append(records, Record(obj))
	}

	return records, nil
}

// Record is a decoded JSON object such as a product or a category.
// Accessors never fail on absent fields.
type Record map[string]any

// Has reports whether the field is present, even if null.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Get returns the raw field value or nil.
func (r Record) Get(field string) any {
	return r[field]
}

// Text returns the field rendered as text, or fallback when absent or null.
func (r Record) Text(field, fallback string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return fallback
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// Missing returns the fields absent from the record, in the given order.
func (r Record) Missing(fields ...string) []string {
	var missing []string

	for _, field := range fields {
		if !r.Has(field) {
			missing = append(missing, field)
		}
	}

	return missing
}

// Truthy reports whether a decoded JSON value counts as set:
// non-empty strings and collections, non-zero numbers and true.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(val), 64)
		return err != nil || f != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	}

	return true
}
