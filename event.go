package triage

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformedInput reports raw input that did not decode as JSON. It is a
// diagnostic, not a failure: the input still dispatches as an unstructured
// event.
var ErrMalformedInput = errors.New("input is not valid JSON")

// Event is one occurrence payload to be classified. It wraps either a JSON
// document or, on the malformed-input fallback path, the literal input text.
// Events are transient: one is built per invocation and discarded once its
// outcome is consumed.
type Event struct {
	raw        []byte
	structured bool
}

// Normalize converts raw input into an Event. Valid JSON becomes a
// structured event. Anything else becomes an unstructured event carrying the
// literal bytes, returned together with ErrMalformedInput so the caller can
// report the condition; downstream classifiers then see a value they will
// normally decline.
func Normalize(raw []byte) (Event, error) {
	if gjson.ValidBytes(raw) {
		return Event{raw: raw, structured: true}, nil
	}
	return Event{raw: raw}, ErrMalformedInput
}

// Raw returns the event's underlying bytes: the JSON document for structured
// events, the literal input text otherwise.
func (e Event) Raw() []byte { return e.raw }

// Structured reports whether the event decoded as JSON.
func (e Event) Structured() bool { return e.structured }

// HasField returns true if the gjson path exists in the event. Always false
// for unstructured events.
func (e Event) HasField(path string) bool {
	return e.structured && gjson.GetBytes(e.raw, path).Exists()
}

// GetString returns the string value at path, or false if the event is
// unstructured, the path is missing, or the value is not a string.
func (e Event) GetString(path string) (string, bool) {
	if !e.structured {
		return "", false
	}
	r := gjson.GetBytes(e.raw, path)
	if !r.Exists() || r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

// GetBytes returns the raw JSON value at path, or false if the event is
// unstructured or the path is missing. Strings keep their quotes.
func (e Event) GetBytes(path string) ([]byte, bool) {
	if !e.structured {
		return nil, false
	}
	r := gjson.GetBytes(e.raw, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// records returns the top-level Records array, or nil when absent or not an
// array.
func (e Event) records() []gjson.Result {
	if !e.structured {
		return nil
	}
	r := gjson.GetBytes(e.raw, "Records")
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

// split returns the independently dispatchable events derived from e.
//
// An event whose Records array holds more than one record becomes one event
// per record, each keeping every other top-level field and a single-element
// Records array with only that record. Distinct records may come from
// different upstream sources, so they must be classified separately. Any
// other event dispatches as-is.
func (e Event) split() []Event {
	recs := e.records()
	if len(recs) <= 1 {
		return []Event{e}
	}
	out := make([]Event, 0, len(recs))
	for _, rec := range recs {
		one := append(append([]byte("["), rec.Raw...), ']')
		derived, err := sjson.SetRawBytes(e.raw, "Records", one)
		if err != nil {
			// A constant path on validated JSON never fails; dispatch the
			// whole event rather than drop the record.
			derived = e.raw
		}
		out = append(out, Event{raw: derived, structured: true})
	}
	return out
}
