package triage

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

type resultKind int

const (
	resultNoMatch resultKind = iota
	resultSuppress
	resultMatch
)

// Result is a classifier's verdict on one event. It has exactly three
// variants:
//
//   - NoMatch: the classifier does not recognize the event; the engine moves
//     on to the next classifier.
//   - Suppress: the classifier recognizes the event and requests that no
//     notification be sent; the engine stops.
//   - Match: the classifier recognizes the event and produced a message; the
//     engine stops and the message is delivered.
type Result struct {
	kind    resultKind
	message json.RawMessage
}

// NoMatch declines the event.
func NoMatch() Result { return Result{kind: resultNoMatch} }

// Suppress recognizes the event but asks for no notification.
func Suppress() Result { return Result{kind: resultSuppress} }

// Match recognizes the event and carries the message to forward.
//
// The engine normalizes degenerate payloads: a structurally empty object or
// array, or the JSON literal true, counts as Suppress; nil bytes or a JSON
// falsy value (null, false, "", 0) counts as NoMatch.
func Match(msg json.RawMessage) Result { return Result{kind: resultMatch, message: msg} }

// resolve applies the Match payload normalization described on Match.
func resolve(r Result) Result {
	if r.kind != resultMatch {
		return r
	}
	trimmed := bytes.TrimSpace(r.message)
	if len(trimmed) == 0 {
		return NoMatch()
	}
	v := gjson.ParseBytes(trimmed)
	switch {
	case v.Type == gjson.True:
		return Suppress()
	case v.IsObject():
		if len(v.Map()) == 0 {
			return Suppress()
		}
	case v.IsArray():
		if len(v.Array()) == 0 {
			return Suppress()
		}
	case v.Type == gjson.Null, v.Type == gjson.False:
		return NoMatch()
	case v.Type == gjson.String:
		if v.Str == "" {
			return NoMatch()
		}
	case v.Type == gjson.Number:
		if v.Num == 0 {
			return NoMatch()
		}
	}
	return r
}

// OutcomeKind discriminates the three possible dispositions of a dispatch
// run.
type OutcomeKind int

const (
	// Exhausted means no classifier in the chain produced a definitive
	// result. Unreachable when the chain ends with a catch-all, but handled
	// defensively.
	Exhausted OutcomeKind = iota

	// Forwarded means a classifier matched and its message was the result.
	Forwarded

	// Suppressed means a classifier recognized the event and requested that
	// no notification be sent.
	Suppressed
)

// String returns the kind's diagnostic name.
func (k OutcomeKind) String() string {
	switch k {
	case Forwarded:
		return "forwarded"
	case Suppressed:
		return "suppressed"
	default:
		return "exhausted"
	}
}

// Outcome is the disposition of one full dispatch run over one event.
//
// Classifier names the classifier that decided the outcome. For Exhausted it
// instead names the last classifier attempted, for diagnostics only. Message
// is set only for Forwarded.
type Outcome struct {
	Kind       OutcomeKind
	Classifier string
	Message    json.RawMessage
}
