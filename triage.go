package triage

import (
	"context"
	"encoding/json"
)

// Classifier inspects one event and decides whether it recognizes it.
//
// A classifier must be total over any event shape: "this isn't mine" is
// expressed by returning NoMatch, never by returning an error. An error is
// still tolerated (the engine logs it and treats the classifier as having
// declined) but it is anomalous.
//
// Parse may block (classifiers are free to do further decoding or I/O); the
// engine always waits for it to finish before trying the next classifier, so
// chain order is the only thing that determines precedence.
//
// Example:
//
//	type rdsClassifier struct{}
//
//	func (rdsClassifier) Parse(ctx context.Context, evt triage.Event) (triage.Result, error) {
//	    src, ok := evt.GetString("source")
//	    if !ok || src != "aws.rds" {
//	        return triage.NoMatch(), nil
//	    }
//	    return triage.Match(buildRDSMessage(evt)), nil
//	}
type Classifier interface {
	Parse(ctx context.Context, evt Event) (Result, error)
}

// ClassifierFunc is a function adapter for Classifier. Use for simple
// classifiers that don't need a struct:
//
//	engine.Add("ping", triage.ClassifierFunc(func(ctx context.Context, evt triage.Event) (triage.Result, error) {
//	    if !evt.HasField("ping") {
//	        return triage.NoMatch(), nil
//	    }
//	    return triage.Suppress(), nil
//	}))
type ClassifierFunc func(ctx context.Context, evt Event) (Result, error)

// Parse implements the Classifier interface.
func (f ClassifierFunc) Parse(ctx context.Context, evt Event) (Result, error) {
	return f(ctx, evt)
}

// Descriptor pairs a classifier with the name used for diagnostics. The
// engine's chain of descriptors is fixed once configuration is done and is
// never mutated during a dispatch run.
type Descriptor struct {
	Name       string
	Classifier Classifier
}

// Sink delivers a forwarded message to the notification channel. Delivery
// failures propagate out of Process as the overall failure: a user-visible
// notification was expected and did not happen.
type Sink interface {
	Deliver(ctx context.Context, msg json.RawMessage) error
}

// SinkFunc is a function adapter for Sink.
type SinkFunc func(ctx context.Context, msg json.RawMessage) error

// Deliver implements the Sink interface.
func (f SinkFunc) Deliver(ctx context.Context, msg json.RawMessage) error {
	return f(ctx, msg)
}
