package triage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Engine holds the ordered classifier chain and drives dispatch.
//
// Usage:
//  1. Create an engine with New, passing the notification sink
//  2. Add classifiers with Add or AddFunc, in precedence order
//  3. Make the last classifier a catch-all (see Generic)
//  4. Feed raw payloads to Process
//
// Classifier order is significant and fixed: the first classifier to return
// a definitive result wins outright, whether or not a later one would also
// match. Classifiers run strictly sequentially, never concurrently.
//
// Engine is safe for concurrent use after configuration. Do not call Add or
// AddFunc after calling Process or Dispatch.
type Engine struct {
	chain []Descriptor
	sink  Sink
	hooks hooks
}

// Option configures an Engine.
type Option func(*Engine)

// New creates an Engine delivering matched messages to sink.
//
// Example:
//
//	engine := triage.New(slackSink,
//	    triage.WithLogger(slog.Default()),
//	)
func New(sink Sink, opts ...Option) *Engine {
	e := &Engine{sink: sink}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add appends a named classifier to the chain. The name appears only in
// diagnostics.
func (e *Engine) Add(name string, c Classifier) {
	e.chain = append(e.chain, Descriptor{Name: name, Classifier: c})
}

// AddFunc is a convenience for adding a classifier function.
func (e *Engine) AddFunc(name string, fn func(ctx context.Context, evt Event) (Result, error)) {
	e.Add(name, ClassifierFunc(fn))
}

// Chain returns a copy of the configured descriptors in precedence order.
func (e *Engine) Chain() []Descriptor {
	out := make([]Descriptor, len(e.chain))
	copy(out, e.chain)
	return out
}

// Process runs the full pipeline on one raw payload: normalize it, fan out a
// multi-record event into per-record events, dispatch each, and deliver
// forwarded messages to the sink.
//
// Records are processed in their original order, one at a time, so delivery
// order matches arrival order. A classifier fault in one record never
// affects another. Suppression and exhaustion are success; only sink faults
// produce an error, and faults from different records are joined so every
// record still gets its run.
func (e *Engine) Process(ctx context.Context, raw []byte) error {
	evt, err := Normalize(raw)
	if err != nil {
		e.callOnMalformedInput(ctx, raw, err)
	}

	var errs []error
	for _, sub := range evt.split() {
		if err := e.consume(ctx, e.Dispatch(ctx, sub)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispatch tries each classifier in declaration order and returns the first
// definitive outcome.
//
// A classifier error fires OnClassifierFault and counts as a decline, so a
// broken classifier never aborts the whole run. Match payloads are
// normalized per Match before classification. When the chain runs out,
// Dispatch fires OnNoMatch with the last attempted classifier and returns
// Exhausted.
func (e *Engine) Dispatch(ctx context.Context, evt Event) Outcome {
	var last string
	for _, d := range e.chain {
		last = d.Name
		e.callOnAttempt(ctx, d.Name)

		res, err := d.Classifier.Parse(ctx, evt)
		if err != nil {
			e.callOnClassifierFault(ctx, d.Name, err)
			continue
		}

		switch res = resolve(res); res.kind {
		case resultSuppress:
			e.callOnSuppress(ctx, d.Name)
			return Outcome{Kind: Suppressed, Classifier: d.Name}
		case resultMatch:
			return Outcome{Kind: Forwarded, Classifier: d.Name, Message: res.message}
		}
	}

	e.callOnNoMatch(ctx, last)
	return Outcome{Kind: Exhausted, Classifier: last}
}

// consume turns an outcome into its externally visible action. Only
// Forwarded has one: delivery to the sink. Suppressed and Exhausted already
// produced their diagnostics during Dispatch.
func (e *Engine) consume(ctx context.Context, out Outcome) error {
	if out.Kind != Forwarded {
		return nil
	}
	if e.sink == nil {
		return fmt.Errorf("no sink configured for message from %s", out.Classifier)
	}

	start := time.Now()
	if err := e.sink.Deliver(ctx, out.Message); err != nil {
		return fmt.Errorf("deliver message from %s: %w", out.Classifier, err)
	}
	e.callOnForward(ctx, out.Classifier, time.Since(start))
	return nil
}

func (e *Engine) callOnMalformedInput(ctx context.Context, raw []byte, err error) {
	for _, fn := range e.hooks.onMalformedInput {
		fn(ctx, raw, err)
	}
}

func (e *Engine) callOnAttempt(ctx context.Context, classifier string) {
	for _, fn := range e.hooks.onAttempt {
		fn(ctx, classifier)
	}
}

func (e *Engine) callOnClassifierFault(ctx context.Context, classifier string, err error) {
	for _, fn := range e.hooks.onClassifierFault {
		fn(ctx, classifier, err)
	}
}

func (e *Engine) callOnSuppress(ctx context.Context, classifier string) {
	for _, fn := range e.hooks.onSuppress {
		fn(ctx, classifier)
	}
}

func (e *Engine) callOnNoMatch(ctx context.Context, classifier string) {
	for _, fn := range e.hooks.onNoMatch {
		fn(ctx, classifier)
	}
}

func (e *Engine) callOnForward(ctx context.Context, classifier string, duration time.Duration) {
	for _, fn := range e.hooks.onForward {
		fn(ctx, classifier, duration)
	}
}
