package triage

import (
	"context"
	"log/slog"
	"time"
)

// OnMalformedInputFunc is called when raw input fails JSON decoding. The
// input still dispatches as an unstructured event.
type OnMalformedInputFunc func(ctx context.Context, raw []byte, err error)

// OnAttemptFunc is called just before each classifier runs.
type OnAttemptFunc func(ctx context.Context, classifier string)

// OnClassifierFaultFunc is called when a classifier returns an error instead
// of declining. The classifier is treated as having declined.
type OnClassifierFaultFunc func(ctx context.Context, classifier string, err error)

// OnSuppressFunc is called when a classifier recognizes an event and
// requests that no notification be sent.
type OnSuppressFunc func(ctx context.Context, classifier string)

// OnNoMatchFunc is called when the chain is exhausted without a definitive
// result. classifier is the last one attempted.
type OnNoMatchFunc func(ctx context.Context, classifier string)

// OnForwardFunc is called after a matched message is delivered to the sink.
type OnForwardFunc func(ctx context.Context, classifier string, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onMalformedInput  []OnMalformedInputFunc
	onAttempt         []OnAttemptFunc
	onClassifierFault []OnClassifierFaultFunc
	onSuppress        []OnSuppressFunc
	onNoMatch         []OnNoMatchFunc
	onForward         []OnForwardFunc
}

// WithOnMalformedInput adds a hook called when raw input fails JSON
// decoding. Multiple hooks are called in order.
//
// Example:
//
//	triage.WithOnMalformedInput(func(ctx context.Context, raw []byte, err error) {
//	    metrics.Incr("triage.malformed_input")
//	})
func WithOnMalformedInput(fn OnMalformedInputFunc) Option {
	return func(e *Engine) {
		e.hooks.onMalformedInput = append(e.hooks.onMalformedInput, fn)
	}
}

// WithOnAttempt adds a hook called just before each classifier runs.
// Multiple hooks are called in order.
func WithOnAttempt(fn OnAttemptFunc) Option {
	return func(e *Engine) {
		e.hooks.onAttempt = append(e.hooks.onAttempt, fn)
	}
}

// WithOnClassifierFault adds a hook called when a classifier returns an
// error. Multiple hooks are called in order.
//
// Example:
//
//	triage.WithOnClassifierFault(func(ctx context.Context, classifier string, err error) {
//	    logger.Error("classifier failed", "classifier", classifier, "error", err)
//	})
func WithOnClassifierFault(fn OnClassifierFaultFunc) Option {
	return func(e *Engine) {
		e.hooks.onClassifierFault = append(e.hooks.onClassifierFault, fn)
	}
}

// WithOnSuppress adds a hook called when a classifier force-ignores an
// event. Multiple hooks are called in order.
func WithOnSuppress(fn OnSuppressFunc) Option {
	return func(e *Engine) {
		e.hooks.onSuppress = append(e.hooks.onSuppress, fn)
	}
}

// WithOnNoMatch adds a hook called when no classifier produced a definitive
// result. Multiple hooks are called in order.
func WithOnNoMatch(fn OnNoMatchFunc) Option {
	return func(e *Engine) {
		e.hooks.onNoMatch = append(e.hooks.onNoMatch, fn)
	}
}

// WithOnForward adds a hook called after a matched message is delivered.
// Multiple hooks are called in order.
//
// Example:
//
//	triage.WithOnForward(func(ctx context.Context, classifier string, d time.Duration) {
//	    metrics.Timing("triage.deliver", d, "classifier:"+classifier)
//	})
func WithOnForward(fn OnForwardFunc) Option {
	return func(e *Engine) {
		e.hooks.onForward = append(e.hooks.onForward, fn)
	}
}

// WithLogger installs hooks that log every engine diagnostic with the given
// slog logger: malformed input, classifier faults, force-ignored events,
// no-match exhaustion, and (at debug level) deliveries.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.hooks.onMalformedInput = append(e.hooks.onMalformedInput,
			func(ctx context.Context, raw []byte, err error) {
				log.WarnContext(ctx, "input is not valid JSON, dispatching as raw text", "error", err)
			})
		e.hooks.onClassifierFault = append(e.hooks.onClassifierFault,
			func(ctx context.Context, classifier string, err error) {
				log.ErrorContext(ctx, "classifier failed", "classifier", classifier, "error", err)
			})
		e.hooks.onSuppress = append(e.hooks.onSuppress,
			func(ctx context.Context, classifier string) {
				log.InfoContext(ctx, "event force-ignored", "classifier", classifier)
			})
		e.hooks.onNoMatch = append(e.hooks.onNoMatch,
			func(ctx context.Context, classifier string) {
				log.WarnContext(ctx, "no classifier matched", "last_attempted", classifier)
			})
		e.hooks.onForward = append(e.hooks.onForward,
			func(ctx context.Context, classifier string, duration time.Duration) {
				log.DebugContext(ctx, "message forwarded", "classifier", classifier, "duration", duration)
			})
	}
}
