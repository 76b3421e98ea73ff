// Package triage classifies heterogeneous infrastructure event payloads and
// forwards the first recognized one to a notification sink.
//
// The engine holds an ordered, immutable chain of classifiers. For each
// event it tries them in declaration order and stops at the first definitive
// verdict: a message to forward, or an explicit request to stay quiet.
// Everything else (declines, classifier errors) moves the chain along.
//
// # Quick Start
//
// Build a chain, end it with a catch-all, and feed it raw payloads:
//
//	engine := triage.New(slackSink, triage.WithLogger(slog.Default()))
//
//	engine.Add("health-check", triage.Ignore(triage.FieldEquals("detail-type", "Health Check")))
//	engine.Add("rds", &rdsClassifier{})
//	engine.Add("generic", triage.Generic())
//
//	err := engine.Process(ctx, rawPayload)
//
// Process reports an error only when delivering a matched message fails.
// Suppression and exhaustion are success: they mean "nothing to say", not
// "something broke".
//
// # Result Protocol
//
// A classifier returns one of three explicit verdicts:
//
//   - triage.NoMatch(): not mine, try the next classifier
//   - triage.Suppress(): mine, and deliberately quiet
//   - triage.Match(msg): mine, forward msg
//
// Match payloads are normalized before use: a structurally empty object or
// array, or the JSON literal true, is treated as Suppress; nil bytes or a
// JSON falsy value (null, false, "", 0) is treated as NoMatch. Classifiers
// ported from looser systems therefore keep their behavior without the
// engine ever guessing at truthiness.
//
// A classifier that returns an error is logged and treated as a decline. It
// never aborts the run.
//
// # Ingestion and Fan-Out
//
// Process accepts either a JSON document or arbitrary text. Text that fails
// to decode is reported through OnMalformedInput and then dispatched anyway
// as an unstructured event; classifiers see it and normally decline, and the
// catch-all still produces a generic message.
//
// An event whose top-level Records array holds more than one record is split
// into one derived event per record, each keeping the envelope and a
// single-element Records array. Records dispatch independently and in order:
// one record may forward while the next suppresses, and a classifier fault
// in one never affects another.
//
// # Events
//
// Classifiers inspect events through gjson paths without decoding:
//
//	src, ok := evt.GetString("source")
//	if evt.HasField("detail.requestParameters") { ... }
//
// Predicates compose the common structural gates:
//
//	triage.When(
//	    triage.And(triage.HasFields("Records.0.Sns"), triage.FieldEquals("source", "aws.rds")),
//	    buildMessage,
//	)
//
// # Hooks
//
// Hooks expose every diagnostic without coupling the engine to a logger or
// metrics system: WithOnMalformedInput, WithOnAttempt, WithOnClassifierFault,
// WithOnSuppress, WithOnNoMatch, WithOnForward. WithLogger wires them all to
// an *slog.Logger in one step.
//
// # Thread Safety
//
// Engine is safe for concurrent use after configuration is complete. Do not
// call Add or AddFunc after the first Process or Dispatch. No state is
// shared between dispatch runs.
package triage
