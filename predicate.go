package triage

import "context"

// Predicate is a cheap structural test against an event. Predicates let a
// classifier decline without doing any real decoding work.
type Predicate interface {
	Match(evt Event) bool
}

// HasFields returns a Predicate that matches when all paths exist.
func HasFields(paths ...string) Predicate {
	return hasFields{paths: paths}
}

type hasFields struct {
	paths []string
}

func (p hasFields) Match(evt Event) bool {
	for _, path := range p.paths {
		if !evt.HasField(path) {
			return false
		}
	}
	return true
}

// FieldEquals returns a Predicate that matches when the path exists and
// equals the given string value.
func FieldEquals(path, value string) Predicate {
	return fieldEquals{path: path, value: value}
}

type fieldEquals struct {
	path  string
	value string
}

func (p fieldEquals) Match(evt Event) bool {
	s, ok := evt.GetString(p.path)
	return ok && s == p.value
}

// And returns a Predicate that matches when all predicates match.
func And(ps ...Predicate) Predicate {
	return and{ps: ps}
}

type and struct {
	ps []Predicate
}

func (p and) Match(evt Event) bool {
	for _, pred := range p.ps {
		if !pred.Match(evt) {
			return false
		}
	}
	return true
}

// Or returns a Predicate that matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return or{ps: ps}
}

type or struct {
	ps []Predicate
}

func (p or) Match(evt Event) bool {
	for _, pred := range p.ps {
		if pred.Match(evt) {
			return true
		}
	}
	return false
}

// When builds a classifier that declines events the predicate rejects and
// delegates the rest to fn. This is the usual shape of a format-specific
// classifier: a structural gate in front of the message builder.
func When(p Predicate, fn func(ctx context.Context, evt Event) (Result, error)) Classifier {
	return ClassifierFunc(func(ctx context.Context, evt Event) (Result, error) {
		if !p.Match(evt) {
			return NoMatch(), nil
		}
		return fn(ctx, evt)
	})
}

// Ignore builds a classifier that suppresses events the predicate matches
// and declines everything else. Use it for recognized-but-noisy formats that
// should never notify.
func Ignore(p Predicate) Classifier {
	return ClassifierFunc(func(ctx context.Context, evt Event) (Result, error) {
		if !p.Match(evt) {
			return NoMatch(), nil
		}
		return Suppress(), nil
	})
}
