package triage

import (
	"context"

	"github.com/tidwall/sjson"
)

// Generic returns the catch-all classifier. It matches any event, structured
// or not, and wraps the raw payload in a plain {"text": ...} message. A
// chain that ends with it never exhausts.
func Generic() Classifier {
	return ClassifierFunc(func(ctx context.Context, evt Event) (Result, error) {
		msg, err := sjson.SetBytes([]byte(`{}`), "text", string(evt.Raw()))
		if err != nil {
			return NoMatch(), err
		}
		return Match(msg), nil
	})
}
