package triage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func predicateEvent(t *testing.T, raw string) Event {
	t.Helper()
	evt, err := Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected malformed input: %v", err)
	}
	return evt
}

func TestHasFields(t *testing.T) {
	evt := predicateEvent(t, `{
		"source": "aws.rds",
		"detail-type": "RDS DB Instance Event",
		"detail": {"EventID": "RDS-EVENT-0006"}
	}`)

	t.Run("matches when all fields present", func(t *testing.T) {
		if !HasFields("source", "detail-type").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("matches nested fields", func(t *testing.T) {
		if !HasFields("source", "detail.EventID").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("fails when any field missing", func(t *testing.T) {
		if HasFields("source", "missing").Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("matches with no fields (vacuous truth)", func(t *testing.T) {
		if !HasFields().Match(evt) {
			t.Error("expected match for empty field list")
		}
	})

	t.Run("fails against unstructured events", func(t *testing.T) {
		raw, err := Normalize([]byte("plain text"))
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("err = %v, want ErrMalformedInput", err)
		}
		if HasFields("source").Match(raw) {
			t.Error("expected no match")
		}
	})
}

func TestFieldEquals(t *testing.T) {
	evt := predicateEvent(t, `{
		"Type": "Notification",
		"source": "aws.rds",
		"count": 42
	}`)

	t.Run("matches equal string value", func(t *testing.T) {
		if !FieldEquals("source", "aws.rds").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("fails on different value", func(t *testing.T) {
		if FieldEquals("source", "aws.ses").Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on non-string value", func(t *testing.T) {
		if FieldEquals("count", "42").Match(evt) {
			t.Error("expected no match for number field")
		}
	})

	t.Run("fails on missing field", func(t *testing.T) {
		if FieldEquals("missing", "x").Match(evt) {
			t.Error("expected no match")
		}
	})
}

func TestAndOr(t *testing.T) {
	evt := predicateEvent(t, `{"source": "aws.rds", "region": "us-east-1"}`)

	t.Run("And requires every predicate", func(t *testing.T) {
		if !And(HasFields("source"), FieldEquals("region", "us-east-1")).Match(evt) {
			t.Error("expected match")
		}
		if And(HasFields("source"), HasFields("missing")).Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("Or requires any predicate", func(t *testing.T) {
		if !Or(HasFields("missing"), FieldEquals("source", "aws.rds")).Match(evt) {
			t.Error("expected match")
		}
		if Or(HasFields("missing"), FieldEquals("source", "aws.ses")).Match(evt) {
			t.Error("expected no match")
		}
	})
}

func TestWhen(t *testing.T) {
	t.Run("declines without calling fn", func(t *testing.T) {
		called := false
		c := When(HasFields("missing"), func(ctx context.Context, evt Event) (Result, error) {
			called = true
			return Match(json.RawMessage(`{"text":"x"}`)), nil
		})

		res, err := c.Parse(context.Background(), predicateEvent(t, `{"source":"x"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.kind != resultNoMatch {
			t.Errorf("kind = %v, want no match", res.kind)
		}
		if called {
			t.Error("fn must not run when the predicate rejects")
		}
	})

	t.Run("delegates when the predicate matches", func(t *testing.T) {
		c := When(FieldEquals("source", "aws.rds"), func(ctx context.Context, evt Event) (Result, error) {
			return Match(json.RawMessage(`{"text":"rds"}`)), nil
		})

		res, err := c.Parse(context.Background(), predicateEvent(t, `{"source":"aws.rds"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.kind != resultMatch || string(res.message) != `{"text":"rds"}` {
			t.Errorf("result = %+v, want the rds match", res)
		}
	})
}

func TestIgnore(t *testing.T) {
	c := Ignore(FieldEquals("detail-type", "Health Check"))

	t.Run("suppresses matched events", func(t *testing.T) {
		res, err := c.Parse(context.Background(), predicateEvent(t, `{"detail-type":"Health Check"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.kind != resultSuppress {
			t.Errorf("kind = %v, want suppress", res.kind)
		}
	})

	t.Run("declines everything else", func(t *testing.T) {
		res, err := c.Parse(context.Background(), predicateEvent(t, `{"detail-type":"Deploy"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.kind != resultNoMatch {
			t.Errorf("kind = %v, want no match", res.kind)
		}
	})
}
