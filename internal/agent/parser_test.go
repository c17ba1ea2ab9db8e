package agent

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseResponse(t *testing.T) {
	t.Run("fenced_and_bare_parse_identically", func(t *testing.T) {
		bare, err := ParseResponse(`{"action":"reply","reply":"hi"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		fenced, err := ParseResponse("```json\n{\"action\":\"reply\",\"reply\":\"hi\"}\n```")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		untagged, err := ParseResponse("Here you go:\n```\n{\"action\":\"reply\",\"reply\":\"hi\"}\n```\nThanks")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !reflect.DeepEqual(bare, fenced) {
			t.Errorf("fenced result %v differs from bare %v", fenced, bare)
		}
		if !reflect.DeepEqual(bare, untagged) {
			t.Errorf("untagged fence result %v differs from bare %v", untagged, bare)
		}
	})

	t.Run("uppercase_tag", func(t *testing.T) {
		obj, err := ParseResponse("```JSON\n{\"action\":\"navigate\",\"to\":\"/expenses\"}\n```")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if obj["action"] != "navigate" {
			t.Errorf("expected navigate, got %v", obj["action"])
		}
	})

	t.Run("numbers_kept_exact", func(t *testing.T) {
		obj, err := ParseResponse(`{"action":"addEntry","entry":{"amount":1250.50}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entry := obj["entry"].(map[string]any)
		n, ok := entry["amount"].(json.Number)
		if !ok {
			t.Fatalf("expected json.Number, got %T", entry["amount"])
		}
		if n.String() != "1250.50" {
			t.Errorf("expected 1250.50, got %s", n)
		}
	})

	failures := []struct {
		name string
		raw  string
	}{
		{name: "plain_text", raw: "You spent a lot this month."},
		{name: "malformed_json", raw: `{"action": "reply", "reply": }`},
		{name: "array", raw: `[{"action":"reply"}]`},
		{name: "string", raw: `"just a string"`},
		{name: "trailing_garbage", raw: `{"action":"reply","reply":"a"} and more`},
		{name: "empty", raw: ""},
	}
	for _, tt := range failures {
		t.Run("failure_"+tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.raw)
			var pf *ParseFailure
			if !errors.As(err, &pf) {
				t.Fatalf("expected *ParseFailure, got %v", err)
			}
			if pf.Text != tt.raw {
				t.Errorf("expected original text %q, got %q", tt.raw, pf.Text)
			}
		})
	}
}
