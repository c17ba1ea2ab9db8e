package agent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Shiva143-debug/backend-exp/internal/models"
)

func decode(t *testing.T, raw string) (Action, error) {
	t.Helper()
	obj, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("fixture is not valid JSON: %v", err)
	}
	return DecodeAction(obj)
}

func TestDecodeAction(t *testing.T) {
	t.Run("reply", func(t *testing.T) {
		a, err := decode(t, `{"action":"reply","reply":"hi"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r, ok := a.(ReplyAction); !ok || r.Reply != "hi" {
			t.Errorf("expected ReplyAction{hi}, got %#v", a)
		}
	})

	t.Run("missing_action_greets", func(t *testing.T) {
		a, err := decode(t, `{"reply":"hi"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r, ok := a.(ReplyAction); !ok || r.Reply != msgGreeting {
			t.Errorf("expected greeting, got %#v", a)
		}
	})

	t.Run("non_string_action_greets", func(t *testing.T) {
		a, err := decode(t, `{"action":5}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r, ok := a.(ReplyAction); !ok || r.Reply != msgGreeting {
			t.Errorf("expected greeting, got %#v", a)
		}
	})

	t.Run("need_data", func(t *testing.T) {
		a, err := decode(t, `{"action":"need_data","call":"expense_monthly","params":{"month":3,"year":2024}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		nd, ok := a.(NeedDataAction)
		if !ok {
			t.Fatalf("expected NeedDataAction, got %T", a)
		}
		if nd.Call != "expense_monthly" || nd.Params["month"] != json.Number("3") {
			t.Errorf("unexpected action %#v", nd)
		}
	})

	t.Run("need_data_unknown_call", func(t *testing.T) {
		_, err := decode(t, `{"action":"need_data","call":"drop_tables"}`)
		var ae *ActionError
		if !errors.As(err, &ae) {
			t.Fatalf("expected *ActionError, got %v", err)
		}
		if ae.Reply == "" {
			t.Error("expected a clarifying reply")
		}
	})

	t.Run("add_entry_defaults_to_expense", func(t *testing.T) {
		a, err := decode(t, `{"action":"addEntry","entry":{"category":"Food","amount":300}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ae, ok := a.(AddEntryAction)
		if !ok || ae.Type != models.EntryTypeExpense {
			t.Errorf("expected expense AddEntryAction, got %#v", a)
		}
	})

	t.Run("add_entry_type_from_entry", func(t *testing.T) {
		a, err := decode(t, `{"action":"addEntry","entry":{"type":"Income","source":"Salary","amount":300}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ae := a.(AddEntryAction); ae.Type != models.EntryTypeIncome {
			t.Errorf("expected income, got %s", ae.Type)
		}
	})

	t.Run("add_entry_without_entry", func(t *testing.T) {
		_, err := decode(t, `{"action":"addEntry","entry":"300 for food"}`)
		var ae *ActionError
		if !errors.As(err, &ae) {
			t.Fatalf("expected *ActionError, got %v", err)
		}
	})

	t.Run("update_entry_string_id", func(t *testing.T) {
		a, err := decode(t, `{"action":"updateEntry","type":"savings","id":"12","updates":{"amount":50}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u := a.(UpdateEntryAction)
		if u.ID != 12 || u.Type != models.EntryTypeSavings {
			t.Errorf("unexpected action %#v", u)
		}
	})

	invalid := []struct {
		name string
		raw  string
	}{
		{name: "update_missing_id", raw: `{"action":"updateEntry","updates":{"amount":50}}`},
		{name: "update_empty_updates", raw: `{"action":"updateEntry","id":3,"updates":{}}`},
		{name: "update_bad_type", raw: `{"action":"updateEntry","type":"transfer","id":3,"updates":{"amount":1}}`},
		{name: "delete_fractional_id", raw: `{"action":"deleteEntry","id":1.5}`},
		{name: "delete_negative_id", raw: `{"action":"deleteEntry","id":-4}`},
		{name: "reply_without_text", raw: `{"action":"reply"}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.raw)
			var ae *ActionError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *ActionError, got %v", err)
			}
			if ae.Reply == "" {
				t.Error("expected a clarifying reply")
			}
		})
	}

	t.Run("navigate_and_unknown_keep_raw", func(t *testing.T) {
		a, err := decode(t, `{"action":"navigate","to":"/savings"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n, ok := a.(NavigateAction); !ok || n.Raw["to"] != "/savings" {
			t.Errorf("expected NavigateAction with raw object, got %#v", a)
		}

		a, err = decode(t, `{"action":"showChart","chart":"pie"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u, ok := a.(UnknownAction); !ok || u.Kind() != "showChart" {
			t.Errorf("expected UnknownAction showChart, got %#v", a)
		}
	})
}
