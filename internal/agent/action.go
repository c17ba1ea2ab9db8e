package agent

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shiva143-debug/backend-exp/internal/models"
	appvalidator "github.com/Shiva143-debug/backend-exp/internal/validator"
)

// Action is one decoded model instruction.
type Action interface {
	Kind() string
}

// ReplyAction answers the user directly.
type ReplyAction struct {
	Reply string `validate:"required"`
}

// NeedDataAction asks for a named read-only report.
type NeedDataAction struct {
	Call   string `validate:"required,need_data_call"`
	Params map[string]any
}

// AddEntryAction records a new expense, income or savings entry. The entry
// fields stay loosely typed; the interpreter resolves them step by step.
type AddEntryAction struct {
	Type  models.EntryType `validate:"entry_type"`
	Entry map[string]any   `validate:"required"`
}

// UpdateEntryAction changes the given fields of an existing entry.
type UpdateEntryAction struct {
	ID      int64            `validate:"gt=0"`
	Type    models.EntryType `validate:"entry_type"`
	Updates map[string]any   `validate:"required,min=1"`
}

// DeleteEntryAction removes an entry.
type DeleteEntryAction struct {
	ID   int64            `validate:"gt=0"`
	Type models.EntryType `validate:"entry_type"`
}

// NavigateAction is forwarded to the client untouched.
type NavigateAction struct {
	Raw map[string]any
}

// UnknownAction carries a discriminant the server does not know.
type UnknownAction struct {
	Raw map[string]any
}

func (ReplyAction) Kind() string       { return KindReply }
func (NeedDataAction) Kind() string    { return KindNeedData }
func (AddEntryAction) Kind() string    { return KindAddEntry }
func (UpdateEntryAction) Kind() string { return KindUpdateEntry }
func (DeleteEntryAction) Kind() string { return KindDeleteEntry }
func (NavigateAction) Kind() string    { return KindNavigate }
func (a UnknownAction) Kind() string   { k, _ := a.Raw["action"].(string); return k }

// ActionError reports a decoded action whose fields are missing or mistyped.
// Reply is safe to show to the user.
type ActionError struct {
	Kind  string
	Reply string
	Err   error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s action: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid %s action", e.Kind)
}

func (e *ActionError) Unwrap() error { return e.Err }

var actionValidator = newActionValidator()

func newActionValidator() *validator.Validate {
	v := appvalidator.New()
	_ = v.RegisterValidation("need_data_call", func(fl validator.FieldLevel) bool {
		_, ok := lookupCall(fl.Field().String())
		return ok
	})
	return v
}

// DecodeAction turns a parsed model object into a typed Action. An object
// without a string "action" field decodes to the greeting reply.
func DecodeAction(raw map[string]any) (Action, error) {
	kind, ok := raw["action"].(string)
	if !ok || strings.TrimSpace(kind) == "" {
		return ReplyAction{Reply: msgGreeting}, nil
	}

	var (
		action Action
		reply  string
	)
	switch kind {
	case KindReply:
		a := ReplyAction{Reply: replyText(raw["reply"])}
		action, reply = a, msgGreeting
	case KindNeedData:
		a := NeedDataAction{Call: asString(raw["call"]), Params: asMap(raw["params"])}
		action, reply = a, "I can't look that up yet. Try asking about your expenses, income, savings or categories."
	case KindAddEntry:
		entry := asMap(raw["entry"])
		a := AddEntryAction{Type: entryType(raw["type"], entry), Entry: entry}
		action, reply = a, "I couldn't understand the entry. Please tell me the amount and what it was for."
	case KindUpdateEntry:
		id, _ := asInt64(raw["id"])
		a := UpdateEntryAction{ID: id, Type: entryType(raw["type"], nil), Updates: asMap(raw["updates"])}
		action, reply = a, "Please tell me which entry to update and what to change."
	case KindDeleteEntry:
		id, _ := asInt64(raw["id"])
		a := DeleteEntryAction{ID: id, Type: entryType(raw["type"], nil)}
		action, reply = a, "Please tell me which entry to delete."
	case KindNavigate:
		return NavigateAction{Raw: raw}, nil
	default:
		return UnknownAction{Raw: raw}, nil
	}

	if err := actionValidator.Struct(action); err != nil {
		return nil, &ActionError{Kind: kind, Reply: reply, Err: err}
	}
	return action, nil
}

// replyText renders the model's reply field. Non-string values are shown
// as-is rather than dropped.
func replyText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// entryType reads the ledger from the action or, failing that, the entry
// itself. Absent means expense.
func entryType(v any, entry map[string]any) models.EntryType {
	s := strings.ToLower(asString(v))
	if s == "" && entry != nil {
		s = strings.ToLower(asString(entry["type"]))
	}
	if s == "" {
		return models.EntryTypeExpense
	}
	return models.EntryType(s)
}
