package agent

import (
	"context"
	"strings"

	"github.com/Shiva143-debug/backend-exp/internal/database"
	"github.com/Shiva143-debug/backend-exp/internal/logger"
)

// Auditor records writes made on a user's behalf.
type Auditor interface {
	Log(userID int64, action, resourceType string, resourceID int64, ipAddress string, changes map[string]any)
}

// Interpreter executes decoded actions against the query gateway.
type Interpreter struct {
	gw       database.Gateway
	audit    Auditor
	currency string
}

// NewInterpreter creates an Interpreter. audit may be nil.
func NewInterpreter(gw database.Gateway, audit Auditor, currency string) *Interpreter {
	return &Interpreter{gw: gw, audit: audit, currency: currency}
}

// Interpret runs action for the user in ac and returns the client response.
// Failures are reported as reply envelopes; it never returns an error.
func (in *Interpreter) Interpret(ctx context.Context, ac AgentContext, action Action) Response {
	switch a := action.(type) {
	case ReplyAction:
		return reply(a.Reply)
	case NeedDataAction:
		return in.needData(ctx, ac, a)
	case AddEntryAction:
		return in.addEntry(ctx, ac, a)
	case UpdateEntryAction:
		return in.updateEntry(ctx, ac, a)
	case DeleteEntryAction:
		return in.deleteEntry(ctx, ac, a)
	case NavigateAction:
		return passthrough(a.Raw)
	case UnknownAction:
		return passthrough(a.Raw)
	default:
		logger.Get().Errorw("unhandled action type", "kind", action.Kind())
		return reply(msgInternalFailed)
	}
}

func (in *Interpreter) reports() *reports {
	return &reports{q: in.gw, currency: in.currency}
}

func (in *Interpreter) needData(ctx context.Context, ac AgentContext, a NeedDataAction) Response {
	call, ok := lookupCall(a.Call)
	if !ok {
		return reply("I can't look that up yet. Try asking about your expenses, income, savings or categories.")
	}

	month, year, err := ResolvePeriod(a.Params, ac.Today())
	if err != nil {
		return reply("Please provide a valid month (1-12) and year.")
	}

	q := reportQuery{
		UserID:   ac.UserID,
		Month:    month,
		Year:     year,
		Category: asString(a.Params["category"]),
		Type:     strings.ToLower(asString(a.Params["type"])),
	}
	if limit, ok := asInt(a.Params["limit"]); ok {
		q.Limit = limit
	}

	resp, err := call.run(ctx, in.reports(), q)
	if err != nil {
		logger.Get().Errorw("need_data call failed",
			"call", call.Name,
			"user_id", ac.UserID,
			"error", err,
		)
		return reply(msgFetchFailed)
	}
	return resp
}

func (in *Interpreter) record(ac AgentContext, action, resourceType string, id int64, changes map[string]any) {
	if in.audit == nil {
		return
	}
	if changes == nil {
		changes = map[string]any{}
	}
	changes["via"] = "agent"
	in.audit.Log(ac.UserID, action, resourceType, id, ac.ClientIP, changes)
}
