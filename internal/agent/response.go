package agent

// Action discriminants understood by the interpreter.
const (
	KindReply       = "reply"
	KindNeedData    = "need_data"
	KindAddEntry    = "addEntry"
	KindUpdateEntry = "updateEntry"
	KindDeleteEntry = "deleteEntry"
	KindNavigate    = "navigate"
)

// Messages shared by the orchestrator and the interpreter.
const (
	msgGreeting       = "Hi Welcome to Expense Tracker! How can I assist you today?"
	msgAuthRequired   = "Authentication required. Please provide userId."
	msgInvalidUser    = "Invalid userId. Please provide a numeric userId."
	msgEmptyMessage   = "Please provide a message."
	msgLLMFailed      = "Sorry, I couldn't process that request. Please try again."
	msgFetchFailed    = "Could not fetch data. Please try again."
	msgAddFailed      = "Failed to add entry. Please try again."
	msgUpdateFailed   = "Failed to update entry. Please try again."
	msgDeleteFailed   = "Failed to delete entry. Please try again."
	msgEntryNotFound  = "I couldn't find that entry. It may have been deleted or belong to another account."
	msgInternalFailed = "Something went wrong. Please try again."
)

// Response is the envelope returned to the client. Passthrough, when set,
// is sent instead of the envelope.
type Response struct {
	Action      string         `json:"action"`
	Reply       string         `json:"reply"`
	Data        any            `json:"data,omitempty"`
	Passthrough map[string]any `json:"-"`
}

// Body returns the value to serialise for the client.
func (r Response) Body() any {
	if r.Passthrough != nil {
		return r.Passthrough
	}
	return r
}

func reply(text string) Response {
	return Response{Action: KindReply, Reply: text}
}

func replyWithData(text string, data any) Response {
	return Response{Action: KindReply, Reply: text, Data: data}
}

func passthrough(raw map[string]any) Response {
	kind, _ := raw["action"].(string)
	return Response{Action: kind, Passthrough: raw}
}
