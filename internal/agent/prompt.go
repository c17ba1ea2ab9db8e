package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

const promptIntro = `You are the assistant of an expense tracker. Reply with ONLY one raw JSON object.
No markdown, no explanation outside the JSON.

Data model:
- expense: money spent. Table "expense", amount column "cost", with category and product (subcategory).
- income: money received. Table "source", amount column "amount", labelled by "source".
- savings: money set aside. Table "savings", amount column "amount", with an optional note.

Actions (the "action" field must be one of these):
- "reply": {"action": "reply", "reply": "text"} for greetings, advice and anything that needs no data.
- "need_data": {"action": "need_data", "call": "<call>", "params": {...}} to read a report.
- "addEntry": {"action": "addEntry", "type": "expense" | "income" | "savings", "entry": {...}} to record an entry.
- "updateEntry": {"action": "updateEntry", "type": "expense" | "income" | "savings", "id": number, "updates": {...}}.
- "deleteEntry": {"action": "deleteEntry", "type": "expense" | "income" | "savings", "id": number}.
- "navigate": {"action": "navigate", "to": "/path"} to open a screen in the app.
`

const promptRules = `Entry fields:
- expense: "category", "product" (subcategory, optional), "amount", "date" (YYYY-MM-DD, optional), "note" (optional),
  "is_tax_app" ("yes" | "no", optional), "percentage" (tax percent, optional), "tax_amount" (optional).
- income: "source", "amount", "date" (optional).
- savings: "amount", "date" (optional), "note" (optional).

Rules:
- "amount" must be a bare number such as 250 or 1250.50. No currency symbols, units or thousands separators.
- Resolve relative dates ("today", "yesterday", "this month", "last year") against the current date below.
- Months are numbers 1-12 and years are four digits.
- If the server asks the user to pick a subcategory and the user answers (for example "use Cigarette"),
  send the same addEntry again with every earlier field unchanged and "product" set to the chosen name.
- Never invent ids. Only use ids the user gave you.
- If something essential is missing, ask with a "reply" action instead of guessing.
`

// BuildPrompt renders the model instructions for userText. The output depends
// only on its arguments.
func BuildPrompt(userText string, ac AgentContext) string {
	var b strings.Builder

	b.WriteString(promptIntro)
	b.WriteString("\nneed_data calls (\"call\" must be one of these):\n")
	for _, c := range dataCalls {
		fmt.Fprintf(&b, "- %s %s: %s\n", c.Name, c.Params, c.Description)
	}
	b.WriteString("When month and year are omitted the current month and year are used.\n\n")

	b.WriteString(promptRules)
	b.WriteString("\nExamples:\n")
	for _, ex := range promptExamples(ac) {
		fmt.Fprintf(&b, "User: %s\n%s\n\n", ex.text, ex.json)
	}

	ctxJSON, _ := json.MarshalIndent(ac, "", "  ")
	fmt.Fprintf(&b, "Current date: %s (month %d, year %d)\n", ac.CurrentDate, ac.CurrentMonth, ac.CurrentYear)
	fmt.Fprintf(&b, "Context:\n%s\n\n", ctxJSON)
	fmt.Fprintf(&b, "User message:\n%s\n", userText)

	return b.String()
}

type promptExample struct {
	text string
	json string
}

func promptExamples(ac AgentContext) []promptExample {
	prevMonth, prevYear := ac.CurrentMonth-1, ac.CurrentYear
	if prevMonth == 0 {
		prevMonth, prevYear = 12, prevYear-1
	}

	return []promptExample{
		{
			text: "How much did I spend this month?",
			json: fmt.Sprintf(`{"action": "need_data", "call": "expense_monthly", "params": {"month": %d, "year": %d}}`, ac.CurrentMonth, ac.CurrentYear),
		},
		{
			text: "Show my income for last month",
			json: fmt.Sprintf(`{"action": "need_data", "call": "income_monthly", "params": {"period": "%04d-%02d"}}`, prevYear, prevMonth),
		},
		{
			text: "How much did I spend on food this year?",
			json: fmt.Sprintf(`{"action": "need_data", "call": "category_year_total", "params": {"category": "Food", "year": %d}}`, ac.CurrentYear),
		},
		{
			text: "What categories do I have?",
			json: `{"action": "need_data", "call": "list_categories", "params": {}}`,
		},
		{
			text: "Add 250 for snacks under food",
			json: fmt.Sprintf(`{"action": "addEntry", "type": "expense", "entry": {"category": "Food", "product": "Snacks", "amount": 250, "date": "%s"}}`, ac.CurrentDate),
		},
		{
			text: "I bought a phone for 20000 with 18% GST",
			json: fmt.Sprintf(`{"action": "addEntry", "type": "expense", "entry": {"category": "Electronics", "product": "Phone", "amount": 20000, "date": "%s", "is_tax_app": "yes", "percentage": 18}}`, ac.CurrentDate),
		},
		{
			text: "Got my salary of 50000 today",
			json: fmt.Sprintf(`{"action": "addEntry", "type": "income", "entry": {"source": "Salary", "amount": 50000, "date": "%s"}}`, ac.CurrentDate),
		},
		{
			text: "Change expense 12 to 300",
			json: `{"action": "updateEntry", "type": "expense", "id": 12, "updates": {"amount": 300}}`,
		},
		{
			text: "Delete savings entry 7",
			json: `{"action": "deleteEntry", "type": "savings", "id": 7}`,
		},
		{
			text: "Open my expenses page",
			json: `{"action": "navigate", "to": "/expenses"}`,
		},
		{
			text: "Hello",
			json: fmt.Sprintf(`{"action": "reply", "reply": "Hi %s! How can I help with your finances today?"}`, ac.UserName),
		},
	}
}
