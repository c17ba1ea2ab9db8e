package agent

import "time"

// AgentContext describes who is asking and when. It is built fresh for every
// request and never outlives it.
type AgentContext struct {
	UserID       int64  `json:"userId"`
	UserName     string `json:"userName"`
	CurrentDate  string `json:"currentDate"`
	CurrentMonth int    `json:"currentMonth"`
	CurrentYear  int    `json:"currentYear"`

	// ClientIP is recorded in the audit log only.
	ClientIP string `json:"-"`

	now time.Time
}

// NewContext builds the context for userID as of now.
func NewContext(userID int64, userName string, now time.Time) AgentContext {
	if userName == "" {
		userName = "User"
	}
	return AgentContext{
		UserID:       userID,
		UserName:     userName,
		CurrentDate:  now.Format(time.DateOnly),
		CurrentMonth: int(now.Month()),
		CurrentYear:  now.Year(),
		now:          now,
	}
}

// Today returns the request's current date at midnight.
func (c AgentContext) Today() time.Time {
	if c.now.IsZero() {
		c.now = time.Now()
	}
	y, m, d := c.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
