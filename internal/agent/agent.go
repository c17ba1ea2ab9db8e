// Package agent turns free-form user text into finance operations: it builds
// the model prompt, reads the model's JSON answer, and interprets it against
// the database.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/llm"
	"github.com/Shiva143-debug/backend-exp/internal/logger"
)

const logPreviewLen = 500

// Request is the body of an agent call. UserID may arrive as a JSON number
// or a numeric string.
type Request struct {
	UserID   any    `json:"userId" swaggertype:"string" example:"42"`
	UserName string `json:"userName,omitempty" example:"Asha"`
	Message  string `json:"message" example:"How much did I spend this month?"`
	ClientIP string `json:"-"`
}

// Agent runs one request through prompt, model, parser and interpreter.
type Agent struct {
	gen     llm.Generator
	interp  *Interpreter
	timeout time.Duration
	now     func() time.Time
}

// New creates an Agent. now defaults to time.Now.
func New(gen llm.Generator, interp *Interpreter, timeout time.Duration, now func() time.Time) *Agent {
	if now == nil {
		now = time.Now
	}
	return &Agent{gen: gen, interp: interp, timeout: timeout, now: now}
}

// Handle answers req and reports the HTTP status to send with it. Every
// path produces a Response with an action field.
func (a *Agent) Handle(ctx context.Context, req Request) (Response, int) {
	log := logger.Get()

	userID, err := parseUserID(req.UserID)
	if err != nil {
		if errors.Is(err, errMissingUserID) {
			return reply(msgAuthRequired), apperrors.ErrUnauthorized.StatusCode
		}
		return reply(msgInvalidUser), apperrors.ErrInvalidInput.StatusCode
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return reply(msgEmptyMessage), http.StatusOK
	}

	ac := NewContext(userID, req.UserName, a.now())
	ac.ClientIP = req.ClientIP
	log.Infow("agent request", "user_id", userID, "message", preview(message))

	raw, err := a.generate(ctx, BuildPrompt(message, ac))
	if err != nil {
		log.Errorw("llm call failed", "user_id", userID, "error", err)
		return reply(msgLLMFailed), apperrors.ErrLLMUnavailable.StatusCode
	}
	log.Debugw("llm response", "user_id", userID, "raw", preview(raw))

	parsed, err := ParseResponse(raw)
	if err != nil {
		log.Warnw("llm response was not JSON, replying with raw text", "user_id", userID, "error", err)
		return reply(raw), http.StatusOK
	}

	action, err := DecodeAction(parsed)
	if err != nil {
		var ae *ActionError
		if errors.As(err, &ae) {
			log.Warnw("invalid action from llm", "user_id", userID, "kind", ae.Kind, "error", ae.Err)
			return reply(ae.Reply), http.StatusOK
		}
		log.Errorw("action decode failed", "user_id", userID, "error", err)
		return reply(msgInternalFailed), http.StatusOK
	}
	log.Infow("agent action", "user_id", userID, "kind", action.Kind())

	return a.interp.Interpret(ctx, ac, action), http.StatusOK
}

func (a *Agent) generate(ctx context.Context, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.gen.Generate(ctx, prompt)
}

var (
	errMissingUserID = errors.New("userId is required")
	errInvalidUserID = errors.New("userId must be a positive integer")
)

func parseUserID(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, errMissingUserID
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, errMissingUserID
		}
	case json.Number:
		if x.String() == "" {
			return 0, errMissingUserID
		}
	}

	id, ok := asInt64(v)
	if !ok || id <= 0 {
		return 0, errInvalidUserID
	}
	return id, nil
}

func preview(s string) string {
	if len(s) <= logPreviewLen {
		return s
	}
	return s[:logPreviewLen] + "...(" + strconv.Itoa(len(s)) + " bytes)"
}
