package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shiva143-debug/backend-exp/internal/agent"
)

// AgentRunner answers one natural-language request.
type AgentRunner interface {
	Handle(ctx context.Context, req agent.Request) (agent.Response, int)
}

// AgentHandler exposes the natural-language agent.
type AgentHandler struct {
	agent AgentRunner
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(a AgentRunner) *AgentHandler {
	return &AgentHandler{agent: a}
}

// AgentReply is the envelope every agent call answers with.
type AgentReply struct {
	Action string `json:"action" example:"reply"`
	Reply  string `json:"reply" example:"Your total expenses for December 2025: ₹1200.00"`
	Data   any    `json:"data,omitempty"`
}

// Handle runs a message through the agent
// @Summary     Ask the agent
// @Description Interpret a free-form message and answer, query or modify the user's ledgers
// @Tags        agent
// @Accept      json
// @Produce     json
// @Param       request body agent.Request true "User ID and message"
// @Success     200 {object} AgentReply "Reply envelope or a client-side action"
// @Failure     400 {object} AgentReply "Invalid userId"
// @Failure     401 {object} AgentReply "Missing userId"
// @Failure     502 {object} AgentReply "Language model unavailable"
// @Router      /agent [post]
func (h *AgentHandler) Handle(c *gin.Context) {
	var req agent.Request
	// An empty body carries no userId and is answered by the agent as such.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, AgentReply{Action: agent.KindReply, Reply: "Invalid request body."})
		return
	}
	req.ClientIP = c.ClientIP()

	resp, status := h.agent.Handle(c.Request.Context(), req)
	c.JSON(status, resp.Body())
}

// Health reports that the agent routes are mounted
// @Summary     Agent health
// @Tags        agent
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /agent/health [get]
func (h *AgentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Agent service is running"})
}
