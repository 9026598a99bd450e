package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/USBABC1/v60/logic"
)

// AgentController handles HTTP requests for conversation turns
type AgentController struct {
	agentLogic *logic.AgentLogic
}

func NewAgentController(agentLogic *logic.AgentLogic) *AgentController {
	return &AgentController{agentLogic: agentLogic}
}

// HandleMessage handles POST /conversation/message
func (c *AgentController) HandleMessage(ctx *gin.Context) {
	type Request struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" binding:"required"`
		Context   struct {
			Path string `json:"path" binding:"required"`
		} `json:"context" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A missing session id starts a fresh conversation
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result := c.agentLogic.HandleMessage(ctx.Request.Context(), sessionID, req.Message, req.Context.Path)

	type Response struct {
		SessionID string        `json:"session_id"`
		Response  string        `json:"response"`
		Action    *logic.Action `json:"action,omitempty"`
	}
	ctx.JSON(http.StatusOK, Response{
		SessionID: sessionID,
		Response:  result.Response,
		Action:    result.Action,
	})
}
