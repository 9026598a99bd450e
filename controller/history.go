package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/USBABC1/v60/logic"
)

// HistoryController handles HTTP requests for session history
type HistoryController struct {
	historyLogic *logic.HistoryLogic
}

func NewHistoryController(historyLogic *logic.HistoryLogic) *HistoryController {
	return &HistoryController{historyLogic: historyLogic}
}

// GetHistory handles GET /conversation/history
func (c *HistoryController) GetHistory(ctx *gin.Context) {
	sessionID := ctx.Query("sessionId")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	messages, err := c.historyLogic.GetSessionMessages(ctx.Request.Context(), sessionID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// DeleteHistory handles DELETE /conversation/history
func (c *HistoryController) DeleteHistory(ctx *gin.Context) {
	sessionID := ctx.Query("sessionId")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	if err := c.historyLogic.ClearSession(ctx.Request.Context(), sessionID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
