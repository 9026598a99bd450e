package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/USBABC1/v60/logic"
)

// SnapshotController handles HTTP requests for saved conversations
type SnapshotController struct {
	snapshotLogic *logic.SnapshotLogic
}

func NewSnapshotController(snapshotLogic *logic.SnapshotLogic) *SnapshotController {
	return &SnapshotController{snapshotLogic: snapshotLogic}
}

// Save handles POST /snapshots
func (c *SnapshotController) Save(ctx *gin.Context) {
	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	type Request struct {
		SessionID string `json:"session_id" binding:"required"`
		Name      string `json:"name" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Session ID e nome são obrigatórios."})
		return
	}

	sc, err := c.snapshotLogic.Save(ctx.Request.Context(), userID, req.SessionID, req.Name)
	if err != nil {
		var conflict *logic.ConflictError
		if errors.As(err, &conflict) {
			ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": conflict.Message})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, sc)
}

// List handles GET /snapshots, optionally narrowed to one id via ?id=
func (c *SnapshotController) List(ctx *gin.Context) {
	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	if idParam := ctx.Query("id"); idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid saved conversation ID"})
			return
		}
		sc, err := c.snapshotLogic.Get(ctx.Request.Context(), userID, id)
		if err != nil {
			var notFound *logic.NotFoundError
			if errors.As(err, &notFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Message})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, sc)
		return
	}

	convos, err := c.snapshotLogic.List(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, convos)
}

// Load handles POST /snapshots/load, returning the session to resume
func (c *SnapshotController) Load(ctx *gin.Context) {
	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	type Request struct {
		ID uint64 `json:"id" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID da conversa salva é obrigatório."})
		return
	}

	sessionID, err := c.snapshotLogic.Load(ctx.Request.Context(), userID, req.ID)
	if err != nil {
		var notFound *logic.NotFoundError
		if errors.As(err, &notFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Message})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "session_id": sessionID})
}

// Delete handles DELETE /snapshots?id=
func (c *SnapshotController) Delete(ctx *gin.Context) {
	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	idParam := ctx.Query("id")
	if idParam == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID da conversa salva é obrigatório."})
		return
	}
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid saved conversation ID"})
		return
	}

	wasActive, err := c.snapshotLogic.Delete(ctx.Request.Context(), userID, id, ctx.Query("activeSessionId"))
	if err != nil {
		var notFound *logic.NotFoundError
		if errors.As(err, &notFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Message})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "was_active": wasActive})
}
