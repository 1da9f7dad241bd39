package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vimukti/vimukti-api/internal/models"
	"github.com/vimukti/vimukti-api/internal/services"
	"github.com/vimukti/vimukti-api/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Message         string  `json:"message"`
	EmotionDetected *string `json:"emotion_detected,omitempty"`
	SessionID       string  `json:"session_id"`
}

// Send runs one chat turn for the authenticated user.
func (h *ChatHandler) Send(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Send", "invalid request body", err))
		return
	}

	reply, err := h.svc.SendMessage(c.Request.Context(), user, req.SessionID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Message:   reply,
		SessionID: req.SessionID,
	})
}

// ListMessages returns a session's history oldest-first; a foreign session id
// yields an empty list.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")

	msgs, err := h.svc.ListMessages(c.Request.Context(), user.ID, sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}

	c.JSON(http.StatusOK, msgs)
}
