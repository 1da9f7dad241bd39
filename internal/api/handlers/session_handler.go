package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vimukti/vimukti-api/internal/models"
	"github.com/vimukti/vimukti-api/internal/services"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create opens an empty session before the first message is sent.
func (h *SessionHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	session, err := h.svc.Start(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// List returns the caller's sessions, most recently active first.
func (h *SessionHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	sessions, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}

	c.JSON(http.StatusOK, sessions)
}
