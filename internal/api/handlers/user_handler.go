package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vimukti/vimukti-api/internal/services"
	"github.com/vimukti/vimukti-api/internal/utils"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type OnboardingRequest struct {
	Responses            map[string]any `json:"responses" binding:"required"`
	PersonalityArchetype string         `json:"personality_archetype" binding:"required"`
}

func (h *UserHandler) CompleteOnboarding(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.CompleteOnboarding", "invalid request body", err))
		return
	}

	if err := h.svc.CompleteOnboarding(c.Request.Context(), user.ID, req.Responses, req.PersonalityArchetype); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Onboarding completed",
		"archetype": req.PersonalityArchetype,
	})
}
