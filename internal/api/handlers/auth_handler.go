package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vimukti/vimukti-api/internal/services"
)

type AuthHandler struct {
	svc         services.AuthService
	frontendURL string
	log         *logrus.Logger
}

func NewAuthHandler(svc services.AuthService, frontendURL string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, frontendURL: frontendURL, log: log}
}

// LoginGoogle sends the browser to the Google consent screen.
func (h *AuthHandler) LoginGoogle(c *gin.Context) {
	url, err := h.svc.LoginURL(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback finishes the OAuth handshake and hands the session token to
// the frontend via redirect. Failures redirect with an error flag rather
// than rendering an API error, since the caller is a browser.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	_, token, err := h.svc.HandleGoogleCallback(c.Request.Context(), code, state)
	if err != nil {
		h.log.WithError(err).Error("oauth callback failed")
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/?error=oauth_failed")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback?session_token="+token)
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
