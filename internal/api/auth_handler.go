package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/core"
	"github.com/jumacaq/Megamoda-store/internal/middleware"
)

// AuthHandler handles the Google OAuth login flow and session lifecycle.
type AuthHandler struct {
	authService core.AuthService
	userService core.UserService
	sessions    *middleware.SessionManager
	logger      *zap.Logger
	// clientURL, when set, is where the browser is sent after a successful
	// login; otherwise the handler answers with the user profile as JSON.
	clientURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AuthService, us core.UserService, sessions *middleware.SessionManager, logger *zap.Logger, clientURL string) *AuthHandler {
	return &AuthHandler{
		authService: as,
		userService: us,
		sessions:    sessions,
		logger:      logger,
		clientURL:   clientURL,
	}
}

// Login handles GET /auth/google/login by redirecting to the Google consent
// screen.
func (h *AuthHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.authService.LoginURL())
}

// HandleOAuthCode finishes the authorization-code flow: exchange the code,
// find or create the user, and establish the session cookie. Invoked by the
// base-URL multiplexer when Google's redirect carries ?code=.
func (h *AuthHandler) HandleOAuthCode(c *gin.Context, code string) {
	profile, err := h.authService.FetchProfile(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("OAuth code exchange failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Could not verify the Google login", Details: err.Error()})
		return
	}

	user, created, err := h.userService.FindOrCreateFromProfile(c.Request.Context(), profile)
	if err != nil {
		h.logger.Error("Failed to resolve user from Google profile", zap.String("subject", profile.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile"})
		return
	}

	if err := h.sessions.Issue(c, user); err != nil {
		h.logger.Error("Failed to issue session", zap.String("uid", user.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to establish session"})
		return
	}

	if created {
		h.logger.Info("New user registered", zap.String("uid", user.UID), zap.String("email", user.Email))
	}

	if h.clientURL != "" {
		c.Redirect(http.StatusFound, h.clientURL)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout handles POST /auth/logout by clearing the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}
