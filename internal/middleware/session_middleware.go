package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "megamoda_session"

const sessionTTL = 24 * time.Hour

// ErrorResponse mirrors the one in internal/api to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionManager issues and verifies the signed session cookie that carries a
// user's identity between page requests. Identity is request-scoped: the
// middleware repopulates the gin context on every request from the cookie,
// and nothing about the current user lives in process-wide state.
type SessionManager struct {
	signingKey []byte
	secure     bool
	logger     *zap.Logger
}

// NewSessionManager creates a SessionManager with the given HMAC signing key.
// baseURL decides the cookie's Secure flag: an https origin marks the cookie
// Secure so it never travels over plaintext.
func NewSessionManager(signingKey, baseURL string, logger *zap.Logger) *SessionManager {
	if signingKey == "" {
		panic("SessionManager requires a non-empty signing key")
	}
	if logger == nil {
		panic("SessionManager requires a non-nil zap.Logger instance")
	}
	return &SessionManager{
		signingKey: []byte(signingKey),
		secure:     strings.HasPrefix(baseURL, "https://"),
		logger:     logger,
	}
}

// Issue sets a fresh session cookie for the given user on the response.
func (m *SessionManager) Issue(c *gin.Context, user *models.User) error {
	claims := jwt.MapClaims{
		"sub":     user.UID,
		"email":   user.Email,
		"name":    user.Nombre,
		"picture": user.Foto,
		"exp":     time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}
	c.SetCookie(SessionCookieName, signed, int(sessionTTL.Seconds()), "/", "", m.secure, true)
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// RequireSession is a gin middleware that verifies the session cookie and
// sets "userID", "userEmail", "userName" and "userPhoto" in the context for
// downstream handlers. Requests without a valid session get a 401.
func (m *SessionManager) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.signingKey, nil
		})
		if err != nil || !token.Valid {
			m.logger.Debug("Session token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired session"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid session claims"})
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid session subject"})
			return
		}

		c.Set("userID", sub)
		if email, ok := claims["email"].(string); ok {
			c.Set("userEmail", email)
		}
		if name, ok := claims["name"].(string); ok {
			c.Set("userName", name)
		}
		if picture, ok := claims["picture"].(string); ok {
			c.Set("userPhoto", picture)
		}

		c.Next()
	}
}
