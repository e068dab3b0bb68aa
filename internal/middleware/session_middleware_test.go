package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

func newSessionRouter(sm *SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/issue", func(c *gin.Context) {
		if err := sm.Issue(c, &models.User{UID: "u1", Email: "ana@example.com", Nombre: "Ana"}); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/protected", sm.RequireSession(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString("userID"),
			"userEmail": c.GetString("userEmail"),
		})
	})
	return router
}

func TestSession_IssueThenVerify(t *testing.T) {
	sm := NewSessionManager("test-signing-key", "http://localhost:8080", zap.NewNop())
	router := newSessionRouter(sm)

	issue := httptest.NewRecorder()
	router.ServeHTTP(issue, httptest.NewRequest(http.MethodGet, "/issue", nil))
	require.Equal(t, http.StatusOK, issue.Code)

	cookies := issue.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"u1"`)
	assert.Contains(t, w.Body.String(), `"userEmail":"ana@example.com"`)
}

func TestSession_MissingCookieIsUnauthorized(t *testing.T) {
	sm := NewSessionManager("test-signing-key", "http://localhost:8080", zap.NewNop())
	router := newSessionRouter(sm)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_TamperedTokenIsUnauthorized(t *testing.T) {
	sm := NewSessionManager("test-signing-key", "http://localhost:8080", zap.NewNop())
	router := newSessionRouter(sm)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_CookieSignedWithDifferentKeyIsRejected(t *testing.T) {
	issuer := NewSessionManager("key-one", "http://localhost:8080", zap.NewNop())
	verifier := NewSessionManager("key-two", "http://localhost:8080", zap.NewNop())

	issueRouter := newSessionRouter(issuer)
	verifyRouter := newSessionRouter(verifier)

	issue := httptest.NewRecorder()
	issueRouter.ServeHTTP(issue, httptest.NewRequest(http.MethodGet, "/issue", nil))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range issue.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	verifyRouter.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// An https base URL must produce Secure cookies; a local http one must not,
// or the browser would drop the cookie during local development.
func TestSession_SecureFlagFollowsBaseURL(t *testing.T) {
	cases := []struct {
		baseURL string
		secure  bool
	}{
		{"https://store.megamoda.example", true},
		{"http://localhost:8080", false},
	}

	for _, tc := range cases {
		sm := NewSessionManager("test-signing-key", tc.baseURL, zap.NewNop())
		router := newSessionRouter(sm)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/issue", nil))
		require.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		for _, c := range cookies {
			if c.Name == SessionCookieName {
				assert.Equal(t, tc.secure, c.Secure, "base URL %s", tc.baseURL)
			}
		}
	}
}

func TestNewSessionManager_EmptyKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSessionManager("", "http://localhost:8080", zap.NewNop())
	})
}
