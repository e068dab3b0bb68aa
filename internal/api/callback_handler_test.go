package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/core"
	"github.com/jumacaq/Megamoda-store/internal/middleware"
	"github.com/jumacaq/Megamoda-store/internal/models"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) LoginURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *AuthServiceMock) FetchProfile(ctx context.Context, code string) (*core.GoogleProfile, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*core.GoogleProfile)
	return p, args.Error(1)
}

type UserServiceMock struct{ mock.Mock }

func (m *UserServiceMock) FindOrCreateFromProfile(ctx context.Context, profile *core.GoogleProfile) (*models.User, bool, error) {
	args := m.Called(ctx, profile)
	u, _ := args.Get(0).(*models.User)
	return u, args.Bool(1), args.Error(2)
}

func (m *UserServiceMock) GetByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type CheckoutServiceMock struct{ mock.Mock }

func (m *CheckoutServiceMock) BeginCheckout(ctx context.Context, userID string) (*core.CheckoutSession, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*core.CheckoutSession)
	return s, args.Error(1)
}

func (m *CheckoutServiceMock) ResolveUser(ctx context.Context, paymentID string) (*models.User, error) {
	args := m.Called(ctx, paymentID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *CheckoutServiceMock) CompleteCheckout(ctx context.Context, paymentID, payerID string) (*core.CheckoutResult, error) {
	args := m.Called(ctx, paymentID, payerID)
	r, _ := args.Get(0).(*core.CheckoutResult)
	return r, args.Error(1)
}

func (m *CheckoutServiceMock) Finalize(ctx context.Context, user *models.User, items []models.CartItem, paymentID string) (*models.Order, error) {
	args := m.Called(ctx, user, items, paymentID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func newCallbackRouter(t *testing.T, auth *AuthServiceMock, users *UserServiceMock, checkout *CheckoutServiceMock) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := middleware.NewSessionManager("test-signing-key", "http://localhost:8080", zap.NewNop())
	authHandler := NewAuthHandler(auth, users, sessions, zap.NewNop(), "")
	callbackHandler := NewCallbackHandler(authHandler, checkout, sessions, zap.NewNop())

	router := gin.New()
	router.GET("/", callbackHandler.HandleRoot)
	return router
}

func TestCallback_PlainVisitAnswersLoginURL(t *testing.T) {
	auth := new(AuthServiceMock)
	auth.On("LoginURL").Return("https://accounts.google.com/o/oauth2/auth?client_id=x")

	router := newCallbackRouter(t, auth, new(UserServiceMock), new(CheckoutServiceMock))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.LoginURL, "accounts.google.com")
}

func TestCallback_CancelledPayment(t *testing.T) {
	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), new(CheckoutServiceMock))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?payment=cancelled", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelado")
}

// PayPal appends token=EC-... to the cancel_url redirect, so a real cancel
// carries a payment parameter; it must still reach the cancel notice, never
// the incomplete-callback rejection.
func TestCallback_CancelledPaymentWithProviderToken(t *testing.T) {
	checkout := new(CheckoutServiceMock)
	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), checkout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?payment=cancelled&token=EC-123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelado")
	checkout.AssertNotCalled(t, "CompleteCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCallback_IncompletePaymentParamsRejected(t *testing.T) {
	checkout := new(CheckoutServiceMock)
	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), checkout)

	for _, query := range []string{
		"?token=EC-1",
		"?PayerID=PAYER-1",
		"?paymentId=PAY-123",
		"?token=EC-1&PayerID=PAYER-1",
		"?token=EC-1&paymentId=PAY-123",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)
	}

	checkout.AssertNotCalled(t, "CompleteCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCallback_CompletePaymentReturn(t *testing.T) {
	checkout := new(CheckoutServiceMock)
	checkout.On("CompleteCheckout", mock.Anything, "PAY-123", "PAYER-1").Return(&core.CheckoutResult{
		Order: &models.Order{ID: "order-id-1", OrderNumber: "ORD-1-abcd", PaymentID: "PAY-123"},
		User:  &models.User{UID: "u1", Email: "ana@example.com"},
	}, nil)

	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), checkout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?token=EC-1&PayerID=PAYER-1&paymentId=PAY-123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp OrderConfirmationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-1-abcd", resp.OrderNumber)

	// The redirect carried no session; a fresh one must come back with the
	// confirmation.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a session cookie on the confirmation response")

	checkout.AssertExpectations(t)
}

// PayPal has used both paymentId and paymentID across API versions; the
// multiplexer accepts either spelling.
func TestCallback_AlternatePaymentIDSpelling(t *testing.T) {
	checkout := new(CheckoutServiceMock)
	checkout.On("CompleteCheckout", mock.Anything, "PAY-123", "PAYER-1").Return(&core.CheckoutResult{
		Order: &models.Order{OrderNumber: "ORD-1-abcd"},
		User:  &models.User{UID: "u1"},
	}, nil)

	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), checkout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?token=EC-1&PayerID=PAYER-1&paymentID=PAY-123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	checkout.AssertExpectations(t)
}

func TestCallback_UnknownIntentIs404(t *testing.T) {
	checkout := new(CheckoutServiceMock)
	checkout.On("CompleteCheckout", mock.Anything, "PAY-missing", "PAYER-1").Return(nil, core.ErrUnknownIntent)

	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), checkout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?token=EC-1&PayerID=PAYER-1&paymentId=PAY-missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallback_DeclinedPaymentIs402(t *testing.T) {
	checkout := new(CheckoutServiceMock)
	checkout.On("CompleteCheckout", mock.Anything, "PAY-123", "PAYER-1").
		Return(nil, &core.PaymentDeclinedError{Message: "INSTRUMENT_DECLINED"})

	router := newCallbackRouter(t, new(AuthServiceMock), new(UserServiceMock), checkout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?token=EC-1&PayerID=PAYER-1&paymentId=PAY-123", nil))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "INSTRUMENT_DECLINED")
}

func TestCallback_OAuthCodeEstablishesSession(t *testing.T) {
	auth := new(AuthServiceMock)
	users := new(UserServiceMock)

	profile := &core.GoogleProfile{ID: "google-123", Email: "ana@example.com", Name: "Ana"}
	auth.On("FetchProfile", mock.Anything, "the-code").Return(profile, nil)
	users.On("FindOrCreateFromProfile", mock.Anything, profile).
		Return(&models.User{UID: "google-123", Email: "ana@example.com", Nombre: "Ana"}, true, nil)

	router := newCallbackRouter(t, auth, users, new(CheckoutServiceMock))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?code=the-code", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found)

	auth.AssertExpectations(t)
	users.AssertExpectations(t)
}
