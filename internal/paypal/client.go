// Package paypal is a minimal client for the PayPal REST Payments API,
// covering exactly the two calls the checkout flow needs: creating a payment
// for buyer approval and executing it after the redirect comes back.
package paypal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Item is one purchase line as PayPal expects it: price as a decimal string,
// the product id carried in SKU.
type Item struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Quantity int64  `json:"quantity"`
}

// CreatePaymentResult is what callers need from a created payment: the
// provider-assigned id to correlate the redirect callback, and the URL the
// buyer must be sent to for approval.
type CreatePaymentResult struct {
	PaymentID   string
	ApprovalURL string
}

// Client is the provider-facing surface of the checkout flow.
type Client interface {
	// CreatePayment registers a payment intent with PayPal. total must be the
	// two-decimal string sum of the items.
	CreatePayment(ctx context.Context, items []Item, total string) (*CreatePaymentResult, error)
	// ExecutePayment finalizes a previously approved payment, authenticated by
	// the payer id from the redirect. Returns (false, providerMessage, nil) on
	// a provider-reported decline; err is reserved for transport failures.
	ExecutePayment(ctx context.Context, paymentID, payerID string) (bool, string, error)
}

// ProviderError is a non-2xx answer from PayPal, carrying the provider's own
// message for display.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("paypal error %d: %s", e.StatusCode, e.Message)
}

type clientImpl struct {
	httpClient   *http.Client
	baseAPIURL   string
	clientID     string
	clientSecret string
	returnURL    string
	cancelURL    string
}

// Config carries the credentials and redirect targets for NewClient.
type Config struct {
	BaseAPIURL   string
	ClientID     string
	ClientSecret string
	// ReturnURL and CancelURL are the application's own base URL with query
	// markers; PayPal appends paymentId/token/PayerID on return.
	ReturnURL string
	CancelURL string
}

// NewClient builds a Client talking to the configured PayPal environment.
func NewClient(cfg Config) Client {
	return &clientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseAPIURL:   cfg.BaseAPIURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		returnURL:    cfg.ReturnURL,
		cancelURL:    cfg.CancelURL,
	}
}

func (c *clientImpl) getAccessToken(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.clientID + ":" + c.clientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseAPIURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: string(b)}
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("paypal token response carried no access_token")
	}
	return res.AccessToken, nil
}

type paymentLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type paymentResult struct {
	ID    string        `json:"id"`
	State string        `json:"state"`
	Links []paymentLink `json:"links"`
}

type providerErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (c *clientImpl) CreatePayment(ctx context.Context, items []Item, total string) (*CreatePaymentResult, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get paypal access token: %w", err)
	}

	payload := map[string]interface{}{
		"intent": "sale",
		"payer": map[string]string{
			"payment_method": "paypal",
		},
		"redirect_urls": map[string]string{
			"return_url": c.returnURL,
			"cancel_url": c.cancelURL,
		},
		"transactions": []map[string]interface{}{
			{
				"item_list": map[string]interface{}{
					"items": items,
				},
				"amount": map[string]string{
					"total":    total,
					"currency": "USD",
				},
				"description": "Compra en tu tienda Megamoda Store",
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseAPIURL+"/v1/payments/payment",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal create payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: readProviderMessage(resp.Body)}
	}

	var result paymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode paypal response: %w", err)
	}

	approvalURL := extractApprovalURL(result.Links)
	if approvalURL == "" {
		return nil, fmt.Errorf("paypal payment %s carried no approval_url link", result.ID)
	}

	return &CreatePaymentResult{
		PaymentID:   result.ID,
		ApprovalURL: approvalURL,
	}, nil
}

func (c *clientImpl) ExecutePayment(ctx context.Context, paymentID, payerID string) (bool, string, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return false, "", fmt.Errorf("get paypal access token: %w", err)
	}

	body, err := json.Marshal(map[string]string{"payer_id": payerID})
	if err != nil {
		return false, "", fmt.Errorf("marshal execute payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/payments/payment/%s/execute", c.baseAPIURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return false, "", fmt.Errorf("create execute request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("paypal execute request failed: %w", err)
	}
	defer resp.Body.Close()

	// A decline is an answer, not a failure: surface the provider's message
	// so the page can display it, and leave err for transport problems.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, readProviderMessage(resp.Body), nil
	}

	var result paymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, "", fmt.Errorf("decode execute response: %w", err)
	}
	if result.State != "approved" {
		return false, fmt.Sprintf("payment state is %q", result.State), nil
	}
	return true, "", nil
}

func readProviderMessage(r io.Reader) string {
	raw, _ := io.ReadAll(r)
	var body providerErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(raw)
}

func extractApprovalURL(links []paymentLink) string {
	for _, link := range links {
		if link.Rel == "approval_url" {
			return link.Href
		}
	}
	return ""
}
