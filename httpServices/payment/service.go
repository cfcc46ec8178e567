package httpServices

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OmiseClient talks to the Omise charges API with the account secret key.
type OmiseClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewClient(baseURL, secretKey string) *OmiseClient {
	return &OmiseClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
	}
}

func (c *OmiseClient) do(ctx context.Context, method, path string, payload interface{}) (*Charge, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.SetBasicAuth(c.secretKey, "")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Code == "" {
			return nil, fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
		}
		return nil, apiErr
	}

	var charge Charge
	if err := json.Unmarshal(respBody, &charge); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &charge, nil
}

// CreateCharge charges a card token.
func (c *OmiseClient) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	return c.do(ctx, http.MethodPost, "/charges", req)
}

// GetCharge retrieves a charge by id.
func (c *OmiseClient) GetCharge(ctx context.Context, chargeID string) (*Charge, error) {
	return c.do(ctx, http.MethodGet, "/charges/"+url.PathEscape(chargeID), nil)
}
