// Package client talks to a running ledger over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"ledger-lab/domain"
	"ledger-lab/handler"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// StatusError is returned when the ledger answers with an unexpected status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ledger answered %d: %s", e.Code, e.Message)
}

type LedgerClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewLedgerClient(baseURL string, timeout time.Duration) *LedgerClient {
	return &LedgerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        256,
				MaxIdleConnsPerHost: 256,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// Login trades the operator credentials for a token sent with every later call.
func (c *LedgerClient) Login(ctx context.Context, operator, password string) error {
	var res handler.LoginResponse
	body := handler.LoginRequest{Operator: operator, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/token", body, http.StatusOK, &res); err != nil {
		return err
	}
	c.token = res.Token
	return nil
}

func (c *LedgerClient) CreateAccount(ctx context.Context, id domain.AccountID, balance decimal.Decimal) error {
	body := map[string]any{"accountId": id, "balance": json.Number(balance.String())}
	return c.do(ctx, http.MethodPost, "/v1/accounts", body, http.StatusCreated, nil)
}

func (c *LedgerClient) GetAccount(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	var res handler.AccountResponse
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/"+url.PathEscape(id.String()), nil, http.StatusOK, &res); err != nil {
		return domain.Account{}, err
	}
	balance, err := domain.ParseAmount(res.Balance.String())
	if err != nil {
		return domain.Account{}, err
	}
	return domain.NewAccount(domain.AccountID(res.AccountID), balance), nil
}

func (c *LedgerClient) Transfer(ctx context.Context, source, destination domain.AccountID, amount decimal.Decimal) error {
	body := map[string]any{
		"sourceAccountId":      source,
		"destinationAccountId": destination,
		"transferAmount":       json.Number(amount.String()),
	}
	return c.do(ctx, http.MethodPut, "/v1/accounts/amountTransfer", body, http.StatusAccepted, nil)
}

func (c *LedgerClient) GetTransfers(ctx context.Context, id domain.AccountID, cursor *string) (handler.ListTransfersResponse, error) {
	path := "/v1/accounts/" + url.PathEscape(id.String()) + "/transfers"
	if cursor != nil {
		path += "?cursor=" + url.QueryEscape(*cursor)
	}
	var res handler.ListTransfersResponse
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &res)
	return res, err
}

func (c *LedgerClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, nil)
}

func (c *LedgerClient) do(ctx context.Context, method, path string, body any, expected int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != expected {
		var message struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(payload, &message)
		return &StatusError{Code: res.StatusCode, Message: message.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}
