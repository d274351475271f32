// Package client is the HTTP client for the entry store API, used by
// the khatactl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"customer-ledger/internal/ledger"

	"github.com/avast/retry-go"
)

// Client talks to a running customer-ledger server.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// EntryInput is the create/update payload. ID may be pre-minted by the
// caller; the server generates one when it is empty.
type EntryInput struct {
	ID           string `json:"id,omitempty"`
	ManualDate   string `json:"manual_date"`
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
	AmountRs     int64  `json:"amount_rs"`
}

// User is the profile shape returned by login and /me.
type User struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// envelope is the server's uniform reply shape.
type envelope struct {
	Code    int             `json:"code"`
	Kind    string          `json:"kind"`
	Field   string          `json:"field"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends one JSON request and decodes the envelope, converting error
// replies into StoreError values.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}

	if resp.StatusCode != http.StatusOK || env.Code != 0 {
		return &StoreError{
			Kind:    kindFromWire(env.Kind, env.Message),
			Field:   env.Field,
			Message: env.Message,
		}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// ---------- auth ----------

func (c *Client) Register(ctx context.Context, username, password, displayName string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username":         username,
		"password":         password,
		"confirm_password": password,
		"display_name":     displayName,
	}, nil)
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var data struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &data); err != nil {
		return "", err
	}
	c.Token = data.Token
	return data.Token, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var data struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// ---------- entries (the store contract) ----------

func (c *Client) CreateEntry(ctx context.Context, in EntryInput) error {
	return c.do(ctx, http.MethodPost, "/api/entries", in, nil)
}

func (c *Client) UpdateEntry(ctx context.Context, id string, in EntryInput) error {
	return c.do(ctx, http.MethodPut, "/api/entries/"+id, in, nil)
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/entries/"+id, nil, nil)
}

// ListEntries fetches all entries newest-first. The fetch is retried up
// to three attempts; authorization failures are never retried.
func (c *Client) ListEntries(ctx context.Context) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	err := retry.Do(
		func() error {
			var data struct {
				Items []ledger.Entry `json:"items"`
			}
			if err := c.do(ctx, http.MethodGet, "/api/entries", nil, &data); err != nil {
				return err
			}
			entries = data.Items
			return nil
		},
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.RetryIf(func(err error) bool { return !IsUnauthorized(err) }),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ---------- stats ----------

func (c *Client) MonthlyStats(ctx context.Context, year int) ([]ledger.MonthBucket, int, error) {
	path := "/api/stats/monthly"
	if year > 0 {
		path = fmt.Sprintf("%s?year=%d", path, year)
	}
	var data struct {
		Year   int                  `json:"year"`
		Months []ledger.MonthBucket `json:"months"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, 0, err
	}
	return data.Months, data.Year, nil
}

func (c *Client) YearlyStats(ctx context.Context) ([]ledger.YearBucket, error) {
	var data struct {
		Years []ledger.YearBucket `json:"years"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/stats/yearly", nil, &data); err != nil {
		return nil, err
	}
	return data.Years, nil
}

// ---------- export download ----------

// Download fetches one export surface and returns the payload plus the
// server-chosen filename (empty for inline documents).
func (c *Client) Download(ctx context.Context, format string) ([]byte, string, error) {
	path := "/api/export/" + format
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request export: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read export: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
			return nil, "", &StoreError{
				Kind:    kindFromWire(env.Kind, env.Message),
				Field:   env.Field,
				Message: env.Message,
			}
		}
		return nil, "", fmt.Errorf("export failed: %s", resp.Status)
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return raw, filename, nil
}
