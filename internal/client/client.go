// Package client talks to the backend on behalf of the terminal client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Message is the body of GET /api/eod-message.
type Message struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

// APIError is a non-2xx response decoded from the backend error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SignedIn reports whether requests carry a session token.
func (c *Client) SignedIn() bool {
	return c.token != ""
}

func (c *Client) FetchMessage(ctx context.Context) (Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodGet, "/api/eod-message", nil, &msg); err != nil {
		return Message{}, fmt.Errorf("fetch eod message: %w", err)
	}
	if msg.Message == "" {
		return Message{}, fmt.Errorf("fetch eod message: empty message")
	}
	return msg, nil
}

// AddFocusMinutes records completed focus time for the signed-in user.
func (c *Client) AddFocusMinutes(ctx context.Context, minutes int) error {
	body := map[string]int{"minutes": minutes}
	if err := c.do(ctx, http.MethodPost, "/api/me/focus", body, nil); err != nil {
		return fmt.Errorf("add focus minutes: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
