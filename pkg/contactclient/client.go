// Package contactclient posts contact form submissions to the contact endpoint.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "/api/contact"
	DefaultTimeout  = 15 * time.Second

	maxResponseBytes = 1 << 20
	msgRejected      = "Failed to send message. Please try again."
)

type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

// ServerError is a response the endpoint produced but that is not a success.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// NetworkError means no usable response arrived at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds a whole Submit call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithEndpoint(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.endpoint = path
		}
	}
}

type Client struct {
	baseURL    string
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		endpoint:   DefaultEndpoint,
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL is the address submissions are posted to.
func (c *Client) URL() string {
	return c.baseURL + c.endpoint
}

// responseBody covers both the success and the error shape.
type responseBody struct {
	Result
	Error string `json:"error"`
}

func (c *Client) Submit(ctx context.Context, s Submission) (*Result, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var body responseBody
	parseErr := json.Unmarshal(data, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		if parseErr == nil && body.Error != "" {
			msg = body.Error
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}

	if parseErr != nil {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("invalid response: %v", parseErr)}
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = msgRejected
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}

	res := body.Result
	return &res, nil
}
