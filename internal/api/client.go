// Package api is the gateway to the Timesheet REST API. Every call goes
// through one request path that attaches the bearer token, decodes the
// response envelope and reports a CallEvent to the configured Observer.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
)

// TokenSource supplies the bearer token for protected calls. An empty token
// means the caller is not authenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where protected calls get their token from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithObserver sets the call observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// Client talks to the Timesheet API. It never retries and never caches.
type Client struct {
	baseURL  string
	http     *req.Client
	tokens   TokenSource
	observer Observer
}

// NewClient creates a gateway rooted at baseURL (for example
// "https://host/api").
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokens:   StaticToken(""),
		observer: NoopObserver{},
	}
	c.http = req.C().
		SetTimeout(timeout).
		SetCommonHeader("Accept", "application/json").
		SetCommonContentType("application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the wrapper the API puts around every result.
type envelope struct {
	Result              json.RawMessage `json:"result"`
	Success             *bool           `json:"success"`
	UnAuthorizedRequest bool            `json:"unAuthorizedRequest"`
	Error               *struct {
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func (e *envelope) message() string {
	if e.Error == nil {
		return ""
	}
	return strings.TrimSpace(e.Error.Message)
}

// call describes one request.
type call struct {
	method    string
	path      string
	query     map[string]string
	body      any
	protected bool
}

// do executes c and decodes the envelope's result into out (which may be nil).
func (c *Client) do(ctx context.Context, cl call, out any) error {
	start := time.Now()
	event := CallEvent{
		RequestID: uuid.NewString(),
		Method:    cl.method,
		Path:      cl.path,
	}

	status, err := c.send(ctx, cl, out)
	event.StatusCode = status
	event.Latency = time.Since(start)
	event.Success = err == nil
	if err != nil {
		event.Err = err
		var apiErr *Error
		if errors.As(err, &apiErr) {
			event.ErrorKind = apiErr.Kind
		}
	}
	c.observer.OnCallComplete(event)
	return err
}

func (c *Client) send(ctx context.Context, cl call, out any) (int, error) {
	r := c.http.R().SetContext(ctx)

	token := c.tokens.Token()
	if cl.protected && token == "" {
		return 0, ErrNotAuthenticated
	}
	if token != "" {
		r.SetBearerAuthToken(token)
	}
	for k, v := range cl.query {
		r.SetQueryParam(k, v)
	}
	if cl.body != nil {
		r.SetBody(cl.body)
	}

	resp, err := r.Send(cl.method, c.baseURL+cl.path)
	if err != nil {
		return 0, &Error{Kind: KindTransport, Method: cl.method, Path: cl.path, Err: err}
	}

	data, err := resp.ToBytes()
	if err != nil {
		return resp.StatusCode, &Error{Kind: KindTransport, Method: cl.method, Path: cl.path, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(data, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, &Error{
			Kind:       KindStatus,
			Method:     cl.method,
			Path:       cl.path,
			StatusCode: resp.StatusCode,
			Message:    env.message(),
			Err:        fmt.Errorf("http status %d", resp.StatusCode),
		}
	}
	if decodeErr != nil {
		return resp.StatusCode, &Error{Kind: KindDecode, Method: cl.method, Path: cl.path, StatusCode: resp.StatusCode, Err: decodeErr}
	}
	if (env.Success != nil && !*env.Success) || env.message() != "" {
		msg := env.message()
		if msg == "" {
			msg = "request was rejected"
		}
		return resp.StatusCode, &Error{Kind: KindRejected, Method: cl.method, Path: cl.path, StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return resp.StatusCode, &Error{Kind: KindDecode, Method: cl.method, Path: cl.path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding result: %w", err)}
	}
	return resp.StatusCode, nil
}
