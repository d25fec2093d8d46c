// Package employeeapi is the record service: an HTTP client for the remote
// employees collection. Failures are logged with their origin and reported
// to callers as a single generic error; nothing is retried.
package employeeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/csg33k/employee-registry/internal/domain"
)

// ErrUnavailable is the user-facing failure every operation reports.
var ErrUnavailable = errors.New("There is a problem with the service. We are notified & working on it. Please try again later.")

// Origin tells whether a failure happened on this side of the wire or was
// reported by the server.
type Origin string

const (
	OriginClient Origin = "client"
	OriginServer Origin = "server"
)

// Error wraps the underlying cause of a failed call. Its message is always
// ErrUnavailable's.
type Error struct {
	Op     string
	Origin Origin
	// Status is the HTTP status for server-side failures.
	Status int
	Err    error
}

func (e *Error) Error() string        { return ErrUnavailable.Error() }
func (e *Error) Unwrap() error        { return e.Err }
func (e *Error) Is(target error) bool { return target == ErrUnavailable }

// NotFound reports whether err is a server-side 404.
func NotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client (which only carries a timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout bounds each request. It applies to a copy of the HTTP client,
// whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the collection at baseURL, e.g.
// "http://localhost:8080/api/employees".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *Client) List(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, "list employees", http.MethodGet, c.baseURL, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Employee{}
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.do(ctx, "get employee", http.MethodGet, c.itemURL(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts e without an id; the server assigns one.
func (c *Client) Create(ctx context.Context, e *domain.Employee) error {
	body := *e
	body.ID = 0
	return c.do(ctx, "create employee", http.MethodPost, c.baseURL, &body, nil)
}

// Update replaces the record identified by e.ID.
func (c *Client) Update(ctx context.Context, e *domain.Employee) error {
	if !e.Persisted() {
		return c.fail("update employee", OriginClient, 0, errors.New("employee has no id"))
	}
	return c.do(ctx, "update employee", http.MethodPut, c.itemURL(e.ID), e, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete employee", http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id int64) string {
	return fmt.Sprintf("%s/%d", c.baseURL, id)
}

func (c *Client) do(ctx context.Context, op, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return c.fail(op, OriginClient, 0, err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return c.fail(op, OriginClient, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(op, OriginClient, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return c.fail(op, OriginServer, resp.StatusCode,
			fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, strings.TrimSpace(string(msg))))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(op, OriginClient, 0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(op string, origin Origin, status int, err error) error {
	if origin == OriginClient {
		c.log.Error("Client Side Error", "op", op, "origin", origin, "err", err)
	} else {
		c.log.Error("Server Side Error", "op", op, "origin", origin, "status", status, "err", err)
	}
	return &Error{Op: op, Origin: origin, Status: status, Err: err}
}
