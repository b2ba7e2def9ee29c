// Package api is the HTTP client for the remote member store.
//
// The store owns persistence; this client only speaks its JSON contract:
//
//	GET    /transactions/            -> {"transactions": [member...]}
//	POST   /transactions/create      -> created member
//	PUT    /transactions/edit/{id}   -> updated member
//	DELETE /transactions/delete/{id} -> 200
//
// All payloads use snake_case field names.
package api

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

	"memberbook/internal/model"
)

// Store is the remote operation surface the core depends on.
type Store interface {
	List(ctx context.Context) ([]model.Member, error)
	Create(ctx context.Context, nm NewMember) (model.Member, error)
	Update(ctx context.Context, m model.Member) (model.Member, error)
	Delete(ctx context.Context, id string) error
}

// NewMember is the creation payload. The id and timestamps are
// server-assigned; they never appear in a create request.
type NewMember struct {
	Prefix       model.Prefix `json:"prefix"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	BirthDate    time.Time    `json:"birth_date"`
	ProfileImage string       `json:"profile_image,omitempty"`
}

// TransportError reports a failed remote call: either the request never
// completed or the server answered with a non-2xx status.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Client struct {
	base string
	http *http.Client
}

// New builds a client for the store at base (e.g. "http://localhost:4000").
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(base), "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is used by tests to inject a fixture transport.
func NewWithHTTPClient(base string, hc *http.Client) *Client {
	c := New(base)
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) List(ctx context.Context) ([]model.Member, error) {
	var body struct {
		Transactions []model.Member `json:"transactions"`
	}
	if err := c.do(ctx, "list members", http.MethodGet, "/transactions/", nil, &body); err != nil {
		return nil, err
	}
	return body.Transactions, nil
}

func (c *Client) Create(ctx context.Context, nm NewMember) (model.Member, error) {
	var created model.Member
	if err := c.do(ctx, "create member", http.MethodPost, "/transactions/create", nm, &created); err != nil {
		return model.Member{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, m model.Member) (model.Member, error) {
	var updated model.Member
	p := "/transactions/edit/" + url.PathEscape(m.ID)
	if err := c.do(ctx, "update member", http.MethodPut, p, m, &updated); err != nil {
		return model.Member{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	p := "/transactions/delete/" + url.PathEscape(id)
	return c.do(ctx, "delete member", http.MethodDelete, p, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &TransportError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
