// Package client calls the records API over HTTP.
//
// Each method issues exactly one request. Non-2xx responses come back as
// *Error; nothing is retried or cached.
package client

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

	"github.com/deppfellow/emp-records/internal/errs"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds a whole request when the caller passes no client.
const DefaultTimeout = 10 * time.Second

// Error is a non-2xx response.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	// Status is the status text, e.g. "404 Not Found".
	Status string
	// Message is the server's "error" field, if the body had one.
	Message string
	// Fields holds per-field validation failures from a 400.
	Fields []errs.FieldError
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// Client talks to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL. httpClient may be nil.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type recordBody struct {
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Level    model.Level `json:"level"`
}

func bodyOf(rec model.Record) recordBody {
	return recordBody{Name: rec.Name, Position: rec.Position, Level: rec.Level}
}

// List fetches every record.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	var out []model.Record
	if err := c.do(ctx, http.MethodGet, "/record", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, id string) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodGet, recordPath(id), nil, &out)
	return out, err
}

// Create stores rec and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodPost, "/record", bodyOf(rec), &out)
	return out, err
}

// Update sends the set fields of patch.
func (c *Client) Update(ctx context.Context, id string, patch model.Patch) (model.UpdateResult, error) {
	var out model.UpdateResult
	err := c.do(ctx, http.MethodPatch, recordPath(id), patch, &out)
	return out, err
}

// Replace overwrites name, position and level of the record.
func (c *Client) Replace(ctx context.Context, id string, rec model.Record) (model.UpdateResult, error) {
	var out model.UpdateResult
	err := c.do(ctx, http.MethodPut, recordPath(id), bodyOf(rec), &out)
	return out, err
}

// Remove deletes the record.
func (c *Client) Remove(ctx context.Context, id string) (model.DeleteResult, error) {
	var out model.DeleteResult
	err := c.do(ctx, http.MethodDelete, recordPath(id), nil, &out)
	return out, err
}

func recordPath(id string) string {
	return "/record/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	// Read the whole body so the connection can be reused.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
		var decoded errs.Body
		if json.Unmarshal(raw, &decoded) == nil {
			apiErr.Message = decoded.Error
			apiErr.Fields = decoded.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
