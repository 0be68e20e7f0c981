// Package client provides an authenticated HTTP client for the staffdesk API.
// It implements the importer.Submitter interface, so an import session can be
// driven against a remote server the same way it is driven in-process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/avery/staffdesk/internal/fields"
	"github.com/avery/staffdesk/internal/types"
)

// DefaultTimeout is the default HTTP request timeout. Imports and resume
// parsing can take a while, so this is generous.
const DefaultTimeout = 120 * time.Second

// Error represents an error response from the staffdesk API.
type Error struct {
	Path       string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error for %s (status %d): %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error for %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to a staffdesk server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given base URL using a bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Authenticate exchanges an admin API key for a bearer token and returns a
// client holding it.
func Authenticate(ctx context.Context, baseURL, key string) (*Client, error) {
	c := New(baseURL, "")
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/auth/token", map[string]string{"key": key}, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return c, nil
}

// FieldDefinitions fetches the visible field definitions for an entity type.
func (c *Client) FieldDefinitions(ctx context.Context, entityType string) ([]fields.Definition, error) {
	path := "/api/admin/field-management/" + entityType
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var resp fields.ListResponse
	if err := c.do(req, path, &resp); err != nil {
		return nil, err
	}
	return resp.Pick(), nil
}

// Import submits a batch of mapped records. This implements importer.Submitter.
func (c *Client) Import(ctx context.Context, req types.ImportRequest) (*types.ImportSummary, error) {
	var resp types.ImportResponse
	if err := c.postJSON(ctx, "/api/admin/data-uploader/import", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Summary, nil
}

// ParseResume uploads a resume file and returns the structured extraction.
func (c *Client) ParseResume(ctx context.Context, filename string, data []byte) (*types.ResumeParseResult, error) {
	path := "/api/admin/parse-resume"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to build multipart form", Cause: err}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &Error{Path: path, Message: "failed to write file part", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Path: path, Message: "failed to finish multipart form", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var resp types.ResumeParseResponse
	if err := c.do(req, path, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// StagePendingFile stores a file under key for a later one-shot pickup.
func (c *Client) StagePendingFile(ctx context.Context, key string, file types.PendingFile) error {
	return c.postJSON(ctx, "/api/admin/pending-files/"+key, file, nil)
}

// TakePendingFile removes and returns the staged file for key. It returns a
// *Error with StatusCode 404 when nothing is staged.
func (c *Client) TakePendingFile(ctx context.Context, key string) (*types.PendingFile, error) {
	var file types.PendingFile
	if err := c.postJSON(ctx, "/api/admin/pending-files/"+key+"/take", nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &Error{Path: path, Message: "failed to encode request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, body, "application/json")
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to create request", Cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Path: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Path: path, StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Path: path, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// readErrorMessage pulls the "error" field out of an error response body,
// falling back to the raw body.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 8192))
	if err != nil || len(data) == 0 {
		return "request failed"
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(data))
}
