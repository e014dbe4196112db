// Package client is the HTTP client the agent uses against the EasyShare
// API. It authenticates once via the session cookie and exposes typed
// wrappers over the JSON envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

// Client talks to one EasyShare server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a client with its own cookie jar; Login stores the session
// cookie there.
func New(cfg Config) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
	}, nil
}

// Session identifies the logged-in user.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// envelope mirrors utils.Payload with raw data for per-call decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SignUp registers an account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/sign-up",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and keeps the session cookie for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFolder registers folder metadata with its scanned snapshot.
func (c *Client) CreateFolder(ctx context.Context, id, name string, structure *models.TreeNode) (*models.FileRecord, error) {
	body := map[string]any{"id": id, "name": name, "structure": structure}
	var rec models.FileRecord
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/files", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetFile fetches one record.
func (c *Client) GetFile(ctx context.Context, id string) (*models.FileRecord, error) {
	var out struct {
		File *models.FileRecord `json:"file"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/files/"+id, nil, &out); err != nil {
		return nil, err
	}
	if out.File == nil {
		return nil, common.ErrNotFound
	}
	return out.File, nil
}

// Connect asserts the live connection for a folder (the owner heartbeat).
func (c *Client) Connect(ctx context.Context, folderID string) (*models.FileRecord, error) {
	var rec models.FileRecord
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/files/"+folderID+"/connect", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Share grants an email access to a record.
func (c *Client) Share(ctx context.Context, fileID, email string) (*models.FileRecord, error) {
	var rec models.FileRecord
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/files/"+fileID+"/share",
		map[string]string{"email": email}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ToggleDownload flips a file's download permission.
func (c *Client) ToggleDownload(ctx context.Context, fileID string) (*models.FileRecord, error) {
	var rec models.FileRecord
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/files/"+fileID+"/download", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// doJSON performs one request and decodes the envelope's data into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return apiError(resp.StatusCode, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// apiError maps HTTP failures onto the shared sentinels so callers can
// errors.Is against them.
func apiError(status int, message string) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrInvalidRequest, message)
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrPermissionDenied, message)
	default:
		return fmt.Errorf("server error (%d): %s", status, message)
	}
}
