// Package analysis talks to the chat analysis service that produces wrapped datasets.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/wrapdeck/internal/dataset"
	"github.com/verte-zerg/wrapdeck/internal/model"
)

// DefaultBaseURL is used when no service url is configured.
const DefaultBaseURL = "http://localhost:8000"

// ErrNotChatExport is returned for files that are not a .txt chat export.
var ErrNotChatExport = errors.New("please upload a .txt file exported from WhatsApp")

// Client uploads chat exports to the analysis service.
type Client struct {
	// Logger receives warnings about slide records that did not decode.
	Logger *zap.Logger

	baseURL string
	client  *http.Client
}

// UploadResponse is the service reply to an upload.
type UploadResponse struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message"`
	SessionID string                `json:"session_id"`
	Data      *model.WrappedDataset `json:"-"`
	Raw       json.RawMessage       `json:"data"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// NewClient creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// Upload sends the chat export at path and returns the analysed dataset.
func (c *Client) Upload(ctx context.Context, path string) (*UploadResponse, error) {
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		return nil, ErrNotChatExport
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat export: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read chat export: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if !result.Success {
		return &result, fmt.Errorf("analysis failed: %s", result.Message)
	}
	if len(result.Raw) == 0 || string(result.Raw) == "null" {
		return &result, fmt.Errorf("%w: response has no data", dataset.ErrDataShape)
	}
	ds, err := dataset.Decoder{Logger: c.Logger}.DecodeJSON(result.Raw)
	if err != nil {
		return &result, err
	}
	result.Data = ds
	return &result, nil
}

// Health reports whether the service answers its health check.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var detail errorResponse
	if err := json.Unmarshal(b, &detail); err == nil && detail.Detail != "" {
		return errors.New(detail.Detail)
	}
	return fmt.Errorf("upload failed: %s", resp.Status)
}
