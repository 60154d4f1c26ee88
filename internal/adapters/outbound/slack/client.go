package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultAPIURL = "https://slack.com/api/"

	methodPostMessage    = "chat.postMessage"
	methodGetUploadURL   = "files.getUploadURLExternal"
	methodCompleteUpload = "files.completeUploadExternal"
	contentTypeJSON      = "application/json; charset=utf-8"
	contentTypeForm      = "application/x-www-form-urlencoded"
	contentTypeOctet     = "application/octet-stream"
	maxErrorBodyBytes    = 512
	maxResponseBodyBytes = 1 << 20
)

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (r *apiResponse) check(method string) error {
	if r.OK {
		return nil
	}

	if r.Error == "" {
		return fmt.Errorf("%w: %s: missing ok and error fields", ErrUnexpectedResponse, method)
	}

	return &APIError{Method: method, Code: r.Error}
}

type uploadURLResponse struct {
	apiResponse
	UploadURL string `json:"upload_url"`
	FileID    string `json:"file_id"`
}

type completeUploadRequest struct {
	Files []uploadedFile `json:"files"`
}

type uploadedFile struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type completeUploadResponse struct {
	apiResponse
	Files []struct {
		ID        string `json:"id"`
		Permalink string `json:"permalink"`
	} `json:"files"`
}

type postMessageRequest struct {
	Channel     string  `json:"channel"`
	Text        string  `json:"text"`
	Blocks      []Block `json:"blocks"`
	UnfurlLinks bool    `json:"unfurl_links"`
}

// client is a minimal bearer-authenticated Slack Web API client.
type client struct {
	logger  *slog.Logger
	http    *http.Client
	baseURL string
	token   string
}

func newClient(logger *slog.Logger, httpClient *http.Client, baseURL, token string) *client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	return &client{
		logger:  logger,
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		token:   token,
	}
}

func (c *client) callJSON(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	return c.call(ctx, method, contentTypeJSON, bytes.NewReader(body), out)
}

func (c *client) callForm(ctx context.Context, method string, form url.Values, out any) error {
	return c.call(ctx, method, contentTypeForm, strings.NewReader(form.Encode()), out)
}

func (c *client) call(ctx context.Context, method, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send %s request: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "slack response", "method", method, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(method, resp)
	}

	err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(out)
	if err != nil {
		return fmt.Errorf("%w: %s: decode: %w", ErrUnexpectedResponse, method, err)
	}

	return nil
}

// upload sends raw bytes to a URL returned by files.getUploadURLExternal.
func (c *client) upload(ctx context.Context, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}

	req.Header.Set("Content-Type", contentTypeOctet)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send upload request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("upload", resp)
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodyBytes))

	return nil
}

func statusError(method string, resp *http.Response) error {
	text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	return fmt.Errorf("%w: %s: %d: %s", ErrHTTPStatus, method, resp.StatusCode, strings.TrimSpace(string(text)))
}
