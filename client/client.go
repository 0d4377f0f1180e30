package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
)

// TokenProvider supplies the bearer token attached to API requests
type TokenProvider interface {
	Token() string
}

// Client talks to the reports API. It owns request plumbing so the core
// never parses raw HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenProvider
}

// New creates a reports API client against baseURL
func New(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// SubmitReport uploads the image and coordinates as multipart form data and
// returns the server-assigned id plus the raw classifier result
func (c *Client) SubmitReport(ctx context.Context, image *issues.ValidatedImage, lat, lng float64) (models.SubmitResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("image", image.Name)
	if err != nil {
		return models.SubmitResponse{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image.Reader()); err != nil {
		return models.SubmitResponse{}, fmt.Errorf("copy image: %w", err)
	}
	_ = mw.WriteField("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	_ = mw.WriteField("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	if err := mw.Close(); err != nil {
		return models.SubmitResponse{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/issues/report", &body)
	if err != nil {
		return models.SubmitResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	var resp models.SubmitResponse
	if err := c.do(req, &resp); err != nil {
		return models.SubmitResponse{}, err
	}
	return resp, nil
}

// ListReports fetches every issue record for the list view
func (c *Client) ListReports(ctx context.Context) ([]models.RawIssue, error) {
	return c.list(ctx, "/api/issues/reports")
}

// ListMapData fetches the issue records formatted for map display
func (c *Client) ListMapData(ctx context.Context) ([]models.RawIssue, error) {
	return c.list(ctx, "/api/issues/map")
}

func (c *Client) list(ctx context.Context, path string) ([]models.RawIssue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	var raws []models.RawIssue
	if err := c.do(req, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// UpdateStatus patches an issue's resolution status and returns the updated
// record
func (c *Client) UpdateStatus(ctx context.Context, id string, status models.IssueStatus) (models.RawIssue, error) {
	payload, _ := json.Marshal(map[string]string{"status": string(status)})
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/issues/"+id+"/status", bytes.NewReader(payload))
	if err != nil {
		return models.RawIssue{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	var raw models.RawIssue
	if err := c.do(req, &raw); err != nil {
		return models.RawIssue{}, err
	}
	return raw, nil
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	return c.postJSON(ctx, "/api/auth/login", models.LoginRequest{Email: email, Password: password})
}

// Register creates an account and returns its first bearer token
func (c *Client) Register(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	return c.postJSON(ctx, "/api/auth/register", models.RegisterRequest{Name: name, Email: email, Password: password})
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (models.AuthResponse, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return models.AuthResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return models.AuthResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp models.AuthResponse
	if err := c.do(req, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		zap.S().Debugw("reports api error",
			"status", resp.StatusCode,
			"path", req.URL.Path,
		)
		return fmt.Errorf("%s", errorMessage(body, resp.StatusCode))
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// errorMessage pulls the server's message out of a JSON error body so it can
// be surfaced to the user verbatim
func errorMessage(body []byte, status int) string {
	var parsed struct {
		Message  string `json:"message"`
		Error    string `json:"error"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Error != "":
			return parsed.Error
		case parsed.Response != "":
			return parsed.Response
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("request failed with status %d", status)
}
