package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

// maxResponseBytes bounds how much of an API answer is read.
const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient targets baseURL (e.g. "http://127.0.0.1:3000"). Every call is
// bounded by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.http = hc
	return c
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", in, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return resp.Token, nil
}

func (c *HTTPClient) PresignedURL(ctx context.Context, token, filename string) (*models.Authorization, error) {
	var resp models.Authorization
	in := map[string]string{"filename": filename}
	if err := c.do(ctx, http.MethodPost, "/api/upload/presigned-url", token, in, &resp); err != nil {
		return nil, err
	}
	if resp.UploadURL == "" {
		return nil, fmt.Errorf("presigned-url: empty uploadUrl in response")
	}
	return &resp, nil
}

func (c *HTTPClient) HashPassword(ctx context.Context, password string) (string, error) {
	var resp struct {
		Hash string `json:"hash"`
	}
	in := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/hash-password", "", in, &resp); err != nil {
		return "", err
	}
	return resp.Hash, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var resp Health
	if err := c.do(ctx, http.MethodGet, "/health", "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
