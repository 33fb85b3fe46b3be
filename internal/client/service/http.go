// Package service implements the remote sync endpoint client over HTTP/JSON.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/transport"
)

// HTTPClientService talks to the sync endpoint. It satisfies client.Client.
type HTTPClientService struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// NewHTTPClientService creates a client for the endpoint at baseURL,
// e.g. "http://127.0.0.1:8080".
func NewHTTPClientService(baseURL string) (*HTTPClientService, error) {
	return &HTTPClientService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (s *HTTPClientService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *HTTPClientService) doJSON(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading response: %v", common.ErrTransport, err)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: malformed response: %v", common.ErrTransport, err)
		}
	}

	return resp.StatusCode, nil
}

// RegisterDevice creates this device on the server.
func (s *HTTPClientService) RegisterDevice(ctx context.Context, deviceID string, secret []byte) error {
	req := &transport.RegisterDeviceRequest{DeviceID: deviceID, Secret: string(secret)}

	code, err := s.doJSON(ctx, http.MethodPost, "/api/v1/devices/register", req, nil)
	if err != nil {
		return err
	}
	switch {
	case code == http.StatusConflict:
		return common.ErrorAlreadyExists
	case code >= 300:
		return fmt.Errorf("%w: unexpected status %d", common.ErrTransport, code)
	}
	return nil
}

// Login obtains an access token for subsequent uploads.
func (s *HTTPClientService) Login(ctx context.Context, deviceID string, secret []byte) error {
	req := &transport.LoginRequest{DeviceID: deviceID, Secret: string(secret)}

	var resp transport.LoginResponse
	code, err := s.doJSON(ctx, http.MethodPost, "/api/v1/devices/login", req, &resp)
	if err != nil {
		return err
	}
	switch {
	case code == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case code >= 300:
		return fmt.Errorf("%w: unexpected status %d", common.ErrTransport, code)
	}

	s.accessToken = resp.AccessToken
	return nil
}

// Ping checks endpoint liveness.
func (s *HTTPClientService) Ping(ctx context.Context) error {
	code, err := s.doJSON(ctx, http.MethodGet, "/api/v1/ping", nil, nil)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", common.ErrTransport, code)
	}
	return nil
}

// Upload submits one document payload. Any non-2xx status is an error:
// the response body's code and message are carried in the error text so the
// batch summary can log them.
func (s *HTTPClientService) Upload(ctx context.Context, req *transport.SyncRequest) (*transport.SyncResponse, error) {
	var resp transport.SyncResponse
	code, err := s.doJSON(ctx, http.MethodPost, "/api/v1/sync", req, &resp)
	if err != nil {
		return nil, err
	}

	if code < 200 || code >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", common.ErrRejected, code, resp.Message)
	}
	if resp.Status != transport.StatusSuccess {
		return nil, fmt.Errorf("%w: unexpected response status %q", common.ErrRejected, resp.Status)
	}

	return &resp, nil
}
