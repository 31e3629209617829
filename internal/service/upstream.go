package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxUpstreamBody caps how much of an upstream body is read.
const maxUpstreamBody = 1 << 20

// newHTTPClient builds the client shared by upstream calls. A zero timeout
// leaves cancellation to the caller's context.
func newHTTPClient(timeout time.Duration) *http.Client {
	httpTransport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: httpTransport}
}

// fetchJSON performs a GET and decodes a 2xx JSON body into target.
// Failures are returned as *ServiceError.
func fetchJSON(ctx context.Context, httpClient *http.Client, url string, target interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ServiceError{Type: ErrorTypeNetworkError, Message: "failed to create request", Cause: err}
	}
	request.Header.Set("Accept", "application/json")

	response, err := httpClient.Do(request)
	if err != nil {
		return &ServiceError{Type: ErrorTypeNetworkError, Message: "failed to make request", Cause: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxUpstreamBody))
	if err != nil {
		return &ServiceError{Type: ErrorTypeNetworkError, Message: "failed to read response body", Cause: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &ServiceError{
			Type:            ErrorTypeUpstreamStatus,
			Message:         "upstream returned an error",
			StatusCode:      response.StatusCode,
			UpstreamMessage: upstreamMessage(body, response.StatusCode),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &ServiceError{Type: ErrorTypeInvalidResponse, Message: "failed to parse response", Cause: err}
	}
	return nil
}

// upstreamMessage pulls a human readable message out of an error body,
// falling back to the status text.
func upstreamMessage(body []byte, statusCode int) string {
	var payload struct {
		Message interface{} `json:"message"`
		Error   interface{} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, candidate := range []interface{}{payload.Message, payload.Error} {
			switch value := candidate.(type) {
			case string:
				if value != "" {
					return value
				}
			case map[string]interface{}:
				if text, ok := value["message"].(string); ok && text != "" {
					return text
				}
			}
		}
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
