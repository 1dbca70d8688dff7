package boxes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTP renders through a remote glyphbox service's /api/box endpoint.
type HTTP struct {
	BaseURL string
	Client  *http.Client
}

// Compile-time check that HTTP implements Renderer
var _ Renderer = (*HTTP)(nil)

// NewHTTP creates an HTTP renderer for baseURL. A trailing slash is
// ignored.
func NewHTTP(baseURL string) *HTTP {
	return &HTTP{BaseURL: strings.TrimSuffix(baseURL, "/"), Client: http.DefaultClient}
}

// Render posts req and decodes the response.
func (h *HTTP) Render(ctx context.Context, req Request) (Response, error) {
	if req.EOL == "" {
		req.EOL = EOLLF
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("boxes api: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/api/box", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("boxes api: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("boxes api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Response{}, fmt.Errorf("boxes api error: %d %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("boxes api: decode response: %w", err)
	}
	return out, nil
}
