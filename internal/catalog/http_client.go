package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"adcheck/internal/config"
	"adcheck/internal/domain"
)

// HTTPClient reads the spreadsheet-backed catalog web endpoint. The endpoint
// takes query parameters and wraps every reply in a success/error envelope.
// Reads are treated as idempotent for a given catalog version.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a catalog client from config.
func NewHTTPClient(cfg *config.CatalogConfig) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// envelope is the catalog endpoint's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data"`
}

func (c *HTTPClient) get(ctx context.Context, params url.Values, out interface{}) error {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: calling catalog: %v", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading catalog response: %v", domain.ErrUpstreamFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: catalog returned status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: decoding catalog envelope: %v", domain.ErrUpstreamFailure, err)
	}
	if !env.Success {
		return fmt.Errorf("%w: catalog error: %s", domain.ErrUpstreamFailure, env.Error)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decoding catalog data: %v", domain.ErrUpstreamFailure, err)
	}
	return nil
}

// ListAdTypes returns the document-type categories the catalog knows.
func (c *HTTPClient) ListAdTypes(ctx context.Context) ([]domain.AdType, error) {
	params := url.Values{}
	params.Set("action", "types")

	var types []domain.AdType
	if err := c.get(ctx, params, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// ListChecklist returns the checklist records for one ad type.
func (c *HTTPClient) ListChecklist(ctx context.Context, adType domain.AdType) ([]domain.ChecklistItem, error) {
	params := url.Values{}
	params.Set("action", "list")
	params.Set("kind", "checklist")
	params.Set("type", string(adType))

	var items []domain.ChecklistItem
	if err := c.get(ctx, params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListScenes returns the tabular scene records for one ad type.
func (c *HTTPClient) ListScenes(ctx context.Context, adType domain.AdType) ([]domain.Scene, error) {
	params := url.Values{}
	params.Set("action", "list")
	params.Set("kind", "scene")
	params.Set("type", string(adType))

	var scenes []domain.Scene
	if err := c.get(ctx, params, &scenes); err != nil {
		return nil, err
	}
	for i := range scenes {
		scenes[i].Kind = domain.SceneKindTabular
	}
	return scenes, nil
}
