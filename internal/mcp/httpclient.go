package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/apperr"
	"github.com/meltforce/fitrec/internal/catalog"
	"github.com/meltforce/fitrec/internal/recommend"
)

// HTTPClient implements DataSource by calling the fitrec REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the catalog and advisor live on the remote server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Longer than the server's advisor timeout.
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

// do sends a request and returns the body of a 200 response. Error
// envelopes come back as *apperr.Error carrying the server's message.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Collaborator("fitrec server unreachable", fmt.Errorf("httpclient: %s: %w", path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(path, resp.StatusCode, body)
	}
	return body, nil
}

func remoteError(path string, status int, body []byte) error {
	var env struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &env) == nil && env.Error != "" {
		msg = env.Error
	}
	cause := fmt.Errorf("httpclient: %s returned %d", path, status)
	if status >= 400 && status < 500 {
		return &apperr.Error{Kind: apperr.KindValidation, Message: msg, Cause: cause}
	}
	return apperr.Collaborator(msg, cause)
}

func (c *HTTPClient) Recommend(ctx context.Context, workoutType, difficultyLevel string) ([]catalog.WorkoutRecord, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/recommend", map[string]string{
		"workoutType":     workoutType,
		"difficultyLevel": difficultyLevel,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Recommendations []catalog.WorkoutRecord `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode recommendations: %w", err)
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []catalog.WorkoutRecord{}
	}
	return resp.Recommendations, nil
}

func (c *HTTPClient) Advise(ctx context.Context, m advisor.Metrics) (*advisor.Result, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/recommendations", m)
	if err != nil {
		return nil, err
	}

	res, err := advisor.DecodeResult(body)
	if err != nil {
		return nil, apperr.Collaborator("unexpected advisor result from server", err)
	}
	return res, nil
}

func (c *HTTPClient) ListTypes(ctx context.Context) ([]recommend.TypeSummary, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/catalog/types", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Types []recommend.TypeSummary `json:"types"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode types: %w", err)
	}
	return resp.Types, nil
}

// LoadCatalog fetches the full catalog. HTTPClient is therefore also a
// catalog.Source.
func (c *HTTPClient) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/catalog", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Catalog []catalog.Bucket `json:"catalog"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode catalog: %w", err)
	}
	return catalog.New(resp.Catalog)
}
