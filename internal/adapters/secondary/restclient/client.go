package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// Client talks JSON over HTTP to the central registry. Every failure —
// transport, authentication, server error, missing entity — is wrapped in
// domain.ErrRetrieval so the reconciler can fall back to the local cache.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	downloadDir string
}

var _ ports.RegistryClient = (*Client)(nil)

func New(baseURL, token, downloadDir string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		token:       token,
		downloadDir: downloadDir,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.WithFields(log.Fields{"method": method, "path": path}).Debug("registry request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registry unreachable: %v: %w", err, domain.ErrRetrieval)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("registry returned %s for %s %s: %w", resp.Status, method, path, domain.ErrRetrieval)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode registry response: %v: %w", err, domain.ErrRetrieval)
	}
	return nil
}

func get[T any](c *Client, ctx context.Context, path string) (T, error) {
	var out T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func create[T any](c *Client, ctx context.Context, path string, body T) (T, error) {
	var out T
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ============================================================================
// Benchmarks
// ============================================================================

func (c *Client) GetBenchmark(ctx context.Context, id int64) (*domain.Benchmark, error) {
	return get[*domain.Benchmark](c, ctx, fmt.Sprintf("/benchmarks/%d", id))
}

func (c *Client) GetBenchmarkModels(ctx context.Context, id int64) ([]int64, error) {
	out, err := get[struct {
		Models []int64 `json:"models"`
	}](c, ctx, fmt.Sprintf("/benchmarks/%d/models", id))
	if err != nil {
		return nil, err
	}
	return out.Models, nil
}

func (c *Client) ListBenchmarks(ctx context.Context, filter ports.ListFilter) ([]*domain.Benchmark, error) {
	return get[[]*domain.Benchmark](c, ctx, listPath("benchmarks", filter))
}

func (c *Client) CreateBenchmark(ctx context.Context, b *domain.Benchmark) (*domain.Benchmark, error) {
	return create(c, ctx, "/benchmarks", b)
}

// ============================================================================
// Cubes
// ============================================================================

func (c *Client) GetCube(ctx context.Context, id int64) (*domain.Cube, error) {
	return get[*domain.Cube](c, ctx, fmt.Sprintf("/mlcubes/%d", id))
}

func (c *Client) ListCubes(ctx context.Context, filter ports.ListFilter) ([]*domain.Cube, error) {
	return get[[]*domain.Cube](c, ctx, listPath("mlcubes", filter))
}

func (c *Client) CreateCube(ctx context.Context, cube *domain.Cube) (*domain.Cube, error) {
	return create(c, ctx, "/mlcubes", cube)
}

// ============================================================================
// Datasets
// ============================================================================

func (c *Client) GetDataset(ctx context.Context, id int64) (*domain.Dataset, error) {
	return get[*domain.Dataset](c, ctx, fmt.Sprintf("/datasets/%d", id))
}

func (c *Client) ListDatasets(ctx context.Context, filter ports.ListFilter) ([]*domain.Dataset, error) {
	return get[[]*domain.Dataset](c, ctx, listPath("datasets", filter))
}

func (c *Client) CreateDataset(ctx context.Context, d *domain.Dataset) (*domain.Dataset, error) {
	return create(c, ctx, "/datasets", d)
}

// ============================================================================
// Results
// ============================================================================

func (c *Client) GetResult(ctx context.Context, id int64) (*domain.Result, error) {
	return get[*domain.Result](c, ctx, fmt.Sprintf("/results/%d", id))
}

func (c *Client) ListResults(ctx context.Context, filter ports.ListFilter) ([]*domain.Result, error) {
	return get[[]*domain.Result](c, ctx, listPath("results", filter))
}

func (c *Client) CreateResult(ctx context.Context, r *domain.Result) (*domain.Result, error) {
	return create(c, ctx, "/results", r)
}

// ============================================================================
// Associations
// ============================================================================

func (c *Client) ListDatasetAssociations(ctx context.Context, filter ports.ListFilter) ([]*domain.Association, error) {
	return get[[]*domain.Association](c, ctx, assocPath("datasets", filter))
}

func (c *Client) ListCubeAssociations(ctx context.Context, filter ports.ListFilter) ([]*domain.Association, error) {
	return get[[]*domain.Association](c, ctx, assocPath("mlcubes", filter))
}

func (c *Client) AssociateDataset(ctx context.Context, a *domain.Association) (*domain.Association, error) {
	return create(c, ctx, "/datasets/benchmarks", a)
}

func (c *Client) AssociateCube(ctx context.Context, a *domain.Association) (*domain.Association, error) {
	return create(c, ctx, "/mlcubes/benchmarks", a)
}

func (c *Client) SetDatasetAssociationApproval(ctx context.Context, benchmarkID, datasetID int64, status domain.ApprovalStatus) (*domain.Association, error) {
	var out *domain.Association
	path := fmt.Sprintf("/datasets/%d/benchmarks/%d", datasetID, benchmarkID)
	err := c.do(ctx, http.MethodPut, path, map[string]any{"approval_status": status}, &out)
	return out, err
}

func (c *Client) SetCubeAssociationApproval(ctx context.Context, benchmarkID, cubeID int64, status domain.ApprovalStatus) (*domain.Association, error) {
	var out *domain.Association
	path := fmt.Sprintf("/mlcubes/%d/benchmarks/%d", cubeID, benchmarkID)
	err := c.do(ctx, http.MethodPut, path, map[string]any{"approval_status": status}, &out)
	return out, err
}

// ============================================================================
// Misc
// ============================================================================

func (c *Client) CurrentUser(ctx context.Context) (int64, error) {
	out, err := get[struct {
		ID int64 `json:"id"`
	}](c, ctx, "/me")
	if err != nil {
		return 0, err
	}
	return out.ID, nil
}

// DownloadDemoDataset streams a demo archive into the download directory.
// The URL may point outside the registry host; no auth header is attached.
func (c *Client) DownloadDemoDataset(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download demo dataset: %v: %w", err, domain.ErrRetrieval)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("demo dataset download returned %s: %w", resp.Status, domain.ErrRetrieval)
	}

	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(c.downloadDir, filepath.Base(req.URL.Path))
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("save demo dataset: %w", err)
	}
	return dest, nil
}

func listPath(resource string, filter ports.ListFilter) string {
	if filter.Mine {
		return "/me/" + resource
	}
	return "/" + resource
}

func assocPath(resource string, filter ports.ListFilter) string {
	path := fmt.Sprintf("/me/%s/associations", resource)
	if filter.Benchmark != 0 {
		path = fmt.Sprintf("%s?benchmark=%d", path, filter.Benchmark)
	}
	return path
}
