package ports

import (
	"context"

	"benchreg/internal/core/domain"
)

// ListFilter narrows registry list calls.
type ListFilter struct {
	// Mine restricts results to entities owned by the authenticated user.
	Mine bool
	// Benchmark restricts association listings to one benchmark. Zero means
	// no restriction.
	Benchmark int64
}

// RegistryClient is the remote side of the reconciler. Every failure is
// reported wrapped in domain.ErrRetrieval so callers can distinguish
// "registry unavailable" from terminal conditions and fall back to the
// local cache.
type RegistryClient interface {
	GetBenchmark(ctx context.Context, id int64) (*domain.Benchmark, error)
	// GetBenchmarkModels returns the reference model plus all approved model
	// associations for a benchmark.
	GetBenchmarkModels(ctx context.Context, id int64) ([]int64, error)
	ListBenchmarks(ctx context.Context, filter ListFilter) ([]*domain.Benchmark, error)
	CreateBenchmark(ctx context.Context, b *domain.Benchmark) (*domain.Benchmark, error)

	GetCube(ctx context.Context, id int64) (*domain.Cube, error)
	ListCubes(ctx context.Context, filter ListFilter) ([]*domain.Cube, error)
	CreateCube(ctx context.Context, c *domain.Cube) (*domain.Cube, error)

	GetDataset(ctx context.Context, id int64) (*domain.Dataset, error)
	ListDatasets(ctx context.Context, filter ListFilter) ([]*domain.Dataset, error)
	CreateDataset(ctx context.Context, d *domain.Dataset) (*domain.Dataset, error)

	GetResult(ctx context.Context, id int64) (*domain.Result, error)
	ListResults(ctx context.Context, filter ListFilter) ([]*domain.Result, error)
	CreateResult(ctx context.Context, r *domain.Result) (*domain.Result, error)

	ListDatasetAssociations(ctx context.Context, filter ListFilter) ([]*domain.Association, error)
	ListCubeAssociations(ctx context.Context, filter ListFilter) ([]*domain.Association, error)
	AssociateDataset(ctx context.Context, a *domain.Association) (*domain.Association, error)
	AssociateCube(ctx context.Context, a *domain.Association) (*domain.Association, error)
	SetDatasetAssociationApproval(ctx context.Context, benchmarkID, datasetID int64, status domain.ApprovalStatus) (*domain.Association, error)
	SetCubeAssociationApproval(ctx context.Context, benchmarkID, cubeID int64, status domain.ApprovalStatus) (*domain.Association, error)

	// DownloadDemoDataset fetches a benchmark's demo archive and returns the
	// local file path. Integrity verification is the caller's concern.
	DownloadDemoDataset(ctx context.Context, url string) (string, error)

	// CurrentUser returns the authenticated principal's registry ID.
	CurrentUser(ctx context.Context) (int64, error)
}
