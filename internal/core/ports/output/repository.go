package ports

import (
	"context"

	"benchreg/internal/core/domain"
)

// Server-side repositories backing the reference registry (benchregd).
// The registry assigns integer identifiers and timestamps on create.

type BenchmarkRepository interface {
	Create(ctx context.Context, b *domain.Benchmark) error
	GetByID(ctx context.Context, id int64) (*domain.Benchmark, error)
	List(ctx context.Context, owner int64) ([]*domain.Benchmark, error)
	// ListModels returns the cube IDs of approved model associations.
	ListModels(ctx context.Context, benchmarkID int64) ([]int64, error)
}

type CubeRepository interface {
	Create(ctx context.Context, c *domain.Cube) error
	GetByID(ctx context.Context, id int64) (*domain.Cube, error)
	List(ctx context.Context, owner int64) ([]*domain.Cube, error)
}

type DatasetRepository interface {
	Create(ctx context.Context, d *domain.Dataset) error
	GetByID(ctx context.Context, id int64) (*domain.Dataset, error)
	List(ctx context.Context, owner int64) ([]*domain.Dataset, error)
}

type ResultRepository interface {
	Create(ctx context.Context, r *domain.Result) error
	GetByID(ctx context.Context, id int64) (*domain.Result, error)
	List(ctx context.Context, owner int64) ([]*domain.Result, error)
}

type AssociationRepository interface {
	Create(ctx context.Context, a *domain.Association) error
	// Get resolves the newest association between a benchmark and a
	// counterpart of the given kind.
	Get(ctx context.Context, benchmarkID, counterpartID int64, kind domain.Kind) (*domain.Association, error)
	// ListByUser returns associations the user participates in, on either
	// side, optionally narrowed to one benchmark.
	ListByUser(ctx context.Context, userID int64, kind domain.Kind, benchmarkID int64) ([]*domain.Association, error)
	UpdateStatus(ctx context.Context, a *domain.Association) error
}
