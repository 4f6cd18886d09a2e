package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"benchreg/internal/core/domain"
)

// MockBenchmarkRepo is a mock of BenchmarkRepository.
type MockBenchmarkRepo struct {
	mock.Mock
}

func (m *MockBenchmarkRepo) Create(ctx context.Context, b *domain.Benchmark) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBenchmarkRepo) GetByID(ctx context.Context, id int64) (*domain.Benchmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Benchmark), args.Error(1)
}

func (m *MockBenchmarkRepo) List(ctx context.Context, owner int64) ([]*domain.Benchmark, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Benchmark), args.Error(1)
}

func (m *MockBenchmarkRepo) ListModels(ctx context.Context, benchmarkID int64) ([]int64, error) {
	args := m.Called(ctx, benchmarkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCubeRepo is a mock of CubeRepository.
type MockCubeRepo struct {
	mock.Mock
}

func (m *MockCubeRepo) Create(ctx context.Context, c *domain.Cube) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCubeRepo) GetByID(ctx context.Context, id int64) (*domain.Cube, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cube), args.Error(1)
}

func (m *MockCubeRepo) List(ctx context.Context, owner int64) ([]*domain.Cube, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Cube), args.Error(1)
}

// MockDatasetRepo is a mock of DatasetRepository.
type MockDatasetRepo struct {
	mock.Mock
}

func (m *MockDatasetRepo) Create(ctx context.Context, d *domain.Dataset) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDatasetRepo) GetByID(ctx context.Context, id int64) (*domain.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

func (m *MockDatasetRepo) List(ctx context.Context, owner int64) ([]*domain.Dataset, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Dataset), args.Error(1)
}

// MockResultRepo is a mock of ResultRepository.
type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) Create(ctx context.Context, r *domain.Result) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResultRepo) GetByID(ctx context.Context, id int64) (*domain.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockResultRepo) List(ctx context.Context, owner int64) ([]*domain.Result, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Result), args.Error(1)
}

// MockAssociationRepo is a mock of AssociationRepository.
type MockAssociationRepo struct {
	mock.Mock
}

func (m *MockAssociationRepo) Create(ctx context.Context, a *domain.Association) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssociationRepo) Get(ctx context.Context, benchmarkID, counterpartID int64, kind domain.Kind) (*domain.Association, error) {
	args := m.Called(ctx, benchmarkID, counterpartID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Association), args.Error(1)
}

func (m *MockAssociationRepo) ListByUser(ctx context.Context, userID int64, kind domain.Kind, benchmarkID int64) ([]*domain.Association, error) {
	args := m.Called(ctx, userID, kind, benchmarkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Association), args.Error(1)
}

func (m *MockAssociationRepo) UpdateStatus(ctx context.Context, a *domain.Association) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
