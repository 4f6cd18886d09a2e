package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// MockRegistryClient is a mock of RegistryClient.
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) GetBenchmark(ctx context.Context, id int64) (*domain.Benchmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Benchmark), args.Error(1)
}

func (m *MockRegistryClient) GetBenchmarkModels(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRegistryClient) ListBenchmarks(ctx context.Context, filter ports.ListFilter) ([]*domain.Benchmark, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Benchmark), args.Error(1)
}

func (m *MockRegistryClient) CreateBenchmark(ctx context.Context, b *domain.Benchmark) (*domain.Benchmark, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Benchmark), args.Error(1)
}

func (m *MockRegistryClient) GetCube(ctx context.Context, id int64) (*domain.Cube, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cube), args.Error(1)
}

func (m *MockRegistryClient) ListCubes(ctx context.Context, filter ports.ListFilter) ([]*domain.Cube, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Cube), args.Error(1)
}

func (m *MockRegistryClient) CreateCube(ctx context.Context, c *domain.Cube) (*domain.Cube, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cube), args.Error(1)
}

func (m *MockRegistryClient) GetDataset(ctx context.Context, id int64) (*domain.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

func (m *MockRegistryClient) ListDatasets(ctx context.Context, filter ports.ListFilter) ([]*domain.Dataset, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Dataset), args.Error(1)
}

func (m *MockRegistryClient) CreateDataset(ctx context.Context, d *domain.Dataset) (*domain.Dataset, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

func (m *MockRegistryClient) GetResult(ctx context.Context, id int64) (*domain.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockRegistryClient) ListResults(ctx context.Context, filter ports.ListFilter) ([]*domain.Result, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Result), args.Error(1)
}

func (m *MockRegistryClient) CreateResult(ctx context.Context, r *domain.Result) (*domain.Result, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockRegistryClient) ListDatasetAssociations(ctx context.Context, filter ports.ListFilter) ([]*domain.Association, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Association), args.Error(1)
}

func (m *MockRegistryClient) ListCubeAssociations(ctx context.Context, filter ports.ListFilter) ([]*domain.Association, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Association), args.Error(1)
}

func (m *MockRegistryClient) AssociateDataset(ctx context.Context, a *domain.Association) (*domain.Association, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Association), args.Error(1)
}

func (m *MockRegistryClient) AssociateCube(ctx context.Context, a *domain.Association) (*domain.Association, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Association), args.Error(1)
}

func (m *MockRegistryClient) SetDatasetAssociationApproval(ctx context.Context, benchmarkID, datasetID int64, status domain.ApprovalStatus) (*domain.Association, error) {
	args := m.Called(ctx, benchmarkID, datasetID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Association), args.Error(1)
}

func (m *MockRegistryClient) SetCubeAssociationApproval(ctx context.Context, benchmarkID, cubeID int64, status domain.ApprovalStatus) (*domain.Association, error) {
	args := m.Called(ctx, benchmarkID, cubeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Association), args.Error(1)
}

func (m *MockRegistryClient) DownloadDemoDataset(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

func (m *MockRegistryClient) CurrentUser(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocalStore is a mock of LocalStore.
type MockLocalStore struct {
	mock.Mock
}

func (m *MockLocalStore) ReadRecord(kind domain.Kind, uid string) ([]byte, error) {
	args := m.Called(kind, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLocalStore) WriteRecord(kind domain.Kind, uid string, record []byte) error {
	args := m.Called(kind, uid, record)
	return args.Error(0)
}

func (m *MockLocalStore) ListUIDs(kind domain.Kind) ([]string, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLocalStore) Rekey(kind domain.Kind, oldUID, newUID string) error {
	args := m.Called(kind, oldUID, newUID)
	return args.Error(0)
}

func (m *MockLocalStore) Link(kind domain.Kind, uid, target string) error {
	args := m.Called(kind, uid, target)
	return args.Error(0)
}

func (m *MockLocalStore) EntityDir(kind domain.Kind, uid string) string {
	args := m.Called(kind, uid)
	return args.String(0)
}

// MockCubeRunner is a mock of CubeRunner.
type MockCubeRunner struct {
	mock.Mock
}

func (m *MockCubeRunner) Run(ctx context.Context, spec ports.RunSpec) error {
	args := m.Called(ctx, spec)
	return args.Error(0)
}
