package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
	"benchreg/internal/testutil"
)

type associationFixture struct {
	client  *testutil.MockRegistryClient
	store   *testutil.MockLocalStore
	service *AssociationService
}

func newAssociationFixture() *associationFixture {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	store.On("WriteRecord", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := NewAssociationService(
		client,
		NewBenchmarkReconciler(client, store),
		NewDatasetReconciler(client, store),
		NewCubeReconciler(client, store),
		NewAssociationReconciler(client),
	)
	return &associationFixture{client: client, store: store, service: service}
}

func (f *associationFixture) givenBenchmark(id int64, prepCube string, owner int64) {
	f.client.On("GetBenchmark", mock.Anything, id).Return(&domain.Benchmark{
		Identity:            domain.Identity{ID: id, Owner: owner},
		Name:                "bmk",
		DataPreparationCube: prepCube,
		ReferenceModelCube:  "20",
		EvaluatorCube:       "30",
	}, nil)
	f.client.On("GetBenchmarkModels", mock.Anything, id).Return([]int64{20}, nil)
}

func TestRequestDatasetAssociation(t *testing.T) {
	f := newAssociationFixture()
	f.givenBenchmark(1, "11", 7)
	f.client.On("GetDataset", mock.Anything, int64(2)).Return(&domain.Dataset{
		Identity:            domain.Identity{ID: 2, Owner: 10},
		DataPreparationCube: "11",
	}, nil)
	f.client.On("AssociateDataset", mock.Anything, mock.AnythingOfType("*domain.Association")).
		Return(&domain.Association{Benchmark: 1, Dataset: 2, ApprovalStatus: domain.StatusPending}, nil)

	assoc, err := f.service.RequestDatasetAssociation(context.Background(), "2", "1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, assoc.ApprovalStatus)

	sent := f.client.Calls[len(f.client.Calls)-1].Arguments.Get(1).(*domain.Association)
	assert.Equal(t, int64(10), sent.Initiator)
	assert.Equal(t, int64(7), sent.BenchmarkOwner)
}

func TestRequestDatasetAssociationIncompatiblePrepCube(t *testing.T) {
	f := newAssociationFixture()
	f.givenBenchmark(1, "11", 7)
	f.client.On("GetDataset", mock.Anything, int64(2)).Return(&domain.Dataset{
		Identity:            domain.Identity{ID: 2, Owner: 10},
		DataPreparationCube: "99",
	}, nil)

	_, err := f.service.RequestDatasetAssociation(context.Background(), "2", "1")

	assert.ErrorIs(t, err, domain.ErrIncompatibleAssociation)
	f.client.AssertNotCalled(t, "AssociateDataset", mock.Anything, mock.Anything)
}

func TestRequestDatasetAssociationRequiresRegistration(t *testing.T) {
	f := newAssociationFixture()
	f.givenBenchmark(1, "11", 7)
	f.store.On("ReadRecord", domain.KindDataset, "deadbeef").
		Return(datasetRecord(t, &domain.Dataset{
			Identity:            domain.Identity{Fingerprint: "deadbeef"},
			DataPreparationCube: "11",
		}), nil)

	_, err := f.service.RequestDatasetAssociation(context.Background(), "deadbeef", "1")

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	f.client.AssertNotCalled(t, "AssociateDataset", mock.Anything, mock.Anything)
}

func TestRequestModelAssociationRequiresOperationState(t *testing.T) {
	f := newAssociationFixture()
	f.givenBenchmark(1, "11", 7)
	f.client.On("GetCube", mock.Anything, int64(20)).Return(&domain.Cube{
		Identity: domain.Identity{ID: 20, Owner: 10},
		State:    domain.StateDevelopment,
	}, nil)

	_, err := f.service.RequestModelAssociation(context.Background(), "20", "1")

	assert.ErrorIs(t, err, domain.ErrIncompatibleAssociation)
	f.client.AssertNotCalled(t, "AssociateCube", mock.Anything, mock.Anything)
}

func TestRequestModelAssociation(t *testing.T) {
	f := newAssociationFixture()
	f.givenBenchmark(1, "11", 7)
	f.client.On("GetCube", mock.Anything, int64(20)).Return(&domain.Cube{
		Identity: domain.Identity{ID: 20, Owner: 10},
		State:    domain.StateOperation,
	}, nil)
	f.client.On("AssociateCube", mock.Anything, mock.AnythingOfType("*domain.Association")).
		Return(&domain.Association{Benchmark: 1, ModelCube: 20, ApprovalStatus: domain.StatusPending}, nil)

	assoc, err := f.service.RequestModelAssociation(context.Background(), "20", "1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, assoc.ApprovalStatus)
}

func (f *associationFixture) givenPendingDatasetAssociation(owner int64) {
	f.client.On("ListDatasetAssociations", mock.Anything, mock.Anything).Return([]*domain.Association{{
		Benchmark:      1,
		Dataset:        2,
		ApprovalStatus: domain.StatusPending,
		RequestedAt:    time.Now(),
		Initiator:      10,
		BenchmarkOwner: owner,
	}}, nil)
	f.client.On("ListCubeAssociations", mock.Anything, mock.Anything).Return([]*domain.Association{}, nil)
}

func TestApproveDatasetAssociation(t *testing.T) {
	f := newAssociationFixture()
	f.givenPendingDatasetAssociation(7)
	f.client.On("CurrentUser", mock.Anything).Return(int64(7), nil)
	f.client.On("SetDatasetAssociationApproval", mock.Anything, int64(1), int64(2), domain.StatusApproved).
		Return(&domain.Association{Benchmark: 1, Dataset: 2, ApprovalStatus: domain.StatusApproved}, nil)

	assoc, err := f.service.ApproveDataset(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, assoc.ApprovalStatus)
}

func TestApproveRequiresBenchmarkOwner(t *testing.T) {
	f := newAssociationFixture()
	f.givenPendingDatasetAssociation(7)
	f.client.On("CurrentUser", mock.Anything).Return(int64(10), nil)

	_, err := f.service.ApproveDataset(context.Background(), 1, 2)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	f.client.AssertNotCalled(t, "SetDatasetAssociationApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecidedAssociationIsImmutable(t *testing.T) {
	f := newAssociationFixture()
	f.client.On("ListDatasetAssociations", mock.Anything, mock.Anything).Return([]*domain.Association{{
		Benchmark:      1,
		Dataset:        2,
		ApprovalStatus: domain.StatusApproved,
		BenchmarkOwner: 7,
	}}, nil)
	f.client.On("ListCubeAssociations", mock.Anything, mock.Anything).Return([]*domain.Association{}, nil)
	f.client.On("CurrentUser", mock.Anything).Return(int64(7), nil)

	_, err := f.service.RejectDataset(context.Background(), 1, 2)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.client.AssertNotCalled(t, "SetDatasetAssociationApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListConsultsTheRegistry(t *testing.T) {
	f := newAssociationFixture()
	f.client.On("ListDatasetAssociations", mock.Anything, mock.Anything).Return([]*domain.Association{
		{Benchmark: 1, Dataset: 2, ApprovalStatus: domain.StatusPending},
	}, nil)
	f.client.On("ListCubeAssociations", mock.Anything, mock.Anything).Return([]*domain.Association{
		{Benchmark: 1, ModelCube: 20, ApprovalStatus: domain.StatusApproved},
	}, nil)

	all, err := f.service.List(context.Background(), ScopeAll, ports.ListFilter{Mine: true})

	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListLocalOnlyIsEmpty(t *testing.T) {
	f := newAssociationFixture()

	all, err := f.service.List(context.Background(), ScopeLocalOnly, ports.ListFilter{Mine: true})

	require.NoError(t, err)
	assert.Empty(t, all)
	f.client.AssertNotCalled(t, "ListDatasetAssociations", mock.Anything, mock.Anything)
	f.client.AssertNotCalled(t, "ListCubeAssociations", mock.Anything, mock.Anything)
}
