package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
	"benchreg/internal/testutil"
)

func datasetRecord(t *testing.T, d *domain.Dataset) []byte {
	t.Helper()
	record, err := yaml.Marshal(d)
	require.NoError(t, err)
	return record
}

func registered(id int64, name string) *domain.Dataset {
	return &domain.Dataset{
		Identity: domain.Identity{ID: id},
		Name:     name,
	}
}

func TestListAllMergesRemoteFirst(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	remote := []*domain.Dataset{registered(1, "remote-1"), registered(2, "remote-2")}
	client.On("ListDatasets", mock.Anything, mock.Anything).Return(remote, nil)

	store.On("ListUIDs", domain.KindDataset).Return([]string{"2", "3"}, nil)
	store.On("ReadRecord", domain.KindDataset, "2").Return(datasetRecord(t, registered(2, "stale-local-2")), nil)
	store.On("ReadRecord", domain.KindDataset, "3").Return(datasetRecord(t, registered(3, "local-3")), nil)

	all, err := r.ListAll(context.Background(), ScopeAll, ports.ListFilter{})

	require.NoError(t, err)
	require.Len(t, all, 3)
	uids := []string{all[0].UID(), all[1].UID(), all[2].UID()}
	assert.Equal(t, []string{"1", "2", "3"}, uids)
	// The registry copy wins over the stale local record with the same UID.
	assert.Equal(t, "remote-2", all[1].Name)
}

func TestListAllSurvivesRegistryOutage(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	client.On("ListDatasets", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("registry unreachable: %w", domain.ErrRetrieval))
	store.On("ListUIDs", domain.KindDataset).Return([]string{"3"}, nil)
	store.On("ReadRecord", domain.KindDataset, "3").Return(datasetRecord(t, registered(3, "local-3")), nil)

	all, err := r.ListAll(context.Background(), ScopeAll, ports.ListFilter{})

	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "3", all[0].UID())
}

func TestListAllLocalOnlyNeverTouchesNetwork(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	store.On("ListUIDs", domain.KindDataset).Return([]string{"3"}, nil)
	store.On("ReadRecord", domain.KindDataset, "3").Return(datasetRecord(t, registered(3, "local-3")), nil)

	all, err := r.ListAll(context.Background(), ScopeLocalOnly, ports.ListFilter{})

	require.NoError(t, err)
	require.Len(t, all, 1)
	client.AssertNotCalled(t, "ListDatasets", mock.Anything, mock.Anything)
}

func TestListAllPropagatesCorruptRecord(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	client.On("ListDatasets", mock.Anything, mock.Anything).Return([]*domain.Dataset{}, nil)
	store.On("ListUIDs", domain.KindDataset).Return([]string{"3"}, nil)
	store.On("ReadRecord", domain.KindDataset, "3").Return([]byte(":\nnot yaml\n\t"), nil)

	_, err := r.ListAll(context.Background(), ScopeAll, ports.ListFilter{})

	assert.ErrorIs(t, err, domain.ErrLocalRecordCorrupt)
}

func TestListAllHidesSyntheticEntities(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	synthetic := &domain.Dataset{Identity: domain.Identity{TempUID: "tmp_demo"}, Name: "test-only"}
	client.On("ListDatasets", mock.Anything, mock.Anything).Return([]*domain.Dataset{}, nil)
	store.On("ListUIDs", domain.KindDataset).Return([]string{"tmp_demo"}, nil)
	store.On("ReadRecord", domain.KindDataset, "tmp_demo").Return(datasetRecord(t, synthetic), nil)

	all, err := r.ListAll(context.Background(), ScopeAll, ports.ListFilter{})

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetWritesThroughToLocalStore(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	client.On("GetDataset", mock.Anything, int64(1)).Return(registered(1, "remote"), nil)
	store.On("WriteRecord", domain.KindDataset, "1", mock.Anything).Return(nil)

	d, err := r.Get(context.Background(), "1", ScopeAll)

	require.NoError(t, err)
	assert.Equal(t, "remote", d.Name)
	store.AssertCalled(t, "WriteRecord", domain.KindDataset, "1", mock.Anything)
}

func TestGetFailedWriteThroughIsNotFatal(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	client.On("GetDataset", mock.Anything, int64(1)).Return(registered(1, "remote"), nil)
	store.On("WriteRecord", domain.KindDataset, "1", mock.Anything).Return(fmt.Errorf("disk full"))

	d, err := r.Get(context.Background(), "1", ScopeAll)

	require.NoError(t, err)
	assert.Equal(t, "remote", d.Name)
}

func TestGetFallsBackToLocalOnRetrievalError(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	client.On("GetDataset", mock.Anything, int64(3)).
		Return(nil, fmt.Errorf("registry unreachable: %w", domain.ErrRetrieval))
	store.On("ReadRecord", domain.KindDataset, "3").Return(datasetRecord(t, registered(3, "cached")), nil)
	store.On("WriteRecord", domain.KindDataset, "3", mock.Anything).Return(nil)

	d, err := r.Get(context.Background(), "3", ScopeAll)

	require.NoError(t, err)
	assert.Equal(t, "cached", d.Name)
}

func TestGetPropagatesTerminalRemoteError(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	client.On("GetDataset", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)

	_, err := r.Get(context.Background(), "9", ScopeAll)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	store.AssertNotCalled(t, "ReadRecord", mock.Anything, mock.Anything)
}

func TestGetUnknownUIDFallsThroughToNotFound(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	// Fingerprint UIDs are not registry identifiers; the remote tier reports
	// a retrieval failure and the local tier has nothing either.
	store.On("ReadRecord", domain.KindDataset, "deadbeef").
		Return(nil, fmt.Errorf("no record: %w", domain.ErrNotFound))

	_, err := r.Get(context.Background(), "deadbeef", ScopeAll)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadRejectsSyntheticEntities(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	synthetic := &domain.Dataset{Identity: domain.Identity{TempUID: "tmp_demo"}}

	_, err := r.Upload(context.Background(), synthetic)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	client.AssertNotCalled(t, "CreateDataset", mock.Anything, mock.Anything)
}

func TestUploadRekeysFingerprintToAssignedID(t *testing.T) {
	client := new(testutil.MockRegistryClient)
	store := new(testutil.MockLocalStore)
	r := NewDatasetReconciler(client, store)

	local := &domain.Dataset{Identity: domain.Identity{Fingerprint: "deadbeef"}, Name: "mine"}
	created := &domain.Dataset{Identity: domain.Identity{ID: 5, Fingerprint: "deadbeef"}, Name: "mine"}

	client.On("CreateDataset", mock.Anything, local).Return(created, nil)
	store.On("Rekey", domain.KindDataset, "deadbeef", "5").Return(nil)
	store.On("WriteRecord", domain.KindDataset, "5", mock.Anything).Return(nil)

	got, err := r.Upload(context.Background(), local)

	require.NoError(t, err)
	assert.Equal(t, "5", got.UID())
	store.AssertCalled(t, "Rekey", domain.KindDataset, "deadbeef", "5")
}
