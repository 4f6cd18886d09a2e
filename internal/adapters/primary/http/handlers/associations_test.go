package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"benchreg/internal/core/domain"
	"benchreg/internal/testutil"
)

type repoSet struct {
	benchmarks   *testutil.MockBenchmarkRepo
	cubes        *testutil.MockCubeRepo
	datasets     *testutil.MockDatasetRepo
	results      *testutil.MockResultRepo
	associations *testutil.MockAssociationRepo
}

func setupRouter() (*repoSet, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	repos := &repoSet{
		benchmarks:   new(testutil.MockBenchmarkRepo),
		cubes:        new(testutil.MockCubeRepo),
		datasets:     new(testutil.MockDatasetRepo),
		results:      new(testutil.MockResultRepo),
		associations: new(testutil.MockAssociationRepo),
	}

	h := New(repos.benchmarks, repos.cubes, repos.datasets, repos.results, repos.associations)
	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	return repos, r
}

func doJSON(r *gin.Engine, method, path string, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDatasetAssociation(t *testing.T) {
	repos, r := setupRouter()

	repos.benchmarks.On("GetByID", mock.Anything, int64(1)).Return(&domain.Benchmark{
		Identity:            domain.Identity{ID: 1, Owner: 7},
		DataPreparationCube: "11",
	}, nil)
	repos.datasets.On("GetByID", mock.Anything, int64(2)).Return(&domain.Dataset{
		Identity:            domain.Identity{ID: 2, Owner: 10},
		DataPreparationCube: "11",
	}, nil)
	repos.associations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Association")).Return(nil)

	w := doJSON(r, "POST", "/api/v1/datasets/benchmarks", "10", gin.H{"benchmark": 1, "dataset": 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	created := repos.associations.Calls[0].Arguments.Get(1).(*domain.Association)
	assert.Equal(t, int64(10), created.Initiator)
	assert.Equal(t, int64(7), created.BenchmarkOwner)
	assert.Equal(t, domain.StatusPending, created.ApprovalStatus)
}

func TestCreateDatasetAssociationIncompatible(t *testing.T) {
	repos, r := setupRouter()

	repos.benchmarks.On("GetByID", mock.Anything, int64(1)).Return(&domain.Benchmark{
		Identity:            domain.Identity{ID: 1, Owner: 7},
		DataPreparationCube: "11",
	}, nil)
	repos.datasets.On("GetByID", mock.Anything, int64(2)).Return(&domain.Dataset{
		Identity:            domain.Identity{ID: 2, Owner: 10},
		DataPreparationCube: "99",
	}, nil)

	w := doJSON(r, "POST", "/api/v1/datasets/benchmarks", "10", gin.H{"benchmark": 1, "dataset": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repos.associations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCubeAssociationRequiresOperationState(t *testing.T) {
	repos, r := setupRouter()

	repos.benchmarks.On("GetByID", mock.Anything, int64(1)).Return(&domain.Benchmark{
		Identity: domain.Identity{ID: 1, Owner: 7},
	}, nil)
	repos.cubes.On("GetByID", mock.Anything, int64(20)).Return(&domain.Cube{
		Identity: domain.Identity{ID: 20, Owner: 10},
		State:    domain.StateDevelopment,
	}, nil)

	w := doJSON(r, "POST", "/api/v1/mlcubes/benchmarks", "10", gin.H{"benchmark": 1, "model_mlcube": 20})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repos.associations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDecideDatasetAssociation(t *testing.T) {
	repos, r := setupRouter()

	repos.associations.On("Get", mock.Anything, int64(1), int64(2), domain.KindDataset).Return(&domain.Association{
		Benchmark:      1,
		Dataset:        2,
		ApprovalStatus: domain.StatusPending,
		BenchmarkOwner: 7,
	}, nil)
	repos.associations.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Association")).Return(nil)

	w := doJSON(r, "PUT", "/api/v1/datasets/2/benchmarks/1", "7", gin.H{"approval_status": "APPROVED"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp domain.Association
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, domain.StatusApproved, resp.ApprovalStatus)
}

func TestDecideRejectsNonOwner(t *testing.T) {
	repos, r := setupRouter()

	repos.associations.On("Get", mock.Anything, int64(1), int64(2), domain.KindDataset).Return(&domain.Association{
		Benchmark:      1,
		Dataset:        2,
		ApprovalStatus: domain.StatusPending,
		BenchmarkOwner: 7,
	}, nil)

	w := doJSON(r, "PUT", "/api/v1/datasets/2/benchmarks/1", "10", gin.H{"approval_status": "APPROVED"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	repos.associations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestDecideAlreadyDecided(t *testing.T) {
	repos, r := setupRouter()

	repos.associations.On("Get", mock.Anything, int64(1), int64(2), domain.KindDataset).Return(&domain.Association{
		Benchmark:      1,
		Dataset:        2,
		ApprovalStatus: domain.StatusRejected,
		BenchmarkOwner: 7,
	}, nil)

	w := doJSON(r, "PUT", "/api/v1/datasets/2/benchmarks/1", "7", gin.H{"approval_status": "APPROVED"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repos.associations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestMissingUserHeader(t *testing.T) {
	_, r := setupRouter()

	w := doJSON(r, "GET", "/api/v1/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetBenchmarkNotFound(t *testing.T) {
	repos, r := setupRouter()
	repos.benchmarks.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)

	w := doJSON(r, "GET", "/api/v1/benchmarks/9", "10", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMineListingsFilterByOwner(t *testing.T) {
	repos, r := setupRouter()
	repos.datasets.On("List", mock.Anything, int64(10)).Return([]*domain.Dataset{}, nil)

	w := doJSON(r, "GET", "/api/v1/me/datasets", "10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repos.datasets.AssertCalled(t, "List", mock.Anything, int64(10))
}
