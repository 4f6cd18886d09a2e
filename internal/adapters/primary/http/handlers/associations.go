package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"benchreg/internal/core/domain"
)

type associationRequest struct {
	Benchmark int64 `json:"benchmark"`
	Dataset   int64 `json:"dataset"`
	ModelCube int64 `json:"model_mlcube"`
}

type approvalRequest struct {
	ApprovalStatus domain.ApprovalStatus `json:"approval_status"`
}

// CreateDatasetAssociation requests that a dataset join a benchmark. The
// dataset must have been produced by the benchmark's declared preparation
// cube; anything else is rejected before a pending request is recorded.
func (h *Handler) CreateDatasetAssociation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req associationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Benchmark == 0 || req.Dataset == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "benchmark and dataset are required"})
		return
	}

	ctx := c.Request.Context()
	benchmark, err := h.benchmarkRepo.GetByID(ctx, req.Benchmark)
	if err != nil {
		respondError(c, err)
		return
	}
	dataset, err := h.datasetRepo.GetByID(ctx, req.Dataset)
	if err != nil {
		respondError(c, err)
		return
	}
	if dataset.DataPreparationCube != benchmark.DataPreparationCube {
		respondError(c, domain.ErrIncompatibleAssociation)
		return
	}

	association := &domain.Association{
		Benchmark:      benchmark.ID,
		Dataset:        dataset.ID,
		ApprovalStatus: domain.StatusPending,
		Initiator:      user,
		BenchmarkOwner: benchmark.Owner,
	}
	if err := association.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if err := h.associationRepo.Create(ctx, association); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, association)
}

// CreateCubeAssociation requests that a model cube join a benchmark. Only
// cubes marked OPERATION are eligible.
func (h *Handler) CreateCubeAssociation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req associationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Benchmark == 0 || req.ModelCube == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "benchmark and model_mlcube are required"})
		return
	}

	ctx := c.Request.Context()
	benchmark, err := h.benchmarkRepo.GetByID(ctx, req.Benchmark)
	if err != nil {
		respondError(c, err)
		return
	}
	cube, err := h.cubeRepo.GetByID(ctx, req.ModelCube)
	if err != nil {
		respondError(c, err)
		return
	}
	if cube.State != domain.StateOperation {
		respondError(c, domain.ErrInvalidState)
		return
	}

	association := &domain.Association{
		Benchmark:      benchmark.ID,
		ModelCube:      cube.ID,
		ApprovalStatus: domain.StatusPending,
		Initiator:      user,
		BenchmarkOwner: benchmark.Owner,
	}
	if err := association.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if err := h.associationRepo.Create(ctx, association); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, association)
}

func (h *Handler) DecideDatasetAssociation(c *gin.Context) {
	h.decideAssociation(c, domain.KindDataset)
}

func (h *Handler) DecideCubeAssociation(c *gin.Context) {
	h.decideAssociation(c, domain.KindCube)
}

func (h *Handler) decideAssociation(c *gin.Context, kind domain.Kind) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	counterpartID, ok := pathID(c, "id")
	if !ok {
		return
	}
	benchmarkID, ok := pathID(c, "benchmark")
	if !ok {
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	association, err := h.associationRepo.Get(ctx, benchmarkID, counterpartID, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := association.Decide(req.ApprovalStatus, user, time.Now().UTC()); err != nil {
		respondError(c, err)
		return
	}
	if err := h.associationRepo.UpdateStatus(ctx, association); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, association)
}

func (h *Handler) ListDatasetAssociations(c *gin.Context) {
	h.listAssociations(c, domain.KindDataset)
}

func (h *Handler) ListCubeAssociations(c *gin.Context) {
	h.listAssociations(c, domain.KindCube)
}

func (h *Handler) listAssociations(c *gin.Context, kind domain.Kind) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var benchmarkID int64
	if raw := c.Query("benchmark"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid benchmark filter"})
			return
		}
		benchmarkID = id
	}

	associations, err := h.associationRepo.ListByUser(c.Request.Context(), user, kind, benchmarkID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, associations)
}
