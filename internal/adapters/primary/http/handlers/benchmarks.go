package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benchreg/internal/core/domain"
)

func (h *Handler) ListBenchmarks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var owner int64
	if mineOnly(c) {
		owner = user
	}

	benchmarks, err := h.benchmarkRepo.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, benchmarks)
}

func (h *Handler) GetBenchmark(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	benchmark, err := h.benchmarkRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, benchmark)
}

// ListBenchmarkModels returns the reference model plus every cube with an
// approved model association, which is the pool a benchmark run may draw from.
func (h *Handler) ListBenchmarkModels(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	models, err := h.benchmarkRepo.ListModels(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (h *Handler) CreateBenchmark(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var benchmark domain.Benchmark
	if err := c.ShouldBindJSON(&benchmark); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if benchmark.Name == "" || benchmark.DataPreparationCube == "" ||
		benchmark.ReferenceModelCube == "" || benchmark.EvaluatorCube == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and the three workflow cubes are required"})
		return
	}

	benchmark.ID = 0
	benchmark.Owner = user
	if benchmark.State == "" {
		benchmark.State = domain.StateDevelopment
	}
	benchmark.ApprovalStatus = domain.StatusPending

	if err := h.benchmarkRepo.Create(c.Request.Context(), &benchmark); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, benchmark)
}
