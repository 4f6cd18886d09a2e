package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benchreg/internal/core/domain"
)

func (h *Handler) ListResults(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var owner int64
	if mineOnly(c) {
		owner = user
	}

	results, err := h.resultRepo.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.resultRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateResult(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var result domain.Result
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if result.Benchmark == "" || result.Dataset == "" || result.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "benchmark, dataset and model are required"})
		return
	}
	// Results produced against a temporary benchmark never enter the registry.
	if domain.IsTmpUID(result.Benchmark) || domain.IsTmpUID(result.Dataset) || domain.IsTmpUID(result.Model) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "test results cannot be registered"})
		return
	}

	result.ID = 0
	result.Owner = user
	result.ApprovalStatus = domain.StatusPending

	if err := h.resultRepo.Create(c.Request.Context(), &result); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
