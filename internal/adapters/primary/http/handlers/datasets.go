package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benchreg/internal/core/domain"
)

func (h *Handler) ListDatasets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var owner int64
	if mineOnly(c) {
		owner = user
	}

	datasets, err := h.datasetRepo.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, datasets)
}

func (h *Handler) GetDataset(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	dataset, err := h.datasetRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataset)
}

func (h *Handler) CreateDataset(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var dataset domain.Dataset
	if err := c.ShouldBindJSON(&dataset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if dataset.Name == "" || dataset.DataPreparationCube == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and data_preparation_mlcube are required"})
		return
	}
	if domain.IsTmpUID(dataset.Fingerprint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "synthetic datasets cannot be registered"})
		return
	}

	dataset.ID = 0
	dataset.Owner = user
	if dataset.State == "" {
		dataset.State = domain.StateDevelopment
	}
	dataset.IsValid = true

	if err := h.datasetRepo.Create(c.Request.Context(), &dataset); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataset)
}
