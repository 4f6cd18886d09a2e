package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benchreg/internal/core/domain"
)

func (h *Handler) ListCubes(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var owner int64
	if mineOnly(c) {
		owner = user
	}

	cubes, err := h.cubeRepo.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cubes)
}

func (h *Handler) GetCube(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cube, err := h.cubeRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cube)
}

func (h *Handler) CreateCube(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var cube domain.Cube
	if err := c.ShouldBindJSON(&cube); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if cube.Name == "" || cube.ManifestURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and git_mlcube_url are required"})
		return
	}

	cube.ID = 0
	cube.Owner = user
	if cube.State == "" {
		cube.State = domain.StateDevelopment
	}

	if err := h.cubeRepo.Create(c.Request.Context(), &cube); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cube)
}
