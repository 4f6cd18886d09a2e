package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	ports "benchreg/internal/core/ports/output"
)

type Handler struct {
	benchmarkRepo   ports.BenchmarkRepository
	cubeRepo        ports.CubeRepository
	datasetRepo     ports.DatasetRepository
	resultRepo      ports.ResultRepository
	associationRepo ports.AssociationRepository
}

func New(
	benchmarkRepo ports.BenchmarkRepository,
	cubeRepo ports.CubeRepository,
	datasetRepo ports.DatasetRepository,
	resultRepo ports.ResultRepository,
	associationRepo ports.AssociationRepository,
) *Handler {
	return &Handler{
		benchmarkRepo:   benchmarkRepo,
		cubeRepo:        cubeRepo,
		datasetRepo:     datasetRepo,
		resultRepo:      resultRepo,
		associationRepo: associationRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Benchmarks
	r.GET("/benchmarks", h.ListBenchmarks)
	r.GET("/benchmarks/:id", h.GetBenchmark)
	r.GET("/benchmarks/:id/models", h.ListBenchmarkModels)
	r.POST("/benchmarks", h.CreateBenchmark)

	// MLCubes
	r.GET("/mlcubes", h.ListCubes)
	r.GET("/mlcubes/:id", h.GetCube)
	r.POST("/mlcubes", h.CreateCube)

	// Datasets
	r.GET("/datasets", h.ListDatasets)
	r.GET("/datasets/:id", h.GetDataset)
	r.POST("/datasets", h.CreateDataset)

	// Results
	r.GET("/results", h.ListResults)
	r.GET("/results/:id", h.GetResult)
	r.POST("/results", h.CreateResult)

	// Associations
	r.POST("/datasets/benchmarks", h.CreateDatasetAssociation)
	r.POST("/mlcubes/benchmarks", h.CreateCubeAssociation)
	r.PUT("/datasets/:id/benchmarks/:benchmark", h.DecideDatasetAssociation)
	r.PUT("/mlcubes/:id/benchmarks/:benchmark", h.DecideCubeAssociation)

	// Current user
	r.GET("/me", h.Me)
	r.GET("/me/benchmarks", h.ListBenchmarks)
	r.GET("/me/mlcubes", h.ListCubes)
	r.GET("/me/datasets", h.ListDatasets)
	r.GET("/me/results", h.ListResults)
	r.GET("/me/datasets/associations", h.ListDatasetAssociations)
	r.GET("/me/mlcubes/associations", h.ListCubeAssociations)
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user})
}

// currentUser reads the authenticated principal. Session management lives
// in front of this service; the identity arrives as a trusted header.
func currentUser(c *gin.Context) (int64, bool) {
	user, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || user <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
		return 0, false
	}
	return user, true
}

func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}

// mineOnly reports whether the request came through a /me route.
func mineOnly(c *gin.Context) bool {
	return strings.Contains(c.FullPath(), "/me/")
}
