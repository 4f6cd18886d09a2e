package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// ExecutionService runs a benchmark's evaluation workflow: the model cube's
// inference task over a prepared dataset, then the evaluator cube over the
// predictions. The runner call is an opaque blocking operation; its failures
// are surfaced verbatim.
type ExecutionService struct {
	cubes  *Reconciler[*domain.Cube]
	store  ports.LocalStore
	runner ports.CubeRunner
}

func NewExecutionService(cubes *Reconciler[*domain.Cube], store ports.LocalStore, runner ports.CubeRunner) *ExecutionService {
	return &ExecutionService{cubes: cubes, store: store, runner: runner}
}

func (s *ExecutionService) Run(ctx context.Context, bmk *domain.Benchmark, dset *domain.Dataset, modelUID string, test bool) (*domain.Result, error) {
	model, err := s.ResolveCube(ctx, modelUID)
	if err != nil {
		return nil, err
	}
	evaluator, err := s.ResolveCube(ctx, bmk.EvaluatorCube)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	name := fmt.Sprintf("%s_%s_%s", bmk.UID(), modelUID, dset.UID())
	workDir := s.store.EntityDir(domain.KindResult, name)
	predictionsDir := filepath.Join(workDir, "predictions")
	resultsDir := filepath.Join(workDir, "results")

	dataDir := filepath.Join(s.store.EntityDir(domain.KindDataset, dset.UID()), "data")
	labelsDir := dataDir
	if dset.SeparateLabels {
		labelsDir = filepath.Join(s.store.EntityDir(domain.KindDataset, dset.UID()), "labels")
	}

	logger := log.WithFields(log.Fields{"run_id": runID, "benchmark": bmk.UID(), "dataset": dset.UID(), "model": modelUID})
	logger.Info("running model inference")
	err = s.runner.Run(ctx, ports.RunSpec{
		RunID: runID,
		Cube:  model,
		Task:  "infer",
		Mounts: map[string]string{
			"data_path":   dataDir,
			"output_path": predictionsDir,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}

	logger.Info("running evaluation")
	err = s.runner.Run(ctx, ports.RunSpec{
		RunID: runID,
		Cube:  evaluator,
		Task:  "evaluate",
		Mounts: map[string]string{
			"predictions": predictionsDir,
			"labels":      labelsDir,
			"output_path": resultsDir,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}

	metrics, err := readMetrics(filepath.Join(resultsDir, "results.yaml"))
	if err != nil {
		return nil, err
	}
	return domain.NewResult(bmk.UID(), modelUID, dset.UID(), metrics, test), nil
}

// ResolveCube fetches a cube through the reconciler, or materializes a
// synthetic cube from a symlinked local directory when the UID lives in the
// tmp_ namespace.
func (s *ExecutionService) ResolveCube(ctx context.Context, uid string) (*domain.Cube, error) {
	if domain.IsTmpUID(uid) {
		return s.loadLinkedCube(uid)
	}
	return s.cubes.Get(ctx, uid, ScopeAll)
}

// loadLinkedCube reads the manifest of a cube that was linked into the
// storage namespace from a local path, picking up the container image it
// declares.
func (s *ExecutionService) loadLinkedCube(uid string) (*domain.Cube, error) {
	manifestPath := filepath.Join(s.store.EntityDir(domain.KindCube, uid), "mlcube.yaml")
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("cube %s has no manifest: %w", uid, domain.ErrNotFound)
	}
	var manifest struct {
		Name   string `yaml:"name"`
		Docker struct {
			Image string `yaml:"image"`
		} `yaml:"docker"`
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("decode cube manifest %s: %w", uid, domain.ErrLocalRecordCorrupt)
	}
	return &domain.Cube{
		Identity: domain.Identity{TempUID: uid},
		Name:     manifest.Name,
		Image:    manifest.Docker.Image,
		State:    domain.StateDevelopment,
	}, nil
}

func readMetrics(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var metrics map[string]any
	if err := yaml.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return metrics, nil
}
