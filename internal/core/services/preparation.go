package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// readyMarker flags a dataset directory whose preparation completed; a
// directory without it is a half-finished run.
const readyMarker = ".ready"

// DataPreparationService turns raw data into a benchmark-ready dataset by
// running the preparation cube's prepare, sanity_check and statistics tasks.
// The dataset fingerprint is the content hash of the prepared output tree.
type DataPreparationService struct {
	exec   *ExecutionService
	store  ports.LocalStore
	runner ports.CubeRunner
}

func NewDataPreparationService(exec *ExecutionService, store ports.LocalStore, runner ports.CubeRunner) *DataPreparationService {
	return &DataPreparationService{exec: exec, store: store, runner: runner}
}

func (s *DataPreparationService) Run(ctx context.Context, bmk *domain.Benchmark, dataPath, labelsPath, name string, test bool) (*domain.Dataset, error) {
	prep, err := s.exec.ResolveCube(ctx, bmk.DataPreparationCube)
	if err != nil {
		return nil, err
	}

	// Stage under a throwaway UID until the fingerprint is known.
	staging := fmt.Sprintf("%sprep_%d", domain.TmpPrefix, time.Now().UnixNano())
	stagingDir := s.store.EntityDir(domain.KindDataset, staging)
	outDir := filepath.Join(stagingDir, "data")
	labelsOut := filepath.Join(stagingDir, "labels")
	statsFile := filepath.Join(stagingDir, "statistics.yaml")

	runID := uuid.NewString()
	logger := log.WithFields(log.Fields{"run_id": runID, "cube": prep.UID()})

	logger.Info("preparing dataset")
	err = s.runner.Run(ctx, ports.RunSpec{
		RunID: runID,
		Cube:  prep,
		Task:  "prepare",
		Mounts: map[string]string{
			"data_path":   dataPath,
			"labels_path": labelsPath,
			"output_path": outDir,
			"output_labels_path": labelsOut,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}

	logger.Info("running sanity check")
	err = s.runner.Run(ctx, ports.RunSpec{
		RunID:  runID,
		Cube:   prep,
		Task:   "sanity_check",
		Mounts: map[string]string{"data_path": outDir},
	})
	if err != nil {
		return nil, fmt.Errorf("sanity check: %w", err)
	}

	logger.Info("generating statistics")
	err = s.runner.Run(ctx, ports.RunSpec{
		RunID: runID,
		Cube:  prep,
		Task:  "statistics",
		Mounts: map[string]string{
			"data_path":   outDir,
			"output_path": stagingDir,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	fingerprint, err := hashTree(outDir)
	if err != nil {
		return nil, fmt.Errorf("fingerprint prepared data: %w", err)
	}
	inputHash, err := hashTree(dataPath)
	if err != nil {
		return nil, fmt.Errorf("fingerprint input data: %w", err)
	}

	dset := &domain.Dataset{
		Identity:            domain.Identity{Fingerprint: fingerprint, CreatedAt: time.Now()},
		Name:                name,
		Location:            dataPath,
		DataPreparationCube: bmk.DataPreparationCube,
		InputDataHash:       inputHash,
		SeparateLabels:      labelsPath != dataPath,
		State:               domain.StateDevelopment,
		ApprovalStatus:      domain.StatusPending,
		IsValid:             true,
	}
	if test {
		// Test datasets stay in the synthetic namespace, invisible to
		// listings and ineligible for upload.
		dset.Fingerprint = ""
		dset.TempUID = domain.TmpPrefix + fingerprint
	}

	if stats := readStatistics(statsFile); stats != nil {
		dset.GeneratedMetadata = stats
	}

	if err := s.store.Rekey(domain.KindDataset, staging, dset.UID()); err != nil {
		return nil, fmt.Errorf("move prepared dataset: %w", err)
	}
	record, err := yaml.Marshal(dset)
	if err != nil {
		return nil, fmt.Errorf("encode dataset record: %w", err)
	}
	if err := s.store.WriteRecord(domain.KindDataset, dset.UID(), record); err != nil {
		return nil, fmt.Errorf("write dataset record: %w", err)
	}
	marker := filepath.Join(s.store.EntityDir(domain.KindDataset, dset.UID()), readyMarker)
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return nil, fmt.Errorf("write ready marker: %w", err)
	}

	logger.WithField("dataset", dset.UID()).Info("dataset prepared")
	return dset, nil
}

func readStatistics(path string) map[string]any {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var stats map[string]any
	if err := yaml.Unmarshal(raw, &stats); err != nil {
		log.WithError(err).WithField("path", path).Warn("could not decode statistics output")
		return nil
	}
	return stats
}
