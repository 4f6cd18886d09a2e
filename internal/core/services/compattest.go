package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// demoManifest is the file every demo archive carries at its root, pointing
// at the inputs of the data preparation step.
const demoManifest = "paths.yaml"

// TestOptions selects what a compatibility test runs against. Either
// Benchmark is set, or the full cube triple is; cube slots accept a registry
// UID or a local filesystem path.
type TestOptions struct {
	Benchmark string
	Dataset   string
	DataPrep  string
	Model     string
	Evaluator string
	// DemoURL / DemoHash override the benchmark's demo archive; used while
	// authoring a benchmark that is not registered yet.
	DemoURL  string
	DemoHash string
}

// CompatTestService dry-runs the full evaluation workflow against a
// disposable benchmark/dataset/cube tuple. Nothing it builds is eligible
// for registration: temporary entities live in the tmp_ namespace and the
// produced result is tagged as a test result.
type CompatTestService struct {
	benchmarks *Reconciler[*domain.Benchmark]
	datasets   *Reconciler[*domain.Dataset]
	registry   ports.RegistryClient
	store      ports.LocalStore
	prep       *DataPreparationService
	exec       *ExecutionService
}

func NewCompatTestService(
	benchmarks *Reconciler[*domain.Benchmark],
	datasets *Reconciler[*domain.Dataset],
	registry ports.RegistryClient,
	store ports.LocalStore,
	prep *DataPreparationService,
	exec *ExecutionService,
) *CompatTestService {
	return &CompatTestService{
		benchmarks: benchmarks,
		datasets:   datasets,
		registry:   registry,
		store:      store,
		prep:       prep,
		exec:       exec,
	}
}

// Run resolves the test tuple, fails fast on any resolution error, and only
// then invokes the pipeline. Pipeline failures are surfaced verbatim.
func (s *CompatTestService) Run(ctx context.Context, opts TestOptions) (*domain.Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	bmk, err := s.resolveBenchmark(ctx, opts)
	if err != nil {
		return nil, err
	}

	dset, err := s.resolveDataset(ctx, bmk, opts)
	if err != nil {
		return nil, err
	}

	result, err := s.exec.Run(ctx, bmk, dset, bmk.ReferenceModelCube, true)
	if err != nil {
		return nil, err
	}

	// Cached for inspection only; the tmp_ namespace keeps it out of
	// listings and uploads.
	if record, err := yaml.Marshal(result); err == nil {
		if err := s.store.WriteRecord(domain.KindResult, result.UID(), record); err != nil {
			log.WithError(err).Warn("could not cache test result")
		}
	}
	return result, nil
}

func validateOptions(opts TestOptions) error {
	if opts.Benchmark != "" {
		return nil
	}
	if opts.DataPrep == "" || opts.Model == "" || opts.Evaluator == "" {
		return fmt.Errorf("pass a benchmark or a complete cube triple: %w", domain.ErrInvalidArgument)
	}
	return nil
}

// resolveBenchmark adopts the named benchmark's cube triple as defaults and
// applies any explicit overrides, or synthesizes a temporary benchmark when
// no identifier was given. The temporary record is never persisted.
func (s *CompatTestService) resolveBenchmark(ctx context.Context, opts TestOptions) (*domain.Benchmark, error) {
	if opts.Benchmark == "" {
		prep, err := s.resolveCubeRef(opts.DataPrep, "")
		if err != nil {
			return nil, err
		}
		model, err := s.resolveCubeRef(opts.Model, "")
		if err != nil {
			return nil, err
		}
		evaluator, err := s.resolveCubeRef(opts.Evaluator, "")
		if err != nil {
			return nil, err
		}
		return domain.TemporaryBenchmark(prep, model, evaluator, opts.DemoURL, opts.DemoHash), nil
	}

	bmk, err := s.benchmarks.Get(ctx, opts.Benchmark, ScopeAll)
	if err != nil {
		return nil, err
	}
	if bmk.DataPreparationCube, err = s.resolveCubeRef(opts.DataPrep, bmk.DataPreparationCube); err != nil {
		return nil, err
	}
	if bmk.ReferenceModelCube, err = s.resolveCubeRef(opts.Model, bmk.ReferenceModelCube); err != nil {
		return nil, err
	}
	if bmk.EvaluatorCube, err = s.resolveCubeRef(opts.Evaluator, bmk.EvaluatorCube); err != nil {
		return nil, err
	}
	if opts.DemoURL != "" {
		bmk.DemoDatasetURL = opts.DemoURL
		bmk.DemoDatasetHash = opts.DemoHash
	}
	return bmk, nil
}

// resolveCubeRef turns a cube slot value into a UID. Filesystem paths are
// linked into the cube storage namespace under a time-derived tmp_ UID so
// the rest of the pipeline can treat every cube uniformly.
func (s *CompatTestService) resolveCubeRef(value, fallback string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	info, err := os.Stat(value)
	if err != nil || !info.IsDir() {
		// Not a local path: assume registry UID.
		return value, nil
	}

	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve cube path %s: %w", value, err)
	}
	uid := fmt.Sprintf("%s%d", domain.TmpPrefix, time.Now().UnixNano())
	if err := s.store.Link(domain.KindCube, uid, abs); err != nil {
		return "", fmt.Errorf("link cube %s: %w", value, err)
	}
	log.WithFields(log.Fields{"path": abs, "uid": uid}).Info("linked local cube for testing")
	return uid, nil
}

func (s *CompatTestService) resolveDataset(ctx context.Context, bmk *domain.Benchmark, opts TestOptions) (*domain.Dataset, error) {
	if opts.Dataset != "" {
		return s.datasets.Get(ctx, opts.Dataset, ScopeAll)
	}

	dataPath, labelsPath, err := s.downloadDemoData(ctx, bmk)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s demo", bmk.Name)
	return s.prep.Run(ctx, bmk, dataPath, labelsPath, name, true)
}

// downloadDemoData fetches the benchmark's demo archive, verifies its
// content hash before anything runs against it, and extracts the data and
// labels paths its manifest declares. An empty expected hash skips the
// check, which is permitted only while authoring a benchmark.
func (s *CompatTestService) downloadDemoData(ctx context.Context, bmk *domain.Benchmark) (string, string, error) {
	if bmk.DemoDatasetURL == "" {
		return "", "", fmt.Errorf("benchmark %s declares no demo dataset: %w", bmk.UID(), domain.ErrInvalidArgument)
	}

	archive, err := s.registry.DownloadDemoDataset(ctx, bmk.DemoDatasetURL)
	if err != nil {
		return "", "", err
	}

	hash, err := sha256File(archive)
	if err != nil {
		return "", "", err
	}
	if bmk.DemoDatasetHash != "" && hash != bmk.DemoDatasetHash {
		return "", "", fmt.Errorf("demo archive hashed to %s, expected %s: %w", hash, bmk.DemoDatasetHash, domain.ErrIntegrity)
	}

	dir, err := extractArchive(archive)
	if err != nil {
		return "", "", fmt.Errorf("extract demo archive: %w", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, demoManifest))
	if err != nil {
		return "", "", fmt.Errorf("demo archive has no %s: %w", demoManifest, domain.ErrInvalidArgument)
	}
	var paths struct {
		DataPath   string `yaml:"data_path"`
		LabelsPath string `yaml:"labels_path"`
	}
	if err := yaml.Unmarshal(raw, &paths); err != nil {
		return "", "", fmt.Errorf("decode demo manifest: %w", err)
	}

	dataPath := filepath.Join(dir, paths.DataPath)
	labelsPath := dataPath
	if paths.LabelsPath != "" {
		labelsPath = filepath.Join(dir, paths.LabelsPath)
	}
	return dataPath, labelsPath, nil
}
