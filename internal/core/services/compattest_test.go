package services

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"benchreg/internal/adapters/secondary/localfs"
	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
	"benchreg/internal/testutil"
)

type compatFixture struct {
	client *testutil.MockRegistryClient
	runner *testutil.MockCubeRunner
	store  *localfs.Store
	compat *CompatTestService
}

func newCompatFixture(t *testing.T) *compatFixture {
	t.Helper()
	client := new(testutil.MockRegistryClient)
	runner := new(testutil.MockCubeRunner)
	store := localfs.NewStore(t.TempDir())

	cubes := NewCubeReconciler(client, store)
	exec := NewExecutionService(cubes, store, runner)
	prep := NewDataPreparationService(exec, store, runner)
	compat := NewCompatTestService(
		NewBenchmarkReconciler(client, store),
		NewDatasetReconciler(client, store),
		client, store, prep, exec,
	)
	return &compatFixture{client: client, runner: runner, store: store, compat: compat}
}

// writeDemoArchive builds a minimal demo tarball: the paths manifest plus one
// raw data file. Returns the archive path.
func writeDemoArchive(t *testing.T) string {
	t.Helper()
	archive := filepath.Join(t.TempDir(), "demo.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range map[string]string{
		"paths.yaml":      "data_path: data\n",
		"data/sample.txt": "raw sample\n",
	} {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg}))
		_, err = tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return archive
}

// writeCubeDir lays out a runnable cube directory with a manifest declaring
// the given container image.
func writeCubeDir(t *testing.T, image string) string {
	t.Helper()
	dir := t.TempDir()
	manifest := "name: test cube\ndocker:\n  image: " + image + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mlcube.yaml"), []byte(manifest), 0o644))
	return dir
}

func TestCompatTestRequiresBenchmarkOrFullTriple(t *testing.T) {
	f := newCompatFixture(t)

	_, err := f.compat.Run(context.Background(), TestOptions{Model: "2"})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestCompatTestVerifiesDemoIntegrityBeforeRunning(t *testing.T) {
	f := newCompatFixture(t)
	archive := writeDemoArchive(t)
	f.client.On("DownloadDemoDataset", mock.Anything, "http://example.com/demo.tar.gz").Return(archive, nil)

	_, err := f.compat.Run(context.Background(), TestOptions{
		DataPrep:  "11",
		Model:     "20",
		Evaluator: "30",
		DemoURL:   "http://example.com/demo.tar.gz",
		DemoHash:  "0000000000000000000000000000000000000000000000000000000000000000",
	})

	assert.ErrorIs(t, err, domain.ErrIntegrity)
	f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestCompatTestEndToEnd(t *testing.T) {
	f := newCompatFixture(t)

	archive := writeDemoArchive(t)
	demoHash, err := sha256File(archive)
	require.NoError(t, err)
	f.client.On("DownloadDemoDataset", mock.Anything, "http://example.com/demo.tar.gz").Return(archive, nil)

	prepDir := writeCubeDir(t, "example/prep:1")
	modelDir := writeCubeDir(t, "example/model:1")
	evalDir := writeCubeDir(t, "example/eval:1")

	var specs []ports.RunSpec
	f.runner.On("Run", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		spec := args.Get(1).(ports.RunSpec)
		specs = append(specs, spec)
		switch spec.Task {
		case "prepare":
			out := spec.Mounts["output_path"]
			require.NoError(t, os.MkdirAll(out, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(out, "prepared.txt"), []byte("prepared\n"), 0o644))
		case "statistics":
			out := spec.Mounts["output_path"]
			require.NoError(t, os.MkdirAll(out, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(out, "statistics.yaml"), []byte("samples: 1\n"), 0o644))
		case "infer":
			out := spec.Mounts["output_path"]
			require.NoError(t, os.MkdirAll(out, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(out, "predictions.txt"), []byte("0.5\n"), 0o644))
		case "evaluate":
			out := spec.Mounts["output_path"]
			require.NoError(t, os.MkdirAll(out, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(out, "results.yaml"), []byte("accuracy: 0.5\n"), 0o644))
		}
	})

	result, err := f.compat.Run(context.Background(), TestOptions{
		DataPrep:  prepDir,
		Model:     modelDir,
		Evaluator: evalDir,
		DemoURL:   "http://example.com/demo.tar.gz",
		DemoHash:  demoHash,
	})

	require.NoError(t, err)
	assert.True(t, result.Synthetic())
	assert.True(t, result.Test)
	assert.Equal(t, map[string]any{"accuracy": 0.5}, result.Metrics)

	// Local cube paths were linked into the synthetic namespace and their
	// manifests resolved to container images.
	require.NotEmpty(t, specs)
	assert.Equal(t, "prepare", specs[0].Task)
	assert.Equal(t, "example/prep:1", specs[0].Cube.Image)
	assert.True(t, domain.IsTmpUID(specs[0].Cube.UID()))

	// The temporary benchmark is never persisted; the test dataset and the
	// cached test result live in the synthetic namespace.
	benchmarks, err := f.store.ListUIDs(domain.KindBenchmark)
	require.NoError(t, err)
	assert.Empty(t, benchmarks)

	datasets, err := f.store.ListUIDs(domain.KindDataset)
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.True(t, domain.IsTmpUID(datasets[0]))

	_, err = f.store.ReadRecord(domain.KindResult, result.UID())
	assert.NoError(t, err)
}

func TestCompatTestSkipsIntegrityCheckWithoutExpectedHash(t *testing.T) {
	f := newCompatFixture(t)
	archive := writeDemoArchive(t)
	f.client.On("DownloadDemoDataset", mock.Anything, "http://example.com/demo.tar.gz").Return(archive, nil)

	prepDir := writeCubeDir(t, "example/prep:1")
	modelDir := writeCubeDir(t, "example/model:1")
	evalDir := writeCubeDir(t, "example/eval:1")

	f.runner.On("Run", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		spec := args.Get(1).(ports.RunSpec)
		out, ok := spec.Mounts["output_path"]
		if !ok {
			return
		}
		require.NoError(t, os.MkdirAll(out, 0o755))
		if spec.Task == "evaluate" {
			require.NoError(t, os.WriteFile(filepath.Join(out, "results.yaml"), []byte("accuracy: 1\n"), 0o644))
		} else {
			require.NoError(t, os.WriteFile(filepath.Join(out, "out.txt"), []byte("x\n"), 0o644))
		}
	})

	result, err := f.compat.Run(context.Background(), TestOptions{
		DataPrep:  prepDir,
		Model:     modelDir,
		Evaluator: evalDir,
		DemoURL:   "http://example.com/demo.tar.gz",
	})

	require.NoError(t, err)
	assert.True(t, result.Synthetic())
}
