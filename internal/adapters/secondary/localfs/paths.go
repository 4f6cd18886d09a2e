package localfs

import (
	"path/filepath"

	"benchreg/internal/core/domain"
)

// Paths maps an entity type and UID to its deterministic on-disk location.
// Layout: one directory per entity under a per-kind subtree of the root.
type Paths struct {
	Root string
}

var kindDirs = map[domain.Kind]string{
	domain.KindBenchmark:   "benchmarks",
	domain.KindCube:        "cubes",
	domain.KindDataset:     "data",
	domain.KindResult:      "results",
	domain.KindAssociation: "associations",
}

var recordFiles = map[domain.Kind]string{
	domain.KindBenchmark:   "benchmark.yaml",
	// The cube directory also holds the runnable mlcube.yaml manifest;
	// the cached registry record lives beside it.
	domain.KindCube:        "mlcube-metadata.yaml",
	domain.KindDataset:     "registration-info.yaml",
	domain.KindResult:      "result.yaml",
	domain.KindAssociation: "association.yaml",
}

func (p Paths) KindDir(kind domain.Kind) string {
	return filepath.Join(p.Root, kindDirs[kind])
}

func (p Paths) EntityDir(kind domain.Kind, uid string) string {
	return filepath.Join(p.KindDir(kind), uid)
}

func (p Paths) RecordFile(kind domain.Kind, uid string) string {
	return filepath.Join(p.EntityDir(kind, uid), recordFiles[kind])
}
