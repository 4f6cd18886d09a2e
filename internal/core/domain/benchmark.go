package domain

import "fmt"

// Benchmark bundles the assets needed to measure model performance on a
// specific problem: how to prepare data, which reference model to compare
// against, and how to evaluate predictions.
type Benchmark struct {
	Identity `yaml:",inline"`

	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	DocsURL        string `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	DemoDatasetURL string `json:"demo_dataset_tarball_url,omitempty" yaml:"demo_dataset_tarball_url,omitempty"`
	// DemoDatasetHash may be empty while the benchmark is still being
	// authored; integrity checks are skipped in that case.
	DemoDatasetHash string `json:"demo_dataset_tarball_hash,omitempty" yaml:"demo_dataset_tarball_hash,omitempty"`

	// The workflow cube triple, addressed by UID.
	DataPreparationCube string `json:"data_preparation_mlcube" yaml:"data_preparation_mlcube"`
	ReferenceModelCube  string `json:"reference_model_mlcube" yaml:"reference_model_mlcube"`
	EvaluatorCube       string `json:"data_evaluator_mlcube" yaml:"data_evaluator_mlcube"`

	// Models holds the reference model plus every approved model association.
	Models []string `json:"models,omitempty" yaml:"models,omitempty"`

	State          LifecycleState `json:"state,omitempty" yaml:"state,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status,omitempty" yaml:"approval_status,omitempty"`
}

func (b *Benchmark) EntityKind() Kind { return KindBenchmark }

// TemporaryBenchmark builds a synthetic benchmark for a compatibility test.
// Its UID concatenates the workflow cube UIDs under the reserved prefix, so
// it is stable within a single run and can never collide with a registry ID.
func TemporaryBenchmark(prep, model, evaluator, demoURL, demoHash string) *Benchmark {
	uid := fmt.Sprintf("%s%s_%s_%s", TmpPrefix, prep, model, evaluator)
	return &Benchmark{
		Identity:            Identity{TempUID: uid},
		Name:                uid,
		DemoDatasetURL:      demoURL,
		DemoDatasetHash:     demoHash,
		DataPreparationCube: prep,
		ReferenceModelCube:  model,
		EvaluatorCube:       evaluator,
		Models:              []string{model},
		State:               StateDevelopment,
	}
}
