package domain

import "fmt"

// Result holds the metrics produced by running a model over a dataset under
// a benchmark's evaluation workflow.
type Result struct {
	Identity `yaml:",inline"`

	Name      string `json:"name" yaml:"name"`
	Benchmark string `json:"benchmark" yaml:"benchmark"`
	Dataset   string `json:"dataset" yaml:"dataset"`
	Model     string `json:"model" yaml:"model"`

	Metrics        map[string]any `json:"results" yaml:"results"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status,omitempty" yaml:"approval_status,omitempty"`

	// Test marks results produced by a compatibility test. They are never
	// eligible for upload.
	Test bool `json:"-" yaml:"test,omitempty"`
}

func (r *Result) EntityKind() Kind { return KindResult }

// Synthetic treats test results as synthetic regardless of their UID, so the
// reconciler's upload guard rejects them.
func (r *Result) Synthetic() bool {
	return r.Test || r.Identity.Synthetic()
}

// NewResult names the record after the executed triple, matching the
// registry's naming convention.
func NewResult(benchmark, model, dataset string, metrics map[string]any, test bool) *Result {
	r := &Result{
		Name:           fmt.Sprintf("%s_%s_%s", benchmark, model, dataset),
		Benchmark:      benchmark,
		Dataset:        dataset,
		Model:          model,
		Metrics:        metrics,
		ApprovalStatus: StatusPending,
		Test:           test,
	}
	if test {
		r.TempUID = TmpPrefix + r.Name
	} else {
		r.Fingerprint = r.Name
	}
	return r
}
