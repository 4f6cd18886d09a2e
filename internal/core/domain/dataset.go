package domain

// Dataset describes a prepared dataset on a contributor's machine. Its
// fingerprint is generated by hashing the output of the data preparation
// cube, which makes it stable across registration.
type Dataset struct {
	Identity `yaml:",inline"`

	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`

	// DataPreparationCube is the UID of the cube that produced this dataset.
	// Association with a benchmark requires it to match the benchmark's
	// declared preparation cube.
	DataPreparationCube string `json:"data_preparation_mlcube" yaml:"data_preparation_mlcube"`

	InputDataHash     string         `json:"input_data_hash,omitempty" yaml:"input_data_hash,omitempty"`
	SplitSeed         int64          `json:"split_seed,omitempty" yaml:"split_seed,omitempty"`
	GeneratedMetadata map[string]any `json:"generated_metadata,omitempty" yaml:"generated_metadata,omitempty"`
	SeparateLabels    bool           `json:"-" yaml:"separate_labels,omitempty"`
	UserMetadata      map[string]any `json:"user_metadata,omitempty" yaml:"user_metadata,omitempty"`

	State          LifecycleState `json:"state,omitempty" yaml:"state,omitempty"`
	ApprovalStatus ApprovalStatus `json:"-" yaml:"status,omitempty"`
	IsValid        bool           `json:"is_valid" yaml:"is_valid"`
}

func (d *Dataset) EntityKind() Kind { return KindDataset }
