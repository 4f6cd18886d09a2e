package domain

// Cube is a containerized, versioned processing unit: data preparation,
// model inference or evaluation. Before registration a cube is addressed by
// its source location; afterwards by its registry ID.
type Cube struct {
	Identity `yaml:",inline"`

	Name string `json:"name" yaml:"name"`

	ManifestURL  string `json:"git_mlcube_url" yaml:"git_mlcube_url"`
	ManifestHash string `json:"mlcube_hash,omitempty" yaml:"mlcube_hash,omitempty"`

	ParametersURL  string `json:"git_parameters_url,omitempty" yaml:"git_parameters_url,omitempty"`
	ParametersHash string `json:"parameters_hash,omitempty" yaml:"parameters_hash,omitempty"`

	ImageTarballURL  string `json:"image_tarball_url,omitempty" yaml:"image_tarball_url,omitempty"`
	ImageTarballHash string `json:"image_tarball_hash,omitempty" yaml:"image_tarball_hash,omitempty"`

	AdditionalFilesURL  string `json:"additional_files_tarball_url,omitempty" yaml:"additional_files_tarball_url,omitempty"`
	AdditionalFilesHash string `json:"additional_files_tarball_hash,omitempty" yaml:"additional_files_tarball_hash,omitempty"`

	// Image is the resolved container image reference used when the cube
	// runs. Derived from the manifest, cached locally after first download.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	State LifecycleState `json:"state,omitempty" yaml:"state,omitempty"`
}

func (c *Cube) EntityKind() Kind { return KindCube }
