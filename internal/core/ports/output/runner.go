package ports

import (
	"context"

	"benchreg/internal/core/domain"
)

// RunSpec describes one cube task execution. Mounts map parameter names to
// host paths; the runner is responsible for making them visible to the
// container under the same names.
type RunSpec struct {
	RunID      string
	Cube       *domain.Cube
	Task       string
	Mounts     map[string]string
	Parameters map[string]string
}

// CubeRunner executes a cube task to completion. The call blocks for the
// duration of the run; cancellation and timeouts are the caller's concern.
// Failures are surfaced verbatim, never retried.
type CubeRunner interface {
	Run(ctx context.Context, spec RunSpec) error
}
