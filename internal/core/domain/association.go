package domain

import "time"

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Association links a benchmark with exactly one of a dataset or a model
// cube. It is created by the party requesting use and decided by the
// benchmark owner; once decided it is immutable.
type Association struct {
	Identity `yaml:",inline"`

	Benchmark int64 `json:"benchmark" yaml:"benchmark"`
	Dataset   int64 `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	ModelCube int64 `json:"model_mlcube,omitempty" yaml:"model_mlcube,omitempty"`

	ApprovalStatus ApprovalStatus `json:"approval_status" yaml:"approval_status"`
	RequestedAt    time.Time      `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	DecidedAt      *time.Time     `json:"approved_at,omitempty" yaml:"approved_at,omitempty"`

	// Initiator is the principal that requested the association; the
	// benchmark owner is the only principal allowed to decide it.
	Initiator      int64 `json:"initiated_by,omitempty" yaml:"initiated_by,omitempty"`
	BenchmarkOwner int64 `json:"benchmark_owner,omitempty" yaml:"benchmark_owner,omitempty"`
}

func (a *Association) EntityKind() Kind { return KindAssociation }

// Validate enforces the mutual exclusion between dataset and model cube.
func (a *Association) Validate() error {
	if (a.Dataset == 0) == (a.ModelCube == 0) {
		return ErrInvalidArgument
	}
	return nil
}

// Decide moves a PENDING association to a terminal status. Transitions out
// of APPROVED or REJECTED are rejected, which keeps the approval history
// append-only.
func (a *Association) Decide(status ApprovalStatus, decidedBy int64, now time.Time) error {
	if status != StatusApproved && status != StatusRejected {
		return ErrInvalidArgument
	}
	if decidedBy != a.BenchmarkOwner {
		return ErrUnauthorized
	}
	if a.ApprovalStatus != StatusPending {
		return ErrInvalidTransition
	}
	a.ApprovalStatus = status
	a.DecidedAt = &now
	a.ModifiedAt = now
	return nil
}
