package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pendingAssociation() *Association {
	return &Association{
		Benchmark:      1,
		Dataset:        2,
		ApprovalStatus: StatusPending,
		Initiator:      10,
		BenchmarkOwner: 7,
	}
}

func TestDecideApprovesPending(t *testing.T) {
	a := pendingAssociation()
	now := time.Now()

	err := a.Decide(StatusApproved, 7, now)

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, a.ApprovalStatus)
	assert.Equal(t, now, *a.DecidedAt)
}

func TestDecideRejectsPending(t *testing.T) {
	a := pendingAssociation()

	err := a.Decide(StatusRejected, 7, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, a.ApprovalStatus)
}

func TestDecideOnlyBenchmarkOwner(t *testing.T) {
	a := pendingAssociation()

	err := a.Decide(StatusApproved, 10, time.Now())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, StatusPending, a.ApprovalStatus)
}

func TestDecideTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []ApprovalStatus{StatusApproved, StatusRejected} {
		a := pendingAssociation()
		a.ApprovalStatus = terminal

		for _, next := range []ApprovalStatus{StatusApproved, StatusRejected} {
			err := a.Decide(next, 7, time.Now())
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, terminal, a.ApprovalStatus)
		}
	}
}

func TestDecideRejectsPendingAsTarget(t *testing.T) {
	a := pendingAssociation()

	err := a.Decide(StatusPending, 7, time.Now())

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidateRequiresExactlyOneCounterpart(t *testing.T) {
	both := &Association{Benchmark: 1, Dataset: 2, ModelCube: 3}
	assert.ErrorIs(t, both.Validate(), ErrInvalidArgument)

	neither := &Association{Benchmark: 1}
	assert.ErrorIs(t, neither.Validate(), ErrInvalidArgument)

	dataset := &Association{Benchmark: 1, Dataset: 2}
	assert.NoError(t, dataset.Validate())

	cube := &Association{Benchmark: 1, ModelCube: 3}
	assert.NoError(t, cube.Validate())
}
