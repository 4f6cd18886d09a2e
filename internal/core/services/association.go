package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// AssociationService runs the bilateral approval workflow between a
// benchmark and a dataset or model cube. Requests come from the counterpart
// owner; decisions come from the benchmark owner; neither side can do both.
type AssociationService struct {
	registry     ports.RegistryClient
	benchmarks   *Reconciler[*domain.Benchmark]
	datasets     *Reconciler[*domain.Dataset]
	cubes        *Reconciler[*domain.Cube]
	associations *Reconciler[*domain.Association]
}

func NewAssociationService(
	registry ports.RegistryClient,
	benchmarks *Reconciler[*domain.Benchmark],
	datasets *Reconciler[*domain.Dataset],
	cubes *Reconciler[*domain.Cube],
	associations *Reconciler[*domain.Association],
) *AssociationService {
	return &AssociationService{
		registry:     registry,
		benchmarks:   benchmarks,
		datasets:     datasets,
		cubes:        cubes,
		associations: associations,
	}
}

// RequestDatasetAssociation asks a benchmark to accept a dataset. The
// dataset must be registered and must have been prepared with the
// benchmark's declared preparation cube; otherwise no record is created.
func (s *AssociationService) RequestDatasetAssociation(ctx context.Context, datasetUID, benchmarkUID string) (*domain.Association, error) {
	dset, err := s.datasets.Get(ctx, datasetUID, ScopeAll)
	if err != nil {
		return nil, err
	}
	bmk, err := s.benchmarks.Get(ctx, benchmarkUID, ScopeAll)
	if err != nil {
		return nil, err
	}
	if !dset.Registered() || !bmk.Registered() {
		return nil, fmt.Errorf("both entities must be registered before association: %w", domain.ErrInvalidArgument)
	}
	if dset.DataPreparationCube != bmk.DataPreparationCube {
		return nil, fmt.Errorf(
			"dataset was prepared with cube %s, benchmark requires %s: %w",
			dset.DataPreparationCube, bmk.DataPreparationCube, domain.ErrIncompatibleAssociation,
		)
	}

	assoc := &domain.Association{
		Benchmark:      bmk.ID,
		Dataset:        dset.ID,
		ApprovalStatus: domain.StatusPending,
		RequestedAt:    time.Now(),
		Initiator:      dset.Owner,
		BenchmarkOwner: bmk.Owner,
	}
	created, err := s.registry.AssociateDataset(ctx, assoc)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"benchmark": bmk.ID, "dataset": dset.ID}).
		Info("dataset association requested")
	return created, nil
}

// RequestModelAssociation asks a benchmark to accept a model cube. The cube
// must be registered and in OPERATION state.
func (s *AssociationService) RequestModelAssociation(ctx context.Context, cubeUID, benchmarkUID string) (*domain.Association, error) {
	cube, err := s.cubes.Get(ctx, cubeUID, ScopeAll)
	if err != nil {
		return nil, err
	}
	bmk, err := s.benchmarks.Get(ctx, benchmarkUID, ScopeAll)
	if err != nil {
		return nil, err
	}
	if !cube.Registered() || !bmk.Registered() {
		return nil, fmt.Errorf("both entities must be registered before association: %w", domain.ErrInvalidArgument)
	}
	if cube.State != domain.StateOperation {
		return nil, fmt.Errorf("model cube %s is still in development: %w", cube.UID(), domain.ErrIncompatibleAssociation)
	}

	assoc := &domain.Association{
		Benchmark:      bmk.ID,
		ModelCube:      cube.ID,
		ApprovalStatus: domain.StatusPending,
		RequestedAt:    time.Now(),
		Initiator:      cube.Owner,
		BenchmarkOwner: bmk.Owner,
	}
	created, err := s.registry.AssociateCube(ctx, assoc)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"benchmark": bmk.ID, "mlcube": cube.ID}).
		Info("model association requested")
	return created, nil
}

func (s *AssociationService) ApproveDataset(ctx context.Context, benchmarkID, datasetID int64) (*domain.Association, error) {
	return s.decide(ctx, benchmarkID, datasetID, domain.KindDataset, domain.StatusApproved)
}

func (s *AssociationService) RejectDataset(ctx context.Context, benchmarkID, datasetID int64) (*domain.Association, error) {
	return s.decide(ctx, benchmarkID, datasetID, domain.KindDataset, domain.StatusRejected)
}

func (s *AssociationService) ApproveModel(ctx context.Context, benchmarkID, cubeID int64) (*domain.Association, error) {
	return s.decide(ctx, benchmarkID, cubeID, domain.KindCube, domain.StatusApproved)
}

func (s *AssociationService) RejectModel(ctx context.Context, benchmarkID, cubeID int64) (*domain.Association, error) {
	return s.decide(ctx, benchmarkID, cubeID, domain.KindCube, domain.StatusRejected)
}

// List returns the caller's associations. There is no local association
// store, so ScopeLocalOnly always yields an empty set.
func (s *AssociationService) List(ctx context.Context, scope Scope, filter ports.ListFilter) ([]*domain.Association, error) {
	return s.associations.ListAll(ctx, scope, filter)
}

func (s *AssociationService) decide(ctx context.Context, benchmarkID, counterpartID int64, kind domain.Kind, status domain.ApprovalStatus) (*domain.Association, error) {
	assoc, err := s.find(ctx, benchmarkID, counterpartID, kind)
	if err != nil {
		return nil, err
	}

	user, err := s.registry.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	// Local transition check before mutating registry state; the registry
	// enforces the same rules authoritatively.
	if err := assoc.Decide(status, user, time.Now()); err != nil {
		return nil, err
	}

	if kind == domain.KindDataset {
		return s.registry.SetDatasetAssociationApproval(ctx, benchmarkID, counterpartID, status)
	}
	return s.registry.SetCubeAssociationApproval(ctx, benchmarkID, counterpartID, status)
}

func (s *AssociationService) find(ctx context.Context, benchmarkID, counterpartID int64, kind domain.Kind) (*domain.Association, error) {
	all, err := s.associations.ListAll(ctx, ScopeAll, ports.ListFilter{Mine: true, Benchmark: benchmarkID})
	if err != nil {
		return nil, err
	}

	var found *domain.Association
	for _, a := range all {
		if a.Benchmark != benchmarkID {
			continue
		}
		if kind == domain.KindDataset && a.Dataset != counterpartID {
			continue
		}
		if kind == domain.KindCube && a.ModelCube != counterpartID {
			continue
		}
		if found == nil || a.RequestedAt.After(found.RequestedAt) {
			found = a
		}
	}
	if found == nil {
		return nil, fmt.Errorf("association for benchmark %d and %s %d: %w", benchmarkID, kind, counterpartID, domain.ErrNotFound)
	}
	return found, nil
}
