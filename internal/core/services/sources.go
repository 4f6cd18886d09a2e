package services

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// recordSource adapts a registry client entity endpoint plus the local
// record store into a reconciler Source. T is the concrete entity struct,
// E its pointer type.
type recordSource[T any, E interface {
	*T
	domain.Entity
}] struct {
	kind   domain.Kind
	store  ports.LocalStore
	fetch  func(ctx context.Context, id int64) (E, error)
	list   func(ctx context.Context, filter ports.ListFilter) ([]E, error)
	create func(ctx context.Context, e E) (E, error)
}

func (s *recordSource[T, E]) Kind() domain.Kind { return s.kind }

func (s *recordSource[T, E]) FetchRemote(ctx context.Context, uid string) (E, error) {
	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		// Fingerprints and tmp_ UIDs are unknown to the registry.
		var zero E
		return zero, fmt.Errorf("%q is not a registry identifier: %w", uid, domain.ErrRetrieval)
	}
	return s.fetch(ctx, id)
}

func (s *recordSource[T, E]) ListRemote(ctx context.Context, filter ports.ListFilter) ([]E, error) {
	return s.list(ctx, filter)
}

func (s *recordSource[T, E]) FetchLocal(uid string) (E, error) {
	var zero E
	record, err := s.store.ReadRecord(s.kind, uid)
	if err != nil {
		return zero, err
	}
	var entity T
	if err := yaml.Unmarshal(record, &entity); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", s.kind, uid, domain.ErrLocalRecordCorrupt)
	}
	return E(&entity), nil
}

func (s *recordSource[T, E]) ListLocal() ([]E, error) {
	uids, err := s.store.ListUIDs(s.kind)
	if err != nil {
		return nil, err
	}
	entities := make([]E, 0, len(uids))
	for _, uid := range uids {
		e, err := s.FetchLocal(uid)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (s *recordSource[T, E]) Persist(e E) error {
	record, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", s.kind, err)
	}
	return s.store.WriteRecord(s.kind, e.UID(), record)
}

func (s *recordSource[T, E]) Rekey(oldUID, newUID string) error {
	return s.store.Rekey(s.kind, oldUID, newUID)
}

func (s *recordSource[T, E]) Submit(ctx context.Context, e E) (E, error) {
	return s.create(ctx, e)
}

func NewBenchmarkReconciler(client ports.RegistryClient, store ports.LocalStore) *Reconciler[*domain.Benchmark] {
	return NewReconciler[*domain.Benchmark](&recordSource[domain.Benchmark, *domain.Benchmark]{
		kind:  domain.KindBenchmark,
		store: store,
		fetch: func(ctx context.Context, id int64) (*domain.Benchmark, error) {
			b, err := client.GetBenchmark(ctx, id)
			if err != nil {
				return nil, err
			}
			// The registry keeps approved model associations separate from
			// the benchmark record; fold them into the models list here.
			extra, err := client.GetBenchmarkModels(ctx, id)
			if err != nil {
				return nil, err
			}
			models := []string{b.ReferenceModelCube}
			for _, m := range extra {
				uid := strconv.FormatInt(m, 10)
				if uid != b.ReferenceModelCube {
					models = append(models, uid)
				}
			}
			b.Models = models
			return b, nil
		},
		list:   client.ListBenchmarks,
		create: client.CreateBenchmark,
	})
}

func NewCubeReconciler(client ports.RegistryClient, store ports.LocalStore) *Reconciler[*domain.Cube] {
	return NewReconciler[*domain.Cube](&recordSource[domain.Cube, *domain.Cube]{
		kind:   domain.KindCube,
		store:  store,
		fetch:  client.GetCube,
		list:   client.ListCubes,
		create: client.CreateCube,
	})
}

func NewDatasetReconciler(client ports.RegistryClient, store ports.LocalStore) *Reconciler[*domain.Dataset] {
	return NewReconciler[*domain.Dataset](&recordSource[domain.Dataset, *domain.Dataset]{
		kind:   domain.KindDataset,
		store:  store,
		fetch:  client.GetDataset,
		list:   client.ListDatasets,
		create: client.CreateDataset,
	})
}

func NewResultReconciler(client ports.RegistryClient, store ports.LocalStore) *Reconciler[*domain.Result] {
	return NewReconciler[*domain.Result](&recordSource[domain.Result, *domain.Result]{
		kind:   domain.KindResult,
		store:  store,
		fetch:  client.GetResult,
		list:   client.ListResults,
		create: client.CreateResult,
	})
}

// associationSource has no local tier: association authority is held solely
// by the registry, so the local side of the merge is empty by design.
type associationSource struct {
	client ports.RegistryClient
}

func (s *associationSource) Kind() domain.Kind { return domain.KindAssociation }

func (s *associationSource) FetchRemote(ctx context.Context, uid string) (*domain.Association, error) {
	all, err := s.ListRemote(ctx, ports.ListFilter{Mine: true})
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.UID() == uid {
			return a, nil
		}
	}
	return nil, fmt.Errorf("association %s: %w", uid, domain.ErrRetrieval)
}

func (s *associationSource) ListRemote(ctx context.Context, filter ports.ListFilter) ([]*domain.Association, error) {
	// Only user-scoped association listings exist on the registry.
	filter.Mine = true
	dsets, err := s.client.ListDatasetAssociations(ctx, filter)
	if err != nil {
		return nil, err
	}
	cubes, err := s.client.ListCubeAssociations(ctx, filter)
	if err != nil {
		return nil, err
	}
	return append(dsets, cubes...), nil
}

func (s *associationSource) FetchLocal(uid string) (*domain.Association, error) {
	return nil, domain.ErrNotFound
}

func (s *associationSource) ListLocal() ([]*domain.Association, error) {
	return nil, nil
}

func (s *associationSource) Persist(*domain.Association) error { return nil }

func (s *associationSource) Rekey(oldUID, newUID string) error { return nil }

func (s *associationSource) Submit(ctx context.Context, a *domain.Association) (*domain.Association, error) {
	// Associations are created through the request workflow, never uploaded
	// as plain entities.
	return nil, fmt.Errorf("associations cannot be uploaded directly: %w", domain.ErrInvalidArgument)
}

func NewAssociationReconciler(client ports.RegistryClient) *Reconciler[*domain.Association] {
	return NewReconciler[*domain.Association](&associationSource{client: client})
}
