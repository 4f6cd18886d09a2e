package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// Scope selects which tiers a reconciler read consults.
type Scope int

const (
	// ScopeAll merges the registry view with the local cache.
	ScopeAll Scope = iota
	// ScopeLocalOnly never touches the network.
	ScopeLocalOnly
)

// Source is the capability set the reconciler needs for one entity type.
// Implementations wrap the registry client and the local store; the merge
// algorithm itself lives in Reconciler and is shared by every type.
type Source[E domain.Entity] interface {
	Kind() domain.Kind
	FetchRemote(ctx context.Context, uid string) (E, error)
	ListRemote(ctx context.Context, filter ports.ListFilter) ([]E, error)
	FetchLocal(uid string) (E, error)
	ListLocal() ([]E, error)
	// Persist caches a record locally, keyed by its UID.
	Persist(e E) error
	// Rekey moves a local record when registration assigns a new UID.
	Rekey(oldUID, newUID string) error
	// Submit sends a new entity to the registry, which assigns its ID and
	// timestamps.
	Submit(ctx context.Context, e E) (E, error)
}

// Reconciler merges the remote and local views of one entity type without
// duplication: remote entities win, local-only entities are appended when
// their UID has no remote counterpart.
type Reconciler[E domain.Entity] struct {
	source Source[E]
	log    *log.Entry
}

func NewReconciler[E domain.Entity](source Source[E]) *Reconciler[E] {
	return &Reconciler[E]{
		source: source,
		log:    log.WithField("kind", source.Kind()),
	}
}

func (r *Reconciler[E]) Kind() domain.Kind { return r.source.Kind() }

// ListAll returns the deduplicated union of the registry view and the local
// cache, remote-first. Registry unavailability is never fatal to listing; a
// corrupt local record is. Synthetic entities never appear.
func (r *Reconciler[E]) ListAll(ctx context.Context, scope Scope, filter ports.ListFilter, keep ...func(E) bool) ([]E, error) {
	var entities []E
	if scope != ScopeLocalOnly {
		remote, err := r.source.ListRemote(ctx, filter)
		if err != nil {
			r.log.WithError(err).Warn("could not list entities from the registry, continuing with local records")
		} else {
			entities = remote
		}
	}

	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		seen[e.UID()] = struct{}{}
	}

	local, err := r.source.ListLocal()
	if err != nil {
		return nil, fmt.Errorf("enumerate local %ss: %w", r.Kind(), err)
	}
	for _, e := range local {
		if _, dup := seen[e.UID()]; dup {
			continue
		}
		entities = append(entities, e)
	}

	filtered := entities[:0]
	for _, e := range entities {
		if e.Synthetic() {
			continue
		}
		if !matchAll(e, keep) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// Get resolves one entity, registry first unless restricted to the local
// cache. Every successful fetch is written through to local storage so the
// next offline read can succeed; a failed write-through is logged, never
// raised.
func (r *Reconciler[E]) Get(ctx context.Context, uid string, scope Scope) (E, error) {
	var zero E
	if scope != ScopeLocalOnly {
		e, err := r.source.FetchRemote(ctx, uid)
		if err == nil {
			r.writeThrough(e)
			return e, nil
		}
		if !errors.Is(err, domain.ErrRetrieval) {
			return zero, err
		}
		r.log.WithError(err).WithField("uid", uid).Warn("registry fetch failed, falling back to local cache")
	}

	e, err := r.source.FetchLocal(uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, fmt.Errorf("%s %s: %w", r.Kind(), uid, domain.ErrNotFound)
		}
		return zero, err
	}
	r.writeThrough(e)
	return e, nil
}

// Upload submits an entity to the registry and merges the server assigned
// fields back into the local record, re-keying it under the new ID.
// Synthetic entities are rejected before any network call.
func (r *Reconciler[E]) Upload(ctx context.Context, e E) (E, error) {
	var zero E
	if e.Synthetic() {
		return zero, fmt.Errorf("%s %s is a test entity: %w", r.Kind(), e.UID(), domain.ErrInvalidState)
	}

	oldUID := e.UID()
	created, err := r.source.Submit(ctx, e)
	if err != nil {
		return zero, err
	}

	if newUID := created.UID(); newUID != oldUID && oldUID != "" {
		if err := r.source.Rekey(oldUID, newUID); err != nil {
			r.log.WithError(err).WithFields(log.Fields{"from": oldUID, "to": newUID}).
				Warn("could not re-key local record after registration")
		}
	}
	r.writeThrough(created)
	return created, nil
}

func (r *Reconciler[E]) writeThrough(e E) {
	if err := r.source.Persist(e); err != nil {
		r.log.WithError(err).WithField("uid", e.UID()).Warn("could not cache record locally")
	}
}

func matchAll[E domain.Entity](e E, keep []func(E) bool) bool {
	for _, pred := range keep {
		if !pred(e) {
			return false
		}
	}
	return true
}
