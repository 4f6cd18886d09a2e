package domain

import (
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindBenchmark   Kind = "benchmark"
	KindCube        Kind = "cube"
	KindDataset     Kind = "dataset"
	KindResult      Kind = "result"
	KindAssociation Kind = "association"
)

// TmpPrefix is the reserved namespace for synthetic entity UIDs. Registry
// assigned identifiers are decimal integers, so the two can never collide.
const TmpPrefix = "tmp_"

type LifecycleState string

const (
	StateDevelopment LifecycleState = "DEVELOPMENT"
	StateOperation   LifecycleState = "OPERATION"
)

// Entity is the capability shared by everything the reconciler can manage.
type Entity interface {
	EntityKind() Kind
	UID() string
	Registered() bool
	Synthetic() bool
}

// Identity carries the fields common to all registrable entities. The UID is
// the local storage key: a registered entity is keyed by its registry ID, an
// unregistered one by its content fingerprint, and a synthetic one by its
// reserved tmp_ UID.
type Identity struct {
	ID          int64     `json:"id" yaml:"id"`
	Fingerprint string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Owner       int64     `json:"owner,omitempty" yaml:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ModifiedAt  time.Time `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`

	// TempUID is set only on synthetic entities built for compatibility
	// tests. It is never sent to the registry.
	TempUID string `json:"-" yaml:"tmp_uid,omitempty"`
}

func (m Identity) Registered() bool { return m.ID > 0 }

func (m Identity) UID() string {
	if m.TempUID != "" {
		return m.TempUID
	}
	if m.ID > 0 {
		return strconv.FormatInt(m.ID, 10)
	}
	return m.Fingerprint
}

func (m Identity) Synthetic() bool {
	return strings.HasPrefix(m.UID(), TmpPrefix)
}

// IsTmpUID reports whether uid lives in the reserved synthetic namespace.
func IsTmpUID(uid string) bool {
	return strings.HasPrefix(uid, TmpPrefix)
}
