package ports

import "benchreg/internal/core/domain"

// LocalStore is the on-disk cache: one directory per entity keyed by UID,
// holding a YAML record plus any entity artifacts. Records are handed over
// as raw YAML; schema migration of older records happens inside ReadRecord.
type LocalStore interface {
	// ReadRecord returns the (migrated) record for an entity, or
	// domain.ErrNotFound / domain.ErrLocalRecordCorrupt.
	ReadRecord(kind domain.Kind, uid string) ([]byte, error)
	WriteRecord(kind domain.Kind, uid string, record []byte) error
	// ListUIDs enumerates the entity directories present for a kind.
	ListUIDs(kind domain.Kind) ([]string, error)
	// Rekey renames an entity directory when registration assigns an ID.
	Rekey(kind domain.Kind, oldUID, newUID string) error
	// Link places a symlink at the entity slot pointing at an external path,
	// letting pipeline code address path-provided cubes by UID.
	Link(kind domain.Kind, uid, target string) error
	// EntityDir resolves the directory for an entity without touching disk.
	EntityDir(kind domain.Kind, uid string) string
}
