package localfs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

// recordSchemaVersion is the current on-disk record schema. Older records
// are migrated forward in one explicit step at load time.
const recordSchemaVersion = 2

// Store is the on-disk entity cache: one directory per UID holding a YAML
// record and any artifacts (dataset data/labels trees, cube manifests).
type Store struct {
	paths Paths
}

var _ ports.LocalStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{paths: Paths{Root: root}}
}

func (s *Store) EntityDir(kind domain.Kind, uid string) string {
	return s.paths.EntityDir(kind, uid)
}

func (s *Store) ReadRecord(kind domain.Kind, uid string) ([]byte, error) {
	raw, err := os.ReadFile(s.paths.RecordFile(kind, uid))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s %s has no local record: %w", kind, uid, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s record %s: %w", kind, uid, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s record %s: %w", kind, uid, domain.ErrLocalRecordCorrupt)
	}

	if version(doc) >= recordSchemaVersion {
		return raw, nil
	}
	migrate(kind, doc)
	migrated, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encode migrated %s record %s: %w", kind, uid, err)
	}
	return migrated, nil
}

func (s *Store) WriteRecord(kind domain.Kind, uid string, record []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(record, &doc); err != nil {
		return fmt.Errorf("encode %s record %s: %w", kind, uid, err)
	}
	doc["schema_version"] = recordSchemaVersion
	stamped, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", kind, uid, err)
	}

	dir := s.paths.EntityDir(kind, uid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s directory: %w", kind, err)
	}
	return os.WriteFile(s.paths.RecordFile(kind, uid), stamped, 0o644)
}

// ListUIDs enumerates entity directories that hold a record file. Staging
// directories and bare cube symlinks carry no record and are skipped.
func (s *Store) ListUIDs(kind domain.Kind) ([]string, error) {
	entries, err := os.ReadDir(s.paths.KindDir(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("enumerate %s storage: %w", kind, err)
	}

	var uids []string
	for _, entry := range entries {
		uid := entry.Name()
		if _, err := os.Stat(s.paths.RecordFile(kind, uid)); err != nil {
			continue
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

// Rekey renames an entity directory, used when registration supersedes a
// fingerprint key with the registry-assigned identifier.
func (s *Store) Rekey(kind domain.Kind, oldUID, newUID string) error {
	oldDir := s.paths.EntityDir(kind, oldUID)
	if _, err := os.Lstat(oldDir); os.IsNotExist(err) {
		return nil
	}
	newDir := s.paths.EntityDir(kind, newUID)
	if err := os.MkdirAll(filepath.Dir(newDir), 0o755); err != nil {
		return err
	}
	return os.Rename(oldDir, newDir)
}

func (s *Store) Link(kind domain.Kind, uid, target string) error {
	if err := os.MkdirAll(s.paths.KindDir(kind), 0o755); err != nil {
		return err
	}
	return os.Symlink(target, s.paths.EntityDir(kind, uid))
}

func version(doc map[string]any) int {
	v, ok := doc["schema_version"].(int)
	if !ok {
		return 1
	}
	return v
}

// migrate lifts a v1 record to the current schema. v1 dataset records named
// the generated metadata field "metadata" and carried no explicit approval
// status.
func migrate(kind domain.Kind, doc map[string]any) {
	if kind == domain.KindDataset {
		if meta, ok := doc["metadata"]; ok {
			if _, exists := doc["generated_metadata"]; !exists {
				doc["generated_metadata"] = meta
			}
			delete(doc, "metadata")
		}
		if _, ok := doc["status"]; !ok {
			if id, _ := doc["id"].(int); id > 0 {
				doc["status"] = string(domain.StatusApproved)
			} else {
				doc["status"] = string(domain.StatusPending)
			}
		}
	}
	doc["schema_version"] = recordSchemaVersion
}
