package localfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
)

func TestWriteRecordStampsSchemaVersion(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.WriteRecord(domain.KindBenchmark, "1", []byte("id: 1\nname: bmk\n")))

	raw, err := s.ReadRecord(domain.KindBenchmark, "1")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc["schema_version"])
	assert.Equal(t, "bmk", doc["name"])
}

func TestReadRecordMissing(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.ReadRecord(domain.KindDataset, "42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReadRecordCorrupt(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	dir := s.EntityDir(domain.KindDataset, "42")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registration-info.yaml"), []byte(":\nnot yaml\n\t"), 0o644))

	_, err := s.ReadRecord(domain.KindDataset, "42")

	assert.ErrorIs(t, err, domain.ErrLocalRecordCorrupt)
}

func TestReadRecordMigratesV1Dataset(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	dir := s.EntityDir(domain.KindDataset, "42")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	// A v1 record: no schema_version, generated metadata under "metadata",
	// no approval status.
	v1 := "id: 42\nname: old dataset\nmetadata:\n  samples: 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registration-info.yaml"), []byte(v1), 0o644))

	raw, err := s.ReadRecord(domain.KindDataset, "42")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc["schema_version"])
	assert.NotContains(t, doc, "metadata")
	assert.Equal(t, map[string]any{"samples": 10}, doc["generated_metadata"])
	// Registered v1 datasets predate the approval workflow and are treated
	// as approved.
	assert.Equal(t, "APPROVED", doc["status"])
}

func TestReadRecordMigrationDefaultsPendingForUnregistered(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	dir := s.EntityDir(domain.KindDataset, "deadbeef")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	v1 := "id: 0\nfingerprint: deadbeef\nname: unregistered\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registration-info.yaml"), []byte(v1), 0o644))

	raw, err := s.ReadRecord(domain.KindDataset, "deadbeef")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "PENDING", doc["status"])
}

func TestListUIDsSkipsDirectoriesWithoutRecord(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	require.NoError(t, s.WriteRecord(domain.KindDataset, "1", []byte("id: 1\n")))
	// A staging directory left behind by an interrupted preparation run.
	require.NoError(t, os.MkdirAll(s.EntityDir(domain.KindDataset, "tmp_prep_123"), 0o755))

	uids, err := s.ListUIDs(domain.KindDataset)

	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, uids)
}

func TestListUIDsEmptyWhenKindDirMissing(t *testing.T) {
	s := NewStore(t.TempDir())

	uids, err := s.ListUIDs(domain.KindResult)

	require.NoError(t, err)
	assert.Empty(t, uids)
}

func TestRekeyMovesEntityDirectory(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	require.NoError(t, s.WriteRecord(domain.KindDataset, "deadbeef", []byte("fingerprint: deadbeef\n")))

	require.NoError(t, s.Rekey(domain.KindDataset, "deadbeef", "5"))

	_, err := s.ReadRecord(domain.KindDataset, "deadbeef")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.ReadRecord(domain.KindDataset, "5")
	assert.NoError(t, err)
}

func TestRekeyMissingSourceIsNoOp(t *testing.T) {
	s := NewStore(t.TempDir())

	assert.NoError(t, s.Rekey(domain.KindDataset, "gone", "5"))
}

func TestLinkExposesExternalDirectoryAsEntity(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "mlcube.yaml"), []byte("name: local\n"), 0o644))

	require.NoError(t, s.Link(domain.KindCube, "tmp_123", target))

	raw, err := os.ReadFile(filepath.Join(s.EntityDir(domain.KindCube, "tmp_123"), "mlcube.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "local")

	// A linked cube carries no registry record, so listings ignore it.
	uids, err := s.ListUIDs(domain.KindCube)
	require.NoError(t, err)
	assert.Empty(t, uids)
}
