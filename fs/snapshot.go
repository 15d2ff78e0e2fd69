// Package fs persists index snapshots to a local cache directory with
// atomic update semantics: a snapshot is written to a temporary directory
// and moved into place with a single rename, so readers never observe a
// half-written cache.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/krpcdocs"
)

const (
	pagesFile   = "pages.json"
	membersFile = "members.json"
	metaFile    = "meta.json"
)

// Ensure SnapshotStore implements krpcdocs.SnapshotStore at compile time.
var _ krpcdocs.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore reads and writes snapshots under dir. A corrupt or partially
// written cache is indistinguishable from a missing one: Load returns
// ENOTFOUND and the caller rebuilds.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store rooted at dir. The directory is created
// on the first Save.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// meta records when the snapshot was built and the content hashes of the
// data files, used to detect truncated or tampered caches on load.
type meta struct {
	IndexedAt    time.Time `json:"indexedAt"`
	PagesHash    uint64    `json:"pagesHash"`
	MembersHash  uint64    `json:"membersHash"`
	PageCount    int       `json:"pageCount"`
	MemberCount  int       `json:"memberCount"`
	FormatNumber int       `json:"format"`
}

const formatNumber = 1

// Load reads the cached snapshot. Any problem with the cache (missing
// directory, unreadable file, checksum mismatch, unknown format) is
// reported as ENOTFOUND.
func (s *SnapshotStore) Load(ctx context.Context) (*krpcdocs.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metaData, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "no cached snapshot at %s", s.dir)
	}
	var m meta
	if err := json.Unmarshal(metaData, &m); err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "corrupt snapshot metadata at %s", s.dir)
	}
	if m.FormatNumber != formatNumber {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "unsupported snapshot format %d at %s", m.FormatNumber, s.dir)
	}

	pagesData, err := os.ReadFile(filepath.Join(s.dir, pagesFile))
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "no cached snapshot at %s", s.dir)
	}
	membersData, err := os.ReadFile(filepath.Join(s.dir, membersFile))
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "no cached snapshot at %s", s.dir)
	}

	if xxhash.Sum64(pagesData) != m.PagesHash || xxhash.Sum64(membersData) != m.MembersHash {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "snapshot checksum mismatch at %s", s.dir)
	}

	snap := &krpcdocs.Snapshot{IndexedAt: m.IndexedAt}
	if err := json.Unmarshal(pagesData, &snap.Pages); err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "corrupt snapshot pages at %s", s.dir)
	}
	if err := json.Unmarshal(membersData, &snap.Members); err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "corrupt snapshot members at %s", s.dir)
	}
	if snap.Pages == nil {
		snap.Pages = make(map[string]*krpcdocs.Page)
	}
	if snap.Members == nil {
		snap.Members = make(map[string]*krpcdocs.Member)
	}

	return snap, nil
}

// Save writes the snapshot to a sibling temp directory and renames it into
// place. The previous snapshot stays intact until the rename.
func (s *SnapshotStore) Save(ctx context.Context, snap *krpcdocs.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pagesData, err := json.Marshal(snap.Pages)
	if err != nil {
		return fmt.Errorf("marshal pages: %w", err)
	}
	membersData, err := json.Marshal(snap.Members)
	if err != nil {
		return fmt.Errorf("marshal members: %w", err)
	}
	metaData, err := json.Marshal(meta{
		IndexedAt:    snap.IndexedAt,
		PagesHash:    xxhash.Sum64(pagesData),
		MembersHash:  xxhash.Sum64(membersData),
		PageCount:    len(snap.Pages),
		MemberCount:  len(snap.Members),
		FormatNumber: formatNumber,
	})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	tmp := s.dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	for _, f := range []struct {
		name string
		data []byte
	}{
		{pagesFile, pagesData},
		{membersFile, membersData},
		{metaFile, metaData},
	} {
		if err := os.WriteFile(filepath.Join(tmp, f.name), f.data, 0644); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(tmp, s.dir)
}
