package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"zwmart/models"
)

// SnapshotVersion guards the on-disk layout. Snapshots written with a
// different version are discarded on load rather than migrated.
const SnapshotVersion = 1

type snapshotFile struct {
	Version int               `json:"version"`
	Items   []models.CartItem `json:"items"`
	SavedAt time.Time         `json:"savedAt"`
}

// Snapshot persists a cart collection to a single JSON file, the durable
// local copy that survives restarts.
type Snapshot struct {
	path string
}

func NewSnapshot(dir, userID string) *Snapshot {
	name := "cart.json"
	if userID != "" {
		name = "cart-" + userID + ".json"
	}
	return &Snapshot{path: filepath.Join(dir, name)}
}

// Save writes the full collection, replacing any previous snapshot.
func (s *Snapshot) Save(items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(snapshotFile{
		Version: SnapshotVersion,
		Items:   items,
		SavedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Load reads the snapshot back. The second return is false when no usable
// snapshot exists (missing file, corrupt data, or version mismatch).
func (s *Snapshot) Load() ([]models.CartItem, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, err
	}
	if snap.Version != SnapshotVersion {
		log.Printf("cart: discarding snapshot with version %d", snap.Version)
		return nil, false, nil
	}
	return snap.Items, true, nil
}
