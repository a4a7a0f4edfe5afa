// SPDX-License-Identifier: MIT

package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/courtside/scoreticker/internal/game"
	"github.com/google/renameio/v2"
)

// Snapshot is the on-disk games document. Readers always see either the
// previous or the new complete file, never a partial write.
type Snapshot struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Games       []game.Game `json:"games"`
}

// SnapshotFile is the file name inside the data dir.
const SnapshotFile = "games.json"

func writeSnapshot(dataDir string, games []game.Game) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	snap := Snapshot{GeneratedAt: time.Now().UTC(), Games: games}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(dataDir, SnapshotFile)
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads the last written games document, for serving a board
// before the first refresh completes after a restart.
func ReadSnapshot(dataDir string) (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(filepath.Join(dataDir, SnapshotFile)) // #nosec G304 -- path derives from config
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}
