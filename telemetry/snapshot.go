package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of a room at one tick, for post-mortem inspection.
type Snapshot struct {
	Version  int    `json:"version"`
	RunID    string `json:"run_id"`
	RNGSeed  int64  `json:"rng_seed"`
	Scenario string `json:"scenario"`

	Tick uint64 `json:"tick"`

	Ship        ShipState         `json:"ship"`
	Baddies     []BaddieState     `json:"baddies"`
	Projectiles []ProjectileState `json:"projectiles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ShipState holds the ship's state.
type ShipState struct {
	Present bool    `json:"present"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VelX    float64 `json:"vel_x"`
	VelY    float64 `json:"vel_y"`
	Angle   float64 `json:"angle"`
	Shield  float64 `json:"shield"`
}

// BaddieState holds one live baddie.
type BaddieState struct {
	Slot     int     `json:"slot"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VelX     float64 `json:"vel_x"`
	VelY     float64 `json:"vel_y"`
	Angle    float64 `json:"angle"`
	Health   float64 `json:"health"`
	Cooldown float64 `json:"cooldown"`
	Frozen   float64 `json:"frozen,omitempty"`
}

// ProjectileState holds one live projectile.
type ProjectileState struct {
	Slot  int     `json:"slot"`
	Kind  string  `json:"kind"`
	Enemy bool    `json:"enemy"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VelX  float64 `json:"vel_x"`
	VelY  float64 `json:"vel_y"`
	Age   float64 `json:"age"`
	Power float64 `json:"power"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
