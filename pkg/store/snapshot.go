package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/dd0wney/taxigraph/pkg/schema"
)

const (
	filePermissions = 0644
)

// Snapshot is the on-disk serialization of the whole store: every node
// and every edge, compressed with snappy. It is a dump of the in-memory
// graph for the CLI and server restarts, not a storage engine.
type Snapshot struct {
	Version int            `json:"version"`
	Nodes   []*schema.Node `json:"nodes"`
	Edges   []*schema.Edge `json:"edges"`
}

const snapshotVersion = 1

// SaveSnapshot writes the full store to path. The write goes to a temp
// file first and is renamed into place so a crash mid-write never leaves
// a truncated snapshot behind.
func (s *MemoryStore) SaveSnapshot(path string) error {
	nodes, err := s.ListNodes("")
	if err != nil {
		return err
	}
	edges, err := s.ListEdges("")
	if err != nil {
		return err
	}

	snap := Snapshot{Version: snapshotVersion, Nodes: nodes, Edges: edges}
	data, err := json.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	compressed := snappy.Encode(nil, data)

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.WriteFile(tmp, compressed, filePermissions); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot replaces the store's contents with the snapshot at path.
// Nodes load before edges so every edge endpoint resolves.
func (s *MemoryStore) LoadSnapshot(path string) error {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	if err := s.Clear(""); err != nil {
		return err
	}
	for _, n := range snap.Nodes {
		if err := s.UpsertNode(n); err != nil {
			return fmt.Errorf("restore node %s: %w", n.ID, err)
		}
	}
	for _, e := range snap.Edges {
		if err := s.UpsertEdge(e.FromID, e.ToID, e.EdgeAttrs); err != nil {
			return fmt.Errorf("restore edge %s -> %s: %w", e.FromID, e.ToID, err)
		}
	}
	return nil
}
