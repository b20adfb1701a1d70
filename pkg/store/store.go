// Package store persists named graph snapshots so sessions of the
// widget or CLI can be saved and reloaded later.
//
// A [Snapshot] carries the exported graph JSON plus identity and
// timestamps. Two backends implement [Store]: a file store under the
// user config directory for CLI use, and a MongoDB store for shared
// deployments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrInvalidSnapshot is returned when a snapshot has no ID or payload.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Snapshot is a named, saved graph.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Graph holds the JSON export produced by the io package.
	Graph []byte `json:"graph" bson:"graph"`
}

// NewSnapshot builds a snapshot with a fresh UUID and the current
// time.
func NewSnapshot(name string, graph []byte) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Graph:     graph,
	}
}

func (s *Snapshot) validate() error {
	if s == nil || s.ID == "" || len(s.Graph) == 0 {
		return ErrInvalidSnapshot
	}
	return nil
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores a snapshot, replacing any existing one with the same ID.
	Put(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns all snapshots sorted by creation time, newest first.
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes a snapshot. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
