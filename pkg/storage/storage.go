package storage

import (
	"log"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// StorageEngine composes path resolution, registries and collection files
// into the database/collection/document operations. Every call loads what it
// needs from disk, mutates it in memory and writes it back; nothing is cached
// between calls and no locking is done here.
type StorageEngine struct {
	layout Layout
	debug  bool
}

var _ domain.StorageEngine = (*StorageEngine)(nil)

// NewStorageEngine creates a new storage engine
func NewStorageEngine(options ...StorageOption) *StorageEngine {
	engine := &StorageEngine{
		layout: Layout{
			Root:          DefaultRoot(),
			MaxPathLength: DefaultMaxPathLength,
		},
	}

	// Apply options
	for _, option := range options {
		option(engine)
	}

	return engine
}

// Layout returns the path layout used by the engine
func (se *StorageEngine) Layout() Layout {
	return se.layout
}

func (se *StorageEngine) debugf(format string, args ...interface{}) {
	if se.debug {
		log.Printf("DEBUG: "+format, args...)
	}
}
