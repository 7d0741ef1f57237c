package domain

import (
	"context"
	"io"
)

// StorageEngine defines the interface for storage operations
// This is the core business interface that implementations must conform to
type StorageEngine interface {
	CreateDatabase(name string) error
	DropDatabase(name string) error
	ListDatabases() ([]string, error)

	CreateCollection(dbName, collName string) error
	DropCollection(dbName, collName string) error
	ListCollections(dbName string) ([]string, error)

	InsertDocuments(dbName, collName string, payload []byte) (int, error)
	QueryDocuments(dbName, collName string, filter Filter) ([]Document, error)
	StreamDocuments(ctx context.Context, dbName, collName string, filter Filter) (<-chan Document, error)
	RemoveDocuments(dbName, collName string, filter Filter) (int, error)
	UpdateDocuments(dbName, collName string, filter Filter, action Action, payload []byte) (int, error)

	ExportDatabase(name string, w io.Writer) error
	ImportDatabase(name string, r io.Reader) error

	GetStats() map[string]interface{}
}
