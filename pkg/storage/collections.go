package storage

import (
	"fmt"
	"log"
	"os"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// CreateCollection registers a collection in its database and writes an
// empty document array as its initial content
func (se *StorageEngine) CreateCollection(dbName, collName string) error {
	if err := se.requireDatabase(dbName); err != nil {
		return err
	}

	file, err := se.layout.CollectionFile(dbName, collName)
	if err != nil {
		return err
	}
	metaFile, err := se.layout.CollectionMeta(dbName)
	if err != nil {
		return err
	}

	registry, err := LoadRegistry(metaFile)
	if err != nil {
		return err
	}
	if err := registry.Add(collName, file); err != nil {
		return err
	}

	if err := DumpDocuments(file, []domain.Document{}); err != nil {
		log.Printf("ERROR: Collection '%s' registered but its file could not be written: %v", collName, err)
		return err
	}

	log.Printf("INFO: Collection '%s' created in database '%s'", collName, dbName)
	return nil
}

// DropCollection unregisters a collection and deletes its file
func (se *StorageEngine) DropCollection(dbName, collName string) error {
	if err := se.requireDatabase(dbName); err != nil {
		return err
	}

	metaFile, err := se.layout.CollectionMeta(dbName)
	if err != nil {
		return err
	}
	registry, err := LoadRegistry(metaFile)
	if err != nil {
		return err
	}
	if err := registry.Remove(collName); err != nil {
		return err
	}

	file, err := se.layout.CollectionFile(dbName, collName)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		log.Printf("ERROR: Collection '%s' unregistered but its file could not be deleted: %v", collName, err)
		return fmt.Errorf("%w: failed to delete collection '%s': %v", domain.ErrIO, collName, err)
	}

	log.Printf("INFO: Collection '%s' dropped from database '%s'", collName, dbName)
	return nil
}

// ListCollections returns the collections of a database in registry order
func (se *StorageEngine) ListCollections(dbName string) ([]string, error) {
	if err := se.requireDatabase(dbName); err != nil {
		return nil, err
	}

	metaFile, err := se.layout.CollectionMeta(dbName)
	if err != nil {
		return nil, err
	}
	registry, err := LoadRegistry(metaFile)
	if err != nil {
		return nil, err
	}
	return registry.Names(), nil
}
