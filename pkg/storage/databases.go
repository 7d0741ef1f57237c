package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// CreateDatabase creates the database directory and registers it. The two
// steps are independent: if registration fails the directory is left behind
// and the error is returned.
func (se *StorageEngine) CreateDatabase(name string) error {
	dir, err := se.layout.DatabaseDir(name)
	if err != nil {
		return err
	}

	registry, err := LoadRegistry(se.layout.DatabaseMeta())
	if err != nil {
		return err
	}
	if registry.Exists(name) {
		return fmt.Errorf("%w: database '%s'", domain.ErrAlreadyExists, name)
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return fmt.Errorf("%w: failed to create storage root: %v", domain.ErrIO, err)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if !os.IsExist(err) {
			return fmt.Errorf("%w: failed to create database '%s': %v", domain.ErrIO, name, err)
		}
		info, statErr := os.Stat(dir)
		if statErr != nil {
			return fmt.Errorf("%w: failed to create database '%s': %v", domain.ErrIO, name, statErr)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: database '%s' path exists and is not a directory", domain.ErrAlreadyExists, name)
		}
		log.Printf("WARN: Directory for unregistered database '%s' already exists, registering it", name)
	}

	if err := registry.Add(name, dir); err != nil {
		log.Printf("ERROR: Database directory '%s' created but registration failed: %v", dir, err)
		return err
	}

	log.Printf("INFO: Database '%s' created", name)
	return nil
}

// DropDatabase deletes the files directly inside the database directory,
// removes the directory and unregisters it. Subdirectories are not descended
// into; if any exist the directory removal fails and the entry is kept.
func (se *StorageEngine) DropDatabase(name string) error {
	registry, err := LoadRegistry(se.layout.DatabaseMeta())
	if err != nil {
		return err
	}
	if !registry.Exists(name) {
		return fmt.Errorf("%w: database '%s'", domain.ErrNotFound, name)
	}

	dir, err := se.layout.DatabaseDir(name)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to read database '%s': %v", domain.ErrIO, name, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: failed to delete '%s': %v", domain.ErrIO, entry.Name(), err)
		}
		se.debugf("Deleted '%s' from database '%s'", entry.Name(), name)
	}

	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to drop database '%s': %v", domain.ErrIO, name, err)
	}

	if err := registry.Remove(name); err != nil {
		log.Printf("ERROR: Database directory '%s' removed but unregistration failed: %v", dir, err)
		return err
	}

	log.Printf("INFO: Database '%s' dropped", name)
	return nil
}

// ListDatabases returns registered database names in registry order
func (se *StorageEngine) ListDatabases() ([]string, error) {
	registry, err := LoadRegistry(se.layout.DatabaseMeta())
	if err != nil {
		return nil, err
	}
	return registry.Names(), nil
}

// requireDatabase fails with ErrNotFound when name is not registered
func (se *StorageEngine) requireDatabase(name string) error {
	registry, err := LoadRegistry(se.layout.DatabaseMeta())
	if err != nil {
		return err
	}
	if !registry.Exists(name) {
		return fmt.Errorf("%w: database '%s'", domain.ErrNotFound, name)
	}
	return nil
}
