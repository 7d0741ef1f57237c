package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adfharrison1/protondb/pkg/domain"
)

const (
	// DefaultRootName is the directory created under the user config dir
	DefaultRootName = "ProtonDB"
	// DefaultMaxPathLength bounds every composed path
	DefaultMaxPathLength = 512

	databasesDir        = "db"
	databaseMetaFile    = ".database.meta"
	collectionMetaFile  = ".collection.meta"
	collectionExtension = ".col"
)

// Layout composes filesystem locations for databases, collections and
// registries beneath a storage root. It holds no state besides its
// configuration and is safe to copy.
type Layout struct {
	Root          string
	MaxPathLength int
}

// DefaultRoot returns <user config dir>/ProtonDB, falling back to the
// working directory when the platform has no config dir.
func DefaultRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultRootName
	}
	return filepath.Join(dir, DefaultRootName)
}

// DatabaseMeta returns the path of the global database registry
func (l Layout) DatabaseMeta() string {
	return filepath.Join(l.Root, databasesDir, databaseMetaFile)
}

// DatabaseDir returns the directory holding one database
func (l Layout) DatabaseDir(dbName string) (string, error) {
	if err := validateName("database", dbName); err != nil {
		return "", err
	}
	return l.checkLength(filepath.Join(l.Root, databasesDir, dbName))
}

// CollectionMeta returns the collection registry of a database
func (l Layout) CollectionMeta(dbName string) (string, error) {
	dir, err := l.DatabaseDir(dbName)
	if err != nil {
		return "", err
	}
	return l.checkLength(filepath.Join(dir, collectionMetaFile))
}

// CollectionFile returns the file backing a collection
func (l Layout) CollectionFile(dbName, collName string) (string, error) {
	dir, err := l.DatabaseDir(dbName)
	if err != nil {
		return "", err
	}
	if err := validateName("collection", collName); err != nil {
		return "", err
	}
	return l.checkLength(filepath.Join(dir, collName+collectionExtension))
}

func (l Layout) checkLength(path string) (string, error) {
	limit := l.MaxPathLength
	if limit <= 0 {
		limit = DefaultMaxPathLength
	}
	if len(path) >= limit {
		return "", fmt.Errorf("%w: path '%s' is %d bytes, limit is %d", domain.ErrNameTooLong, path, len(path), limit)
	}
	return path, nil
}

// validateName rejects names that are empty or would resolve outside their parent directory
func validateName(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: %s name cannot be empty", domain.ErrInvalidName, kind)
	case name == "." || name == "..", isRegistryFileName(name):
		return fmt.Errorf("%w: %s name '%s' is reserved", domain.ErrInvalidName, kind, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %s name '%s' contains a path separator", domain.ErrInvalidName, kind, name)
	}
	return nil
}

// isRegistryFileName reports whether name collides with a registry file or
// the temporary file it is written through.
func isRegistryFileName(name string) bool {
	switch strings.TrimSuffix(name, ".tmp") {
	case databaseMetaFile, collectionMetaFile:
		return true
	}
	return false
}
