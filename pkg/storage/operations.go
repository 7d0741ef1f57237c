package storage

import (
	"errors"
	"fmt"
	"log"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// loadCollection reads a collection that must already exist on disk
func (se *StorageEngine) loadCollection(dbName, collName string) ([]domain.Document, string, error) {
	path, err := se.layout.CollectionFile(dbName, collName)
	if err != nil {
		return nil, "", err
	}

	docs, found, err := LoadDocuments(path)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", fmt.Errorf("%w: collection '%s' in database '%s'", domain.ErrNotFound, collName, dbName)
	}
	return docs, path, nil
}

// InsertDocuments appends one object or an array of objects to a collection,
// creating the collection first when its file does not exist. It returns the
// number of documents inserted.
func (se *StorageEngine) InsertDocuments(dbName, collName string, payload []byte) (int, error) {
	incoming, err := parseInsertPayload(payload)
	if err != nil {
		return 0, err
	}

	path, err := se.layout.CollectionFile(dbName, collName)
	if err != nil {
		return 0, err
	}

	docs, found, err := LoadDocuments(path)
	if err != nil {
		return 0, err
	}
	if !found {
		se.debugf("Collection '%s' not found in database '%s', creating it", collName, dbName)
		// a registered collection whose file went missing is recreated in place
		if err := se.CreateCollection(dbName, collName); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return 0, err
		}
		docs = []domain.Document{}
	}

	for _, doc := range incoming {
		docs = append(docs, cloneDocument(doc))
	}

	if err := DumpDocuments(path, docs); err != nil {
		return 0, err
	}

	log.Printf("INFO: Inserted %d documents into '%s.%s'", len(incoming), dbName, collName)
	return len(incoming), nil
}

// QueryDocuments returns the documents matching filter in collection order
func (se *StorageEngine) QueryDocuments(dbName, collName string, filter domain.Filter) ([]domain.Document, error) {
	docs, _, err := se.loadCollection(dbName, collName)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Document, 0)
	for _, doc := range docs {
		if Matches(doc, filter) {
			results = append(results, doc)
		}
	}

	se.debugf("Query on '%s.%s' matched %d of %d documents", dbName, collName, len(results), len(docs))
	return results, nil
}

// RemoveDocuments deletes every document matching filter and returns how
// many were removed. The collection is rewritten only when something matched.
func (se *StorageEngine) RemoveDocuments(dbName, collName string, filter domain.Filter) (int, error) {
	docs, path, err := se.loadCollection(dbName, collName)
	if err != nil {
		return 0, err
	}

	removed := 0
	// walk backwards so earlier indices stay valid while deleting
	for i := len(docs) - 1; i >= 0; i-- {
		if Matches(docs[i], filter) {
			docs = append(docs[:i], docs[i+1:]...)
			removed++
		}
	}

	if removed == 0 {
		se.debugf("No document in '%s.%s' matched %+v", dbName, collName, filter)
		return 0, nil
	}

	if err := DumpDocuments(path, docs); err != nil {
		return 0, err
	}

	log.Printf("INFO: Removed %d documents from '%s.%s'", removed, dbName, collName)
	return removed, nil
}

// UpdateDocuments applies action with payload to every document matching
// filter and returns how many were updated. Any failure aborts the whole
// batch before anything is written.
func (se *StorageEngine) UpdateDocuments(dbName, collName string, filter domain.Filter, action domain.Action, payload []byte) (int, error) {
	docs, path, err := se.loadCollection(dbName, collName)
	if err != nil {
		return 0, err
	}

	mutation, err := CompileMutation(action, payload)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i, doc := range docs {
		if !Matches(doc, filter) {
			continue
		}
		if err := mutation.Apply(doc); err != nil {
			return 0, fmt.Errorf("failed to update document %d in '%s.%s': %w", i, dbName, collName, err)
		}
		updated++
	}

	if updated == 0 {
		se.debugf("No document in '%s.%s' matched %+v", dbName, collName, filter)
		return 0, nil
	}

	if err := DumpDocuments(path, docs); err != nil {
		return 0, err
	}

	log.Printf("INFO: Updated %d documents in '%s.%s' with %s", updated, dbName, collName, action)
	return updated, nil
}
