package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleListCollections handles GET requests listing a database's collections
func (h *Handler) HandleListCollections(w http.ResponseWriter, r *http.Request) {
	dbName := mux.Vars(r)["db"]

	names, err := h.storage.ListCollections(dbName)
	if err != nil {
		log.Printf("ERROR: Listing collections of '%s' failed: %v", dbName, err)
		WriteStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NamesResponse{Database: dbName, Names: names, Count: len(names)})
}

// HandleCreateCollection handles POST requests creating an empty collection
func (h *Handler) HandleCreateCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleCreateCollection called for '%s.%s'", dbName, collName)

	if err := h.storage.CreateCollection(dbName, collName); err != nil {
		log.Printf("ERROR: Create collection '%s.%s' failed: %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, OperationResponse{
		Success:    true,
		Message:    "Collection created",
		Database:   dbName,
		Collection: collName,
	})
}

// HandleDropCollection handles DELETE requests dropping a collection
func (h *Handler) HandleDropCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleDropCollection called for '%s.%s'", dbName, collName)

	if err := h.storage.DropCollection(dbName, collName); err != nil {
		log.Printf("ERROR: Drop collection '%s.%s' failed: %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
