package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleRemove handles DELETE requests removing every matching document
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleRemove called for '%s.%s'", dbName, collName)

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		log.Printf("ERROR: Invalid filter: %v", err)
		WriteStorageError(w, err)
		return
	}

	count, err := h.storage.RemoveDocuments(dbName, collName, filter)
	if err != nil {
		log.Printf("ERROR: Remove failed for '%s.%s': %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, OperationResponse{
		Success:    true,
		Message:    "Documents removed",
		Database:   dbName,
		Collection: collName,
		Count:      &count,
	})
}
