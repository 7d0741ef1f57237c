package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// HandleUpdate handles PATCH requests applying ?action= (add, drop or alter)
// with the request body as action data to every matching document
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleUpdate called for '%s.%s'", dbName, collName)

	query := r.URL.Query()
	action, err := domain.ParseAction(query.Get("action"))
	if err != nil {
		log.Printf("ERROR: Invalid action: %v", err)
		WriteStorageError(w, err)
		return
	}
	filter, err := parseFilter(query)
	if err != nil {
		log.Printf("ERROR: Invalid filter: %v", err)
		WriteStorageError(w, err)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBody))
	if err != nil {
		log.Printf("ERROR: Reading body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, err := h.storage.UpdateDocuments(dbName, collName, filter, action, payload)
	if err != nil {
		log.Printf("ERROR: Update failed for '%s.%s': %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Update with %s completed for '%s.%s', updated %d", action, dbName, collName, count)
	writeJSON(w, http.StatusOK, OperationResponse{
		Success:    true,
		Message:    "Documents updated",
		Database:   dbName,
		Collection: collName,
		Count:      &count,
	})
}
