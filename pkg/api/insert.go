package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleInsert handles POST requests inserting one document or an array of
// documents. The collection is created when it does not exist.
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleInsert called for '%s.%s'", dbName, collName)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBody))
	if err != nil {
		log.Printf("ERROR: Reading body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, err := h.storage.InsertDocuments(dbName, collName, payload)
	if err != nil {
		log.Printf("ERROR: Insert failed for '%s.%s': %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Insert successful for '%s.%s', %d documents", dbName, collName, count)
	writeJSON(w, http.StatusCreated, OperationResponse{
		Success:    true,
		Message:    "Documents inserted",
		Database:   dbName,
		Collection: collName,
		Count:      &count,
	})
}
