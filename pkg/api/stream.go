package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleStream handles GET requests streaming every matching document as one
// chunked JSON array. Pagination parameters are ignored.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleStream called for '%s.%s'", dbName, collName)

	query := r.URL.Query()
	for _, key := range []string{"limit", "offset"} {
		if query.Has(key) {
			log.Printf("WARN: Pagination parameter '%s' ignored in streaming endpoint", key)
		}
	}

	filter, err := parseFilter(query)
	if err != nil {
		log.Printf("ERROR: Invalid filter: %v", err)
		WriteStorageError(w, err)
		return
	}

	docChan, err := h.storage.StreamDocuments(r.Context(), dbName, collName, filter)
	if err != nil {
		log.Printf("ERROR: Stream of '%s.%s' failed: %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	// Set headers for streaming
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	w.Write([]byte("[\n"))

	first := true
	docCount := 0
	for doc := range docChan {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			log.Printf("ERROR: Failed to marshal document: %v", err)
			continue
		}

		if !first {
			w.Write([]byte(",\n"))
		}
		first = false

		if _, err := w.Write(docJSON); err != nil {
			log.Printf("ERROR: Failed to write to response: %v", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		docCount++
	}

	w.Write([]byte("\n]"))

	log.Printf("INFO: Streamed %d documents from '%s.%s'", docCount, dbName, collName)
}
