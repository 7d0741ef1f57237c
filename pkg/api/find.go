package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleFind handles GET requests querying a collection. Matches are returned
// in collection order, one page at a time.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dbName, collName := vars["db"], vars["coll"]

	log.Printf("INFO: handleFind called for '%s.%s'", dbName, collName)

	query := r.URL.Query()
	filter, err := parseFilter(query)
	if err != nil {
		log.Printf("ERROR: Invalid filter: %v", err)
		WriteStorageError(w, err)
		return
	}
	options, err := parsePagination(query)
	if err != nil {
		log.Printf("ERROR: Invalid pagination: %v", err)
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := h.storage.QueryDocuments(dbName, collName, filter)
	if err != nil {
		log.Printf("ERROR: Query on '%s.%s' failed: %v", dbName, collName, err)
		WriteStorageError(w, err)
		return
	}

	result := options.Paginate(docs)
	if filter.IsUnset() {
		log.Printf("INFO: Found %d documents in '%s.%s' (no filter)", result.Total, dbName, collName)
	} else {
		log.Printf("INFO: Found %d documents in '%s.%s' with filter %s %s %s", result.Total, dbName, collName, filter.Key, filter.Condition, filter.Value)
	}

	writeJSON(w, http.StatusOK, result)
}
