package api

import (
	"encoding/json"
	"net/http"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// maxDocumentBody bounds request bodies carrying documents or action data
const maxDocumentBody = 32 << 20

// maxSnapshotBody bounds uploaded snapshots
const maxSnapshotBody = 1 << 30

// Handler provides HTTP handlers for the database API
type Handler struct {
	storage domain.StorageEngine
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(storage domain.StorageEngine) *Handler {
	return &Handler{
		storage: storage,
	}
}

// OperationResponse reports the outcome of a namespace or document operation
type OperationResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Database   string `json:"database"`
	Collection string `json:"collection,omitempty"`
	Count      *int   `json:"count,omitempty"`
}

// NamesResponse lists databases or collections in registry order
type NamesResponse struct {
	Database string   `json:"database,omitempty"`
	Names    []string `json:"names"`
	Count    int      `json:"count"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
