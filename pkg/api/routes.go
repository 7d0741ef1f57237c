package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/stats", h.HandleStats).Methods("GET")

	// Database operations
	router.HandleFunc("/databases", h.HandleListDatabases).Methods("GET")
	router.HandleFunc("/databases/{db}", h.HandleCreateDatabase).Methods("POST")
	router.HandleFunc("/databases/{db}", h.HandleDropDatabase).Methods("DELETE")
	router.HandleFunc("/databases/{db}/export", h.HandleExportDatabase).Methods("GET")
	router.HandleFunc("/databases/{db}/import", h.HandleImportDatabase).Methods("POST")

	// Collection operations
	router.HandleFunc("/databases/{db}/collections", h.HandleListCollections).Methods("GET")
	router.HandleFunc("/databases/{db}/collections/{coll}", h.HandleCreateCollection).Methods("POST")
	router.HandleFunc("/databases/{db}/collections/{coll}", h.HandleDropCollection).Methods("DELETE")

	// Document operations, selected by filter query parameters
	documents := "/databases/{db}/collections/{coll}/documents"
	router.HandleFunc(documents, h.HandleInsert).Methods("POST")
	router.HandleFunc(documents, h.HandleFind).Methods("GET")
	router.HandleFunc(documents+"/stream", h.HandleStream).Methods("GET")
	router.HandleFunc(documents, h.HandleRemove).Methods("DELETE")
	router.HandleFunc(documents, h.HandleUpdate).Methods("PATCH")
}
