package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/protondb/pkg/storage"
)

// HandleListDatabases handles GET requests listing every registered database
func (h *Handler) HandleListDatabases(w http.ResponseWriter, r *http.Request) {
	names, err := h.storage.ListDatabases()
	if err != nil {
		log.Printf("ERROR: Listing databases failed: %v", err)
		WriteStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NamesResponse{Names: names, Count: len(names)})
}

// HandleCreateDatabase handles POST requests creating a database
func (h *Handler) HandleCreateDatabase(w http.ResponseWriter, r *http.Request) {
	dbName := mux.Vars(r)["db"]

	log.Printf("INFO: handleCreateDatabase called for database '%s'", dbName)

	if err := h.storage.CreateDatabase(dbName); err != nil {
		log.Printf("ERROR: Create database '%s' failed: %v", dbName, err)
		WriteStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, OperationResponse{
		Success:  true,
		Message:  "Database created",
		Database: dbName,
	})
}

// HandleDropDatabase handles DELETE requests dropping a database and its collections
func (h *Handler) HandleDropDatabase(w http.ResponseWriter, r *http.Request) {
	dbName := mux.Vars(r)["db"]

	log.Printf("INFO: handleDropDatabase called for database '%s'", dbName)

	if err := h.storage.DropDatabase(dbName); err != nil {
		log.Printf("ERROR: Drop database '%s' failed: %v", dbName, err)
		WriteStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExportDatabase handles GET requests downloading a database snapshot
func (h *Handler) HandleExportDatabase(w http.ResponseWriter, r *http.Request) {
	dbName := mux.Vars(r)["db"]

	log.Printf("INFO: handleExportDatabase called for database '%s'", dbName)

	// buffer the snapshot so a failure can still be reported with a status code
	var buf bytes.Buffer
	if err := h.storage.ExportDatabase(dbName, &buf); err != nil {
		log.Printf("ERROR: Export of database '%s' failed: %v", dbName, err)
		WriteStorageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dbName+storage.FileExtension))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ERROR: Failed to write snapshot of '%s' to response: %v", dbName, err)
	}
}

// HandleImportDatabase handles POST requests creating a database from a snapshot body
func (h *Handler) HandleImportDatabase(w http.ResponseWriter, r *http.Request) {
	dbName := mux.Vars(r)["db"]

	log.Printf("INFO: handleImportDatabase called for database '%s'", dbName)

	body := http.MaxBytesReader(w, r.Body, maxSnapshotBody)
	if err := h.storage.ImportDatabase(dbName, body); err != nil {
		log.Printf("ERROR: Import into database '%s' failed: %v", dbName, err)
		WriteStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, OperationResponse{
		Success:  true,
		Message:  "Database imported",
		Database: dbName,
	})
}
