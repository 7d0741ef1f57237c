package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/protondb/pkg/domain"
)

func newMockRouter(mock *MockStorageEngine) *mux.Router {
	router := mux.NewRouter()
	NewHandler(mock).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_HandleHealth(t *testing.T) {
	w := serve(newMockRouter(NewMockStorageEngine(nil)), "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrAlreadyExists, http.StatusConflict},
		{domain.ErrInvalidName, http.StatusBadRequest},
		{domain.ErrNameTooLong, http.StatusBadRequest},
		{domain.ErrMalformedPayload, http.StatusBadRequest},
		{domain.ErrInvalidCondition, http.StatusBadRequest},
		{domain.ErrInvalidAction, http.StatusBadRequest},
		{domain.ErrParse, http.StatusInternalServerError},
		{domain.ErrFormat, http.StatusInternalServerError},
		{domain.ErrIO, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(fmt.Errorf("%w: wrapped", tt.err)))
		})
	}
}

func TestHandler_ErrorResponses(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		method       string
		target       string
		expectedCode int
		expectedKind string
	}{
		{"create database conflict", domain.ErrAlreadyExists, "POST", "/databases/shop", http.StatusConflict, "AlreadyExists"},
		{"drop missing database", domain.ErrNotFound, "DELETE", "/databases/shop", http.StatusNotFound, "NotFound"},
		{"collection name too long", domain.ErrNameTooLong, "POST", "/databases/shop/collections/x", http.StatusBadRequest, "NameTooLong"},
		{"malformed insert", domain.ErrMalformedPayload, "POST", "/databases/shop/collections/users/documents", http.StatusBadRequest, "MalformedPayload"},
		{"corrupt collection", domain.ErrParse, "GET", "/databases/shop/collections/users/documents", http.StatusInternalServerError, "ParseError"},
		{"export io", domain.ErrIO, "GET", "/databases/shop/export", http.StatusInternalServerError, "IOError"},
		{"import bad snapshot", domain.ErrFormat, "POST", "/databases/shop/import", http.StatusInternalServerError, "FormatError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockStorageEngine(fmt.Errorf("%w: detail", tt.err))
			w := serve(newMockRouter(mock), tt.method, tt.target, "{}")

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedCode, response.Code)
			assert.Equal(t, tt.expectedKind, response.Kind)
			assert.Contains(t, response.Message, "detail")
		})
	}
}

func TestHandler_FilterParameters(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected domain.Filter
	}{
		{"no filter", "", domain.MatchAll()},
		{"triple", "?key=age&cond=greaterThan&value=30", domain.Filter{Key: "age", Value: "30", Condition: domain.ConditionGreaterThan}},
		{"short condition", "?key=name&cond=eq&value=Alice", domain.Filter{Key: "name", Value: "Alice", Condition: domain.ConditionEqual}},
		{"all", "?cond=all", domain.MatchAll()},
		{"missing value", "?key=age&cond=greaterThan", domain.MatchAll()},
		{"empty value", "?key=age&cond=gt&value=", domain.MatchAll()},
		{"where", "?where=age%3E%3D30", domain.Filter{Key: "age", Value: "30", Condition: domain.ConditionGreaterThanEqual}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockStorageEngine(nil)
			w := serve(newMockRouter(mock), "GET", "/databases/shop/collections/users/documents"+tt.query, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, mock.LastFilter())
		})
	}
}

func TestHandler_InvalidParameters(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		query        string
		expectedKind string
	}{
		{"unknown condition", "GET", "?key=age&cond=between&value=1", "InvalidCondition"},
		{"key without condition", "DELETE", "?key=age&value=1", "InvalidCondition"},
		{"condition without key", "GET", "?cond=gt&value=1", "InvalidCondition"},
		{"bad where", "GET", "?where=age", "InvalidCondition"},
		{"missing action", "PATCH", "", "InvalidAction"},
		{"unknown action", "PATCH", "?action=rename", "InvalidAction"},
		{"bad limit", "GET", "?limit=abc", ""},
		{"limit over max", "GET", "?limit=5000", ""},
		{"negative offset", "GET", "?offset=-1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockStorageEngine(nil)
			w := serve(newMockRouter(mock), tt.method, "/databases/shop/collections/users/documents"+tt.query, "{}")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedKind, response.Kind)
			assert.Empty(t, mock.Calls(), "storage must not be called")
		})
	}
}

func TestHandler_HandleUpdate_PassesActionAndPayload(t *testing.T) {
	mock := NewMockStorageEngine(nil)
	w := serve(newMockRouter(mock), "PATCH",
		"/databases/shop/collections/users/documents?action=alter&key=name&cond=equal&value=Bob",
		`{"age":21}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"UpdateDocuments"}, mock.Calls())
	assert.Equal(t, []domain.Action{domain.ActionAlter}, mock.actions)
	assert.Equal(t, `{"age":21}`, string(mock.payload))
	assert.Equal(t, domain.Filter{Key: "name", Value: "Bob", Condition: domain.ConditionEqual}, mock.LastFilter())

	var response OperationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Count)
	assert.Equal(t, 0, *response.Count)
}
