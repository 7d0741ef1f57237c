package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/protondb/pkg/config"
)

func newTestServer(t *testing.T, maxConnections int) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Root = t.TempDir()
	cfg.Server.MaxConnections = maxConnections
	return NewServer(cfg)
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t, 10)

	assert.Equal(t, http.StatusOK, do(s, "GET", "/health", "").Code)
	assert.Equal(t, http.StatusCreated, do(s, "POST", "/databases/shop", "").Code)
	assert.Equal(t, http.StatusCreated, do(s, "POST", "/databases/shop/collections/users/documents", `{"a":1}`).Code)

	w := do(s, "GET", "/databases/shop/collections/users/documents", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	dir, err := s.Storage().Layout().DatabaseDir("shop")
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestServer_NotFound(t *testing.T) {
	s := newTestServer(t, 10)

	w := do(s, "GET", "/collections/users/find", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No route")
}

func TestServer_ConnectionLimit(t *testing.T) {
	s := newTestServer(t, 1)

	// occupy the only slot
	s.slots <- struct{}{}
	w := do(s, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	<-s.slots
	w = do(s, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_WritesAreSerialized(t *testing.T) {
	s := newTestServer(t, 100)
	require.Equal(t, http.StatusCreated, do(s, "POST", "/databases/shop", "").Code)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			do(s, "POST", "/databases/shop/collections/users/documents", `{"n":1}`)
		}()
	}
	wg.Wait()

	w := do(s, "GET", "/databases/shop/collections/users/documents", "")
	assert.Contains(t, w.Body.String(), `"total":20`)
}

func TestServer_WriteWaitsForReaders(t *testing.T) {
	s := newTestServer(t, 10)

	s.mu.RLock()
	done := make(chan int)
	go func() {
		done <- do(s, "POST", "/databases/shop", "").Code
	}()

	select {
	case <-done:
		t.Fatal("write completed while a reader held the lock")
	case <-time.After(50 * time.Millisecond):
	}

	s.mu.RUnlock()
	assert.Equal(t, http.StatusCreated, <-done)
}
