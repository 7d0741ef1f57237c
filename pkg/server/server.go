package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/protondb/pkg/api"
	"github.com/adfharrison1/protondb/pkg/config"
	"github.com/adfharrison1/protondb/pkg/storage"
)

// Server holds references to storage, router, etc.
type Server struct {
	router   *mux.Router
	dbEngine *storage.StorageEngine
	mu       sync.RWMutex
	slots    chan struct{}
}

// NewServer creates a new instance of Server from cfg.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		dbEngine: storage.NewStorageEngine(cfg.StorageOptions()...),
		slots:    make(chan struct{}, cfg.Server.MaxConnections),
	}

	handler := api.NewHandler(s.dbEngine)
	handler.RegisterRoutes(s.router)

	s.router.Use(requestLoggerMiddleware)
	s.router.Use(s.connectionLimitMiddleware)
	s.router.Use(s.serializeMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "No route for "+r.Method+" "+r.URL.Path)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// connectionLimitMiddleware rejects requests once MaxConnections are in flight.
func (s *Server) connectionLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case s.slots <- struct{}{}:
			defer func() { <-s.slots }()
			next.ServeHTTP(w, r)
		default:
			log.Printf("WARN: Connection limit of %d reached, rejecting %s %s", cap(s.slots), r.Method, r.URL.Path)
			api.WriteJSONError(w, http.StatusServiceUnavailable, "Too many concurrent requests")
		}
	})
}

// serializeMiddleware lets reads run together and gives every write exclusive
// access. The storage engine itself does no locking.
func (s *Server) serializeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			s.mu.RLock()
			defer s.mu.RUnlock()
		} else {
			s.mu.Lock()
			defer s.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

// Storage exposes the storage engine.
func (s *Server) Storage() *storage.StorageEngine {
	return s.dbEngine
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
