// Package httpexport exposes tracked values over HTTP. Snapshot is an output
// handler holding the latest value of every tracked variable; NewHandler wraps
// it in a small read-only JSON API.
package httpexport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/hooksett/pkg/domain"
)

// Entry is one tracked variable as last reported to the Snapshot.
type Entry struct {
	Name      string    `json:"name"`
	Value     any       `json:"value"`
	Role      string    `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is an output handler keeping the most recent value per name.
type Snapshot struct {
	mu      sync.RWMutex
	entries map[string]Entry
	roles   *domain.Roles
	now     func() time.Time
}

// SnapshotOption configures a Snapshot.
type SnapshotOption func(*Snapshot)

// WithRoles sets the role registry used to render role names.
func WithRoles(roles *domain.Roles) SnapshotOption {
	return func(s *Snapshot) {
		if roles != nil {
			s.roles = roles
		}
	}
}

// NewSnapshot creates an empty snapshot store.
func NewSnapshot(opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		entries: make(map[string]Entry),
		roles:   domain.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records the value, replacing any earlier report for the same name.
func (s *Snapshot) Save(name string, value any, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = Entry{
		Name:      name,
		Value:     value,
		Role:      s.roles.Name(role),
		UpdatedAt: s.now().UTC(),
	}
	return nil
}

// Get returns the entry for name, if one has been reported.
func (s *Snapshot) Get(name string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	return e, ok
}

// Entries returns a copy of all reported entries.
func (s *Snapshot) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// HandlerOption configures the HTTP handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
}

// WithGatherer mounts GET /metrics serving the given Prometheus gatherer.
func WithGatherer(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) { c.gatherer = g }
}

// NewHandler builds the read-only API over snap:
//
//	GET /values        all entries
//	GET /values/{name} one entry, 404 when never reported
//	GET /healthz       liveness probe
//	GET /metrics       Prometheus exposition (only with WithGatherer)
func NewHandler(snap *Snapshot, opts ...HandlerOption) http.Handler {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	r.Get("/values", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, snap.Entries())
	})

	r.Get("/values/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		e, ok := snap.Get(name)
		if !ok {
			http.Error(w, fmt.Sprintf("no value reported for %q", name), http.StatusNotFound)
			return
		}
		writeJSON(w, e)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
