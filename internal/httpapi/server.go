package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/netmon/internal/repo"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the most recent probe sample over HTTP.
type Server struct {
	Logger *zap.Logger
	Latest repo.LatestStore
}

func NewServer(l *zap.Logger, latest repo.LatestStore) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{Logger: l, Latest: latest}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/rtt/latest", s.handleLatest)

	return r
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	sample, err := s.Latest.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("latest_error", zap.Error(err))
		http.Error(w, "latest error", http.StatusInternalServerError)
		return
	}
	if sample == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sample)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 2 * time.Second,
	}

	s.Logger.Info("status_listen", zap.String("addr", ln.Addr().String()))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		<-errc
		s.Logger.Info("status_stopped")
		return err
	}
}
