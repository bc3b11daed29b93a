package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain"
)

// Config captures the dependencies required to construct the server.
type Config struct {
	Catalog *catalog.Catalog
	Rewards domain.RewardsService
	Metrics http.Handler // optional; /metrics is not mounted when nil
	Logger  *slog.Logger
}

// Server exposes the rewards service as an HTTP router.
type Server struct {
	catalog *catalog.Catalog
	rewards domain.RewardsService
	metrics http.Handler
	log     *slog.Logger

	router http.Handler
}

// New constructs the router.
func New(cfg Config) *Server {
	s := &Server{
		catalog: cfg.Catalog,
		rewards: cfg.Rewards,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.router = s.buildRouter()
	return s
}

// Handler exposes the configured HTTP router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/programs", func(pr chi.Router) {
		pr.Get("/", s.listPrograms)
		pr.Route("/{id}", func(one chi.Router) {
			one.Get("/", s.getProgram)
			one.Get("/history", s.getHistory)
			one.Get("/preview", s.getPreview)
			one.Get("/plan", s.getPlan)
			one.Post("/purchases", s.postPurchase)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("http server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
