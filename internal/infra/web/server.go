package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"learner-practice-portal/internal/config"
	"learner-practice-portal/internal/infra/guard"
	"learner-practice-portal/internal/infra/logging"
	"learner-practice-portal/internal/usecase"
)

// Server is the HTTP surface the portal UI calls before and after every
// metered action. Entitlement endpoints never surface remote failures:
// they answer allow/deny with 200 even while the backend is down.
type Server struct {
	ent     usecase.EntitlementResolver
	usage   usecase.UsageStore
	catalog *usecase.PlanCatalog
	state   *guard.OfflineState
	auth    *AuthManager

	adminKey string
	log      *zerolog.Logger
	srv      *http.Server
}

func NewServer(
	ent usecase.EntitlementResolver,
	usage usecase.UsageStore,
	catalog *usecase.PlanCatalog,
	state *guard.OfflineState,
	auth *AuthManager,
	cfg config.WebConfig,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		ent:      ent,
		usage:    usage,
		catalog:  catalog,
		state:    state,
		auth:     auth,
		adminKey: cfg.AdminKey,
		log:      logger,
	}
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestTrace)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", s.handlePlans)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Post("/entitlement/{action}/check", s.handleCheck)
			r.Post("/usage/{action}", s.handleRecord)
			r.Get("/usage", s.handleGetUsage)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.adminAuth)
			r.Post("/admin/usage/{userID}/reset", s.handleReset)
		})
	})

	return r
}

// requestTrace assigns each request a trace id, echoes it back in the
// X-Trace-ID header, and logs request completion with the context
// fields (trace_id, and user_id once auth has run).
func (s *Server) requestTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()
		ctx := logging.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logging.With(ctx, s.log).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

// adminAuth protects testing/admin endpoints with a static bearer key.
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminKey == "" {
			s.log.Error().Msg("admin key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		hdr := r.Header.Get("Authorization")
		if hdr == "" || !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if strings.TrimSpace(hdr[7:]) != s.adminKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
