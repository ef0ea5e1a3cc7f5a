package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ai-chat-dashboard/internal/infra/metrics"
	"ai-chat-dashboard/internal/pricing"
	"ai-chat-dashboard/internal/usecase"
)

type Server struct {
	chatUC    usecase.ChatUseCase
	usageUC   usecase.UsageUseCase
	projectUC usecase.ProjectUseCase
	profileUC usecase.ProfileUseCase
	prices    *pricing.Table
	adminKey  string
	auth      *AuthManager
	log       *zerolog.Logger
}

func NewServer(
	chatUC usecase.ChatUseCase,
	usageUC usecase.UsageUseCase,
	projectUC usecase.ProjectUseCase,
	profileUC usecase.ProfileUseCase,
	prices *pricing.Table,
	adminKey string,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		chatUC:    chatUC,
		usageUC:   usageUC,
		projectUC: projectUC,
		profileUC: profileUC,
		prices:    prices,
		adminKey:  adminKey,
		auth:      auth,
		log:       logger,
	}
}

// Routes builds the router. CORS runs first so preflights short-circuit
// before anything else touches the request.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", s.chatHandler)
		r.Get("/usage", s.usageHandler)

		r.Get("/projects", s.projectsListHandler)
		r.Post("/projects", s.projectsCreateHandler)
		r.Delete("/projects/{id}", s.projectsDeleteHandler)

		r.Get("/profile/{userID}", s.profileGetHandler)
		r.Put("/profile/{userID}/wallet", s.profileWalletHandler)

		r.Post("/admin/login", s.adminLoginHandler)
		r.With(s.authMiddleware).Get("/admin/pricing", s.adminPricingHandler)
	})
	return r
}

// recoverMiddleware is the outermost boundary: a panic on one request is
// logged with full detail and reported generically, never crashing the
// process.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Unknown error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		metrics.IncHTTPRequest(route, r.Method, sw.status)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// authMiddleware guards the admin surface with a session JWT.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
