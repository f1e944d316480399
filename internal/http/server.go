// Package http exposes the chat API and the embedded frontend.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	applog "github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/middleware/security"
	"github.com/felipe-tno/moneymate/internal/services"
	"github.com/felipe-tno/moneymate/internal/session"
	appweb "github.com/felipe-tno/moneymate/web"
)

// Options configures the HTTP server.
type Options struct {
	Addr string

	// ChatRequestsPerMinute caps POST /mensagem per client IP.
	ChatRequestsPerMinute int

	// ReadyCheck reports backend readiness for /readyz. Nil means always
	// ready.
	ReadyCheck func(ctx context.Context) error
}

type Server struct {
	http.Server

	templates    *template.Template
	conversation *services.ConversationService
	sessions     *session.Store
	limiter      *rateLimiter
	readyCheck   func(ctx context.Context) error
	logger       *applog.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options, conversation *services.ConversationService, sessions *session.Store, logger *applog.Logger) *Server {
	r := chi.NewRouter()
	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		conversation: conversation,
		sessions:     sessions,
		limiter:      newRateLimiter(opts.ChatRequestsPerMinute),
		readyCheck:   opts.ReadyCheck,
		logger:       logger.WithComponent(applog.ComponentHTTP),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(applog.RequestLogger(logger))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Handle("/static/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("failed to mount embedded static FS", applog.FieldError, err)
	}

	r.With(s.rateLimit).Post("/mensagem", s.handleMensagem)
	r.Post("/definir_orcamento", s.handleDefinirOrcamento)
	r.Get("/gastos", s.handleGastos)

	return s
}

// rateLimit rejects chatty clients before the interpreter is reached.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(r.RemoteAddr) {
			s.logger.Warn("rate limit exceeded", applog.FieldClientIP, r.RemoteAddr)
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Erro: "Muitas mensagens. Aguarde um instante."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
