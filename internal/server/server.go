// Package server provides the HTTP routing and MCP wiring for the Instagram MCP server.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paulovsm/instagram-mcp/internal/instagram"
)

// Config contains server configuration values such as port, inbound auth
// secret, and Instagram Graph API credentials.
type Config struct {
	Port        string
	BearerToken string
	AccessToken string
	AccountID   string
	GraphHost   string
	APIVersion  string
}

// Server contains the configured router, MCP server, and Graph API client.
type Server struct {
	cfg    Config
	router *chi.Mux
	ig     *instagram.Client
	mcp    *mcp.Server
}

// New constructs a Server with middleware, transports, and tools configured.
func New(cfg Config) *Server {
	base := cfg.GraphHost
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		ig:     instagram.New(base, cfg.APIVersion, cfg.AccountID, cfg.AccessToken, &http.Client{Timeout: 30 * time.Second}),
	}
	s.mcp = s.newMCPServer()

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/health", s.handleHealth)
	})

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
	sse := mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)

	// SSE sessions outlive any per-request timeout, so the transports
	// skip the timeout middleware.
	s.router.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Handle("/mcp", streamable)
		r.Handle("/sse", sse)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.BearerToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.BearerToken {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
