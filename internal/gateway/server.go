// Package gateway serves MCP over HTTP. Each inbound request gets its own
// server and dispatcher instance, so no session or credential state is
// shared between requests.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wyre-technology/itglue-mcp/internal/config"
	"github.com/wyre-technology/itglue-mcp/internal/itglue"
	itgluemcp "github.com/wyre-technology/itglue-mcp/internal/mcp"
	"github.com/wyre-technology/itglue-mcp/internal/tools"
)

// Server is the HTTP transport for the MCP tool server.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
}

// NewServer builds the gateway around the given configuration.
func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}

	mcpHandler := mcpsdk.NewStreamableHTTPHandler(func(req *http.Request) *mcpsdk.Server {
		return itgluemcp.NewServer(tools.NewDispatcher(s.credentials(req)))
	}, &mcpsdk.StreamableHTTPOptions{Stateless: true})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodPost, "/mcp", s.requireCredentials(mcpHandler))
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: r,
	}

	return s
}

// Handler exposes the gateway's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("itglue-mcp gateway listening", "addr", ln.Addr().String(), "auth_mode", s.cfg.AuthMode)
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// credentials resolves the API credentials for one request: from its headers
// in gateway mode, from the ambient environment otherwise. The value is
// threaded into the request's dispatcher and nowhere else.
func (s *Server) credentials(r *http.Request) itglue.Credentials {
	if s.cfg.AuthMode == config.AuthModeGateway {
		return itglue.CredentialsFromHeader(r.Header)
	}
	return itglue.CredentialsFromEnv()
}

// requireCredentials rejects gateway-mode requests with no API key header
// before any tool logic runs.
func (s *Server) requireCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AuthMode == config.AuthModeGateway {
			if creds := itglue.CredentialsFromHeader(r.Header); creds.APIKey == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"error":   "Unauthorized",
					"message": "missing IT Glue API key: set the " + itglue.HeaderAPIKey + " header",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"transport": config.TransportHTTP,
		"authMode":  s.cfg.AuthMode,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":     "not found",
		"path":      r.URL.Path,
		"endpoints": []string{"POST /mcp", "GET /health"},
	})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/mcp" {
		// MCP clients speak JSON-RPC; answer in kind.
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"jsonrpc": "2.0",
			"id":      nil,
			"error": map[string]any{
				"code":    -32600,
				"message": "Method not allowed: MCP requests must use POST",
			},
		})
		return
	}
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// requestLogger logs one line per request with a generated request ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("http request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
