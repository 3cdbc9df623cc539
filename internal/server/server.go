// Package server implements the edge proxy in front of the Perplexity
// chat-completions API. It adds CORS restricted to one origin, validates
// the chat payload, forwards the request upstream with the vendor key,
// and maps any failure to HTTP 500 with a JSON error body.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"yfetch/internal/config"
	"yfetch/internal/logger"
)

// Server is the edge proxy HTTP server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        config.Proxy
	upstream   *http.Client
}

// New creates the proxy server from configuration.
func New(cfg config.Proxy) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		upstream: &http.Client{Timeout: cfg.WriteTimeout},
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}))

	s.router.Post("/perplexity", s.handlePerplexity)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Edge proxy listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

type proxyRequest struct {
	Model    string            `json:"model"`
	Messages []json.RawMessage `json:"messages"`
}

// handlePerplexity validates the chat payload and forwards it upstream.
// Any failure, including validation, surfaces as 500 {"error": message}.
func (s *Server) handlePerplexity(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Messages) == 0 {
		s.writeError(w, fmt.Errorf("invalid messages format"))
		return
	}

	payload, err := json.Marshal(map[string]any{
		"model":    req.Model,
		"messages": req.Messages,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.cfg.UpstreamURL, bytes.NewReader(payload))
	if err != nil {
		s.writeError(w, err)
		return
	}
	upstreamReq.Header.Set("Authorization", "Bearer "+s.cfg.UpstreamAPIKey)
	upstreamReq.Header.Set("Content-Type", "application/json")
	upstreamReq.Header.Set("Accept", "application/json")

	resp, err := s.upstream.Do(upstreamReq)
	if err != nil {
		s.writeError(w, fmt.Errorf("upstream request failed: %w", err))
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.writeError(w, fmt.Errorf("failed to read upstream response: %w", err))
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.writeError(w, fmt.Errorf("Perplexity API error: %d - %s", resp.StatusCode, string(body)))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	logger.Error("Edge proxy error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
