// Package server exposes the CV document, its mutation operations, the
// AI round trips, and the checkout/export handoff over HTTP REST.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/cv-studio/internal/checkout"
	"github.com/jonathan/cv-studio/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	sess       *session.Session
	handoff    *checkout.Handoff
}

// Config holds server configuration
type Config struct {
	Port        int
	CheckoutURL string
}

// New creates a new server instance around an already-loaded session.
func New(cfg Config, sess *session.Session) *Server {
	s := &Server{
		sess:    sess,
		handoff: checkout.New(sess, cfg.CheckoutURL),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // AI and PDF round trips are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Document state and direct field mutations
	mux.HandleFunc("GET /cv", s.handleGetState)
	mux.HandleFunc("PUT /cv/personal-details", s.handleSetPersonalDetails)
	mux.HandleFunc("PUT /cv/summary", s.handleSetSummary)
	mux.HandleFunc("PUT /cv/skills-text", s.handleSetSkillsText)

	// List sections
	mux.HandleFunc("POST /cv/work-experience", s.handleAddWorkExperience)
	mux.HandleFunc("PATCH /cv/work-experience/{id}", s.handleUpdateWorkExperience)
	mux.HandleFunc("DELETE /cv/work-experience/{id}", s.handleRemoveWorkExperience)
	mux.HandleFunc("POST /cv/education", s.handleAddEducation)
	mux.HandleFunc("PATCH /cv/education/{id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /cv/education/{id}", s.handleRemoveEducation)

	// AI round trips
	mux.HandleFunc("POST /cv/enhance", s.handleEnhance)
	mux.HandleFunc("POST /cv/import", s.handleImport)
	mux.HandleFunc("POST /cv/photo/transform", s.handleTransformPhoto)

	// Consent flag
	mux.HandleFunc("GET /consent", s.handleGetConsent)
	mux.HandleFunc("POST /consent", s.handleSetConsent)

	// Checkout handoff and the gated export
	mux.HandleFunc("POST /checkout", s.handleCheckoutBegin)
	mux.HandleFunc("GET /checkout/return", s.handleCheckoutReturn)
	mux.HandleFunc("GET /export", s.handleExport)

	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
