// Copyright 2025 Bora Colakoglu
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the interactive dashboard. Each request runs one full
// synchronous recomputation of the pipeline; the only shared state is the
// memoized immutable table, so no locking is needed.
type Server struct {
	config    *Config
	dashboard *Dashboard
	html      *HTMLReporter
	logger    *Logger
}

// NewServer creates a new dashboard server
func NewServer(config *Config, dashboard *Dashboard, logger *Logger) *Server {
	return &Server{
		config:    config,
		dashboard: dashboard,
		html:      NewHTMLReporter(logger),
		logger:    logger.WithComponent("server"),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/api/dashboard", s.handleAPIDashboard)
	r.Get("/api/meta", s.handleAPIMeta)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Start runs the HTTP server until it fails
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	s.logger.Info("Dashboard listening", "addr", s.config.ListenAddr)
	return srv.ListenAndServe()
}

// handleDashboard renders the full dashboard page for the requested range
// and selection
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	query, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.dashboard.Compute(query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	meta, err := s.dashboard.Meta()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.html.RenderPage(w, meta, view)
	s.logger.LogHTTPRequest(r.Method, r.URL.Path, http.StatusOK, time.Since(started))
}

// handleAPIDashboard returns the four derived views as JSON
func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.dashboard.Compute(query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

// handleAPIMeta returns the dataset description used by the UI controls
func (s *Server) handleAPIMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.dashboard.Meta()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.dashboard.Meta(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// parseQuery maps request parameters onto one dashboard interaction. A bare
// request (no parameters at all) gets the default query; a submitted form
// with nothing selected is a legitimate empty selection.
func (s *Server) parseQuery(r *http.Request) (DashboardQuery, error) {
	params := r.URL.Query()
	if len(params) == 0 {
		return s.dashboard.DefaultQuery()
	}

	var query DashboardQuery
	var err error

	if raw := params.Get("start"); raw != "" {
		if query.StartDate, err = time.Parse("2006-01-02", raw); err != nil {
			return query, &ConfigError{Field: "start", Value: raw, Message: "expected YYYY-MM-DD"}
		}
	}
	if raw := params.Get("end"); raw != "" {
		if query.EndDate, err = time.Parse("2006-01-02", raw); err != nil {
			return query, &ConfigError{Field: "end", Value: raw, Message: "expected YYYY-MM-DD"}
		}
	}

	query.Appliances = params["appliances"]
	query.ShowUseColumn = params.Get("show_use") == "1" || params.Get("show_use") == "true"

	if raw := params.Get("window"); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil || window < 1 {
			return query, &ConfigError{Field: "window", Value: raw, Message: "expected a positive integer"}
		}
		query.SmoothingWindow = window
	}

	return query, nil
}

// writeError maps pipeline errors onto HTTP statuses: validation failures
// are the client's, everything else is ours
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		status = http.StatusBadRequest
	}

	s.logger.Error("Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
