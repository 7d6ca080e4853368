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
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with domain-specific methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text-formatted logger
func NewLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// NewJSONLogger creates a JSON-formatted logger
func NewJSONLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// LogDatasetLoaded logs a completed dataset load
func (l *Logger) LogDatasetLoaded(path string, rows int, minDate, maxDate time.Time) {
	l.Info("Dataset loaded",
		"path", path,
		"rows", rows,
		"min_date", minDate.Format("2006-01-02"),
		"max_date", maxDate.Format("2006-01-02"),
	)
}

// LogQuery logs one dashboard recomputation request
func (l *Logger) LogQuery(query DashboardQuery, rows int) {
	l.Debug("Dashboard query",
		"start", query.StartDate.Format("2006-01-02"),
		"end", query.EndDate.Format("2006-01-02"),
		"appliances", len(query.Appliances),
		"show_use", query.ShowUseColumn,
		"filtered_rows", rows,
	)
}

// LogPipelineStage logs pipeline stage completion
func (l *Logger) LogPipelineStage(stage string) {
	l.Debug("Pipeline stage completed",
		"stage", stage,
	)
}

// LogChartRendered logs a rendered chart
func (l *Logger) LogChartRendered(chart string, series int) {
	l.Debug("Chart rendered",
		"chart", chart,
		"series", series,
	)
}

// LogHTTPRequest logs a served dashboard request
func (l *Logger) LogHTTPRequest(method, path string, status int, duration time.Duration) {
	l.Info("Request served",
		"method", method,
		"path", path,
		"status", status,
		"duration", duration.Round(time.Millisecond),
	)
}

// UserMessage outputs a message directly to stdout (bypassing structured logging)
func (l *Logger) UserMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
