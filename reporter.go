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
	"io"
	"os"
)

// Reporter writes a one-shot static dashboard snapshot for the full data
// range, for sharing or archiving without running the server
type Reporter struct {
	dashboard *Dashboard
	html      *HTMLReporter
	logger    *Logger
}

// NewReporter creates a new snapshot generator
func NewReporter(dashboard *Dashboard, logger *Logger) *Reporter {
	return &Reporter{
		dashboard: dashboard,
		html:      NewHTMLReporter(logger),
		logger:    logger,
	}
}

// GenerateSnapshot computes the default (full-range) view and writes the
// rendered page to outputPath, or stdout when the path is empty
func (r *Reporter) GenerateSnapshot(outputPath string) error {
	r.logger.Info("Generating dashboard snapshot")

	query, err := r.dashboard.DefaultQuery()
	if err != nil {
		return err
	}

	view, err := r.dashboard.Compute(query)
	if err != nil {
		return err
	}

	meta, err := r.dashboard.Meta()
	if err != nil {
		return err
	}

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create snapshot file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	r.html.RenderPage(writer, meta, view)

	if outputPath != "" {
		r.logger.Info("Snapshot saved", "path", outputPath)
	}

	return nil
}
