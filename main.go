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
	"flag"
	"fmt"
	"os"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to configuration file")
	dataPath := flag.String("data", "", "Path to the energy CSV (overrides config)")
	listenAddr := flag.String("listen", "", "Listen address (overrides config)")
	snapshotPath := flag.String("snapshot", "", "Write a static full-range dashboard to this file and exit")
	snapshot := flag.Bool("snapshot-stdout", false, "Write a static full-range dashboard to stdout and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("wattdash %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting wattdash", "version", GetVersion())

	// Load configuration
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override with command-line flags
	if *dataPath != "" {
		config.DataPath = *dataPath
	}
	if *listenAddr != "" {
		config.ListenAddr = *listenAddr
	}
	if *debug {
		config.Debug = true
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Load the dataset once; a load failure aborts the whole session
	logger.Info("Loading dataset", "path", config.DataPath)
	dataset := NewDataset(config.DataPath, logger)
	if _, err := dataset.Load(); err != nil {
		logger.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}

	dashboard := NewDashboard(dataset, config, logger)

	// Snapshot mode: render the full range once and exit
	if *snapshotPath != "" || *snapshot {
		reporter := NewReporter(dashboard, logger)
		if err := reporter.GenerateSnapshot(*snapshotPath); err != nil {
			logger.Error("Failed to generate snapshot", "error", err)
			os.Exit(1)
		}
		return
	}

	// Serve the interactive dashboard
	server := NewServer(config, dashboard, logger)
	if err := server.Start(); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
