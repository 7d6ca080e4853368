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
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Dataset
	DataPath string `yaml:"data_path"`

	// Server
	ListenAddr string `yaml:"listen_addr"`

	// Pipeline settings
	SmoothingWindow   int     `yaml:"smoothing_window"`
	TopAppliances     int     `yaml:"top_appliances"`
	DefaultAppliances int     `yaml:"default_appliances"`
	SampleFraction    float64 `yaml:"sample_fraction"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		DataPath:          DefaultDataPath,
		ListenAddr:        DefaultListenAddr,
		SmoothingWindow:   DefaultSmoothingWindow,
		TopAppliances:     DefaultTopAppliances,
		DefaultAppliances: DefaultSelectedAppliances,
		SampleFraction:    DefaultSampleFraction,
		Debug:             false,
	}

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("WATTDASH_DATA_PATH"); val != "" {
		c.DataPath = val
	}
	if val := os.Getenv("WATTDASH_LISTEN_ADDR"); val != "" {
		c.ListenAddr = val
	}
	if val := os.Getenv("WATTDASH_SMOOTHING_WINDOW"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.SmoothingWindow = n
		}
	}
	if val := os.Getenv("WATTDASH_TOP_APPLIANCES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.TopAppliances = n
		}
	}
	if val := os.Getenv("WATTDASH_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.DataPath == "" {
		errors = append(errors, "data_path is required")
	}

	if c.ListenAddr == "" {
		errors = append(errors, "listen_addr is required")
	}

	// A non-positive window would make the trailing mean undefined
	if c.SmoothingWindow < 1 {
		errors = append(errors, "smoothing_window must be a positive integer")
	}

	if c.TopAppliances < 0 {
		errors = append(errors, "top_appliances must not be negative")
	}

	if c.DefaultAppliances < 0 {
		errors = append(errors, "default_appliances must not be negative")
	}

	if c.SampleFraction <= 0 || c.SampleFraction > 1 {
		errors = append(errors, "sample_fraction must be in (0, 1]")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
