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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		config, err := LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, DefaultDataPath, config.DataPath)
		assert.Equal(t, DefaultListenAddr, config.ListenAddr)
		assert.Equal(t, DefaultSmoothingWindow, config.SmoothingWindow)
		assert.Equal(t, DefaultTopAppliances, config.TopAppliances)
		assert.Equal(t, DefaultSelectedAppliances, config.DefaultAppliances)
		assert.InDelta(t, DefaultSampleFraction, config.SampleFraction, 1e-9)
		assert.NoError(t, config.Validate())
	})

	t.Run("yaml values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "data_path: readings.csv\nsmoothing_window: 14\ntop_appliances: 3\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "readings.csv", config.DataPath)
		assert.Equal(t, 14, config.SmoothingWindow)
		assert.Equal(t, 3, config.TopAppliances)
		// Untouched fields keep their defaults
		assert.Equal(t, DefaultListenAddr, config.ListenAddr)
	})

	t.Run("environment variables override the file", func(t *testing.T) {
		t.Setenv("WATTDASH_DATA_PATH", "/tmp/other.csv")
		t.Setenv("WATTDASH_SMOOTHING_WINDOW", "21")

		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other.csv", config.DataPath)
		assert.Equal(t, 21, config.SmoothingWindow)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		config, _ := LoadConfig("")
		return config
	}

	t.Run("non-positive smoothing window is rejected", func(t *testing.T) {
		config := valid()
		config.SmoothingWindow = 0
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smoothing_window")
	})

	t.Run("sample fraction outside (0,1] is rejected", func(t *testing.T) {
		config := valid()
		config.SampleFraction = 0
		assert.Error(t, config.Validate())

		config.SampleFraction = 1.5
		assert.Error(t, config.Validate())
	})

	t.Run("empty data path is rejected", func(t *testing.T) {
		config := valid()
		config.DataPath = ""
		assert.Error(t, config.Validate())
	})

	t.Run("multiple problems are joined", func(t *testing.T) {
		config := valid()
		config.SmoothingWindow = -1
		config.TopAppliances = -1
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smoothing_window")
		assert.Contains(t, err.Error(), "top_appliances")
	})
}
