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

const (
	// TimeColumn is the name of the timestamp column in the input CSV
	TimeColumn = "time"

	// TemperatureColumn is the name of the outdoor temperature column
	TemperatureColumn = "temperature"

	// EnergyUnitSuffix marks a column as an energy channel
	EnergyUnitSuffix = "[kW]"

	// UseColumn is the aggregate total-use channel
	UseColumn = "use [kW]"

	// GenColumn is the aggregate total-generation channel
	GenColumn = "gen [kW]"

	// HouseOverallColumn is the whole-house total channel
	HouseOverallColumn = "House overall [kW]"

	// SolarColumn is the solar generation channel used for summary metrics
	SolarColumn = "Solar [kW]"
)

const (
	// DefaultSmoothingWindow is the trailing moving-average window in days
	DefaultSmoothingWindow = 7

	// DefaultTopAppliances is how many appliances the monthly ranking keeps
	DefaultTopAppliances = 5

	// DefaultSelectedAppliances is how many appliance columns are
	// pre-selected when the user has not picked any
	DefaultSelectedAppliances = 5

	// DefaultSampleFraction is the share of filtered rows kept for the
	// weather correlation scatter
	DefaultSampleFraction = 0.05

	// correlationSampleSeed keeps the scatter downsample deterministic
	// across recomputations
	correlationSampleSeed = 42
)

const (
	// DefaultListenAddr is where the dashboard server binds
	DefaultListenAddr = ":8501"

	// DefaultDataPath is the expected location of the cleaned dataset
	DefaultDataPath = "cleaned_energy_data.csv"
)
