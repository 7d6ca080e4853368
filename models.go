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
	"math"
	"time"
)

// Reading is one row of the dataset: a timestamp, one value per energy
// channel and the outdoor temperature at that moment.
type Reading struct {
	Time        time.Time          `json:"time"`
	Energy      map[string]float64 `json:"energy"`
	Temperature float64            `json:"temperature"`
}

// Date returns the calendar date of the reading with the time of day
// discarded.
func (r Reading) Date() time.Time {
	return time.Date(r.Time.Year(), r.Time.Month(), r.Time.Day(), 0, 0, 0, 0, r.Time.Location())
}

// Table is an ordered, immutable sequence of readings. Downstream stages
// never mutate a table in place; they produce new derived views.
type Table struct {
	Columns  ColumnSet `json:"columns"`
	Readings []Reading `json:"readings"`
}

// Len returns the number of readings in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Readings)
}

// ColumnSet holds the classified column names of a table. ApplianceColumns
// is always a subset of EnergyColumns and never contains the three aggregate
// channels.
type ColumnSet struct {
	EnergyColumns    []string `json:"energyColumns"`
	ApplianceColumns []string `json:"applianceColumns"`
}

// Granularity selects the grouping period for aggregation.
type Granularity string

const (
	// GranularityDay groups readings by calendar date
	GranularityDay Granularity = "day"

	// GranularityMonth groups readings by calendar month
	GranularityMonth Granularity = "month"
)

// truncate maps a timestamp to the start of its grouping period.
func (g Granularity) truncate(t time.Time) time.Time {
	if g == GranularityMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Label formats a period key for axis labels and JSON output.
func (g Granularity) Label(t time.Time) string {
	if g == GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// AggregateRow is the per-period sum of every requested energy column.
type AggregateRow struct {
	Period time.Time          `json:"period"`
	Sums   map[string]float64 `json:"sums"`
}

// Aggregate is a grouped-and-summed view of a table, one row per distinct
// period present in the input, ascending by period.
type Aggregate struct {
	Granularity Granularity    `json:"granularity"`
	Columns     []string       `json:"columns"`
	Rows        []AggregateRow `json:"rows"`
}

// Column extracts one column of the aggregate as an ordered value slice.
func (a *Aggregate) Column(name string) []float64 {
	values := make([]float64, len(a.Rows))
	for i, row := range a.Rows {
		values[i] = row.Sums[name]
	}
	return values
}

// SmoothedSeries is a daily aggregate with every column replaced by its
// trailing-window mean. The first window-1 values of each column are NaN
// because insufficient history exists; they serialize as JSON null.
type SmoothedSeries struct {
	Window  int
	Periods []time.Time
	Columns map[string][]float64
}

// MarshalJSON renders NaN entries as null so missing leading values survive
// the trip through encoding/json.
func (s *SmoothedSeries) MarshalJSON() ([]byte, error) {
	type column []*float64
	out := struct {
		Window  int               `json:"window"`
		Periods []string          `json:"periods"`
		Columns map[string]column `json:"columns"`
	}{
		Window:  s.Window,
		Periods: make([]string, len(s.Periods)),
		Columns: make(map[string]column, len(s.Columns)),
	}
	for i, p := range s.Periods {
		out.Periods[i] = p.Format("2006-01-02")
	}
	for name, values := range s.Columns {
		col := make(column, len(values))
		for i, v := range values {
			if !math.IsNaN(v) {
				val := v
				col[i] = &val
			}
		}
		out.Columns[name] = col
	}
	return json.Marshal(out)
}

// ApplianceTotal pairs an appliance column with its total consumption over
// the ranked range.
type ApplianceTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// SummaryMetrics holds the three scalar totals of the solar/net-energy view.
type SummaryMetrics struct {
	SolarTotal float64 `json:"solarTotal"`
	HouseTotal float64 `json:"houseTotal"`
	NetTotal   float64 `json:"netTotal"`
}

// CorrelationPoint is one sampled (temperature, use) pair for the weather
// correlation scatter.
type CorrelationPoint struct {
	Temperature float64 `json:"temperature"`
	Use         float64 `json:"use"`
}

// DashboardQuery is the full set of user-driven inputs for one dashboard
// recomputation.
type DashboardQuery struct {
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Appliances      []string  `json:"appliances"`
	ShowUseColumn   bool      `json:"showUseColumn"`
	SmoothingWindow int       `json:"smoothingWindow"`
}

// DashboardView is everything one interaction produces: the four derived
// views plus rendered charts for the presentation layer.
type DashboardView struct {
	Query       DashboardQuery     `json:"query"`
	Rows        int                `json:"rows"`
	Trend       *SmoothedSeries    `json:"trend"`
	Correlation []CorrelationPoint `json:"correlation"`
	Summary     SummaryMetrics     `json:"summary"`
	Monthly     *Aggregate         `json:"monthly"`
	TopK        []ApplianceTotal   `json:"topAppliances"`

	// Charts are base64-encoded PNG images; empty when there was nothing
	// to draw (empty selection or empty date window).
	TrendChart       string `json:"trendChart,omitempty"`
	CorrelationChart string `json:"correlationChart,omitempty"`
	MonthlyChart     string `json:"monthlyChart,omitempty"`
}

// DatasetMeta describes the loaded dataset for the UI controls.
type DatasetMeta struct {
	Rows             int      `json:"rows"`
	MinDate          string   `json:"minDate"`
	MaxDate          string   `json:"maxDate"`
	EnergyColumns    []string `json:"energyColumns"`
	ApplianceColumns []string `json:"applianceColumns"`
}
