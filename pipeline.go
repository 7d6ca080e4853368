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
	"math"
	"math/rand"
	"sort"
	"time"
)

// FilterRange restricts a table to readings whose calendar date falls inside
// [start, end], inclusive on both ends. Time of day is discarded for the
// comparison. An inverted range yields an empty table, not an error.
func FilterRange(t *Table, start, end time.Time) *Table {
	filtered := &Table{Columns: t.Columns}
	if start.After(end) {
		return filtered
	}
	for _, r := range t.Readings {
		date := r.Date()
		if date.Before(start) || date.After(end) {
			continue
		}
		filtered.Readings = append(filtered.Readings, r)
	}
	return filtered
}

// AggregateByPeriod groups readings by calendar day or month and sums every
// named column per group. Groups are emitted only for periods present in the
// input; output rows ascend by period. An empty table produces an empty
// aggregate.
func AggregateByPeriod(t *Table, columns []string, granularity Granularity) *Aggregate {
	agg := &Aggregate{
		Granularity: granularity,
		Columns:     columns,
	}

	byPeriod := make(map[time.Time]map[string]float64)
	for _, r := range t.Readings {
		period := granularity.truncate(r.Time)
		sums, ok := byPeriod[period]
		if !ok {
			sums = make(map[string]float64, len(columns))
			byPeriod[period] = sums
		}
		for _, col := range columns {
			sums[col] += r.Energy[col]
		}
	}

	for period, sums := range byPeriod {
		agg.Rows = append(agg.Rows, AggregateRow{Period: period, Sums: sums})
	}
	sort.Slice(agg.Rows, func(i, j int) bool {
		return agg.Rows[i].Period.Before(agg.Rows[j].Period)
	})

	return agg
}

// Smooth replaces each column of an aggregate with its trailing moving
// average. Index i holds the mean of inputs [i-window+1, i]; the first
// window-1 values are NaN because insufficient history exists. The input
// aggregate is never mutated: smoothing is a pure reduction over the ordered
// rows, so recomputation on every interaction cannot leak state.
func Smooth(agg *Aggregate, columns []string, window int) (*SmoothedSeries, error) {
	if window < 1 {
		return nil, &ConfigError{
			Field:   "smoothing_window",
			Message: "window must be a positive integer",
		}
	}

	series := &SmoothedSeries{
		Window:  window,
		Periods: make([]time.Time, len(agg.Rows)),
		Columns: make(map[string][]float64, len(columns)),
	}
	for i, row := range agg.Rows {
		series.Periods[i] = row.Period
	}

	for _, col := range columns {
		input := agg.Column(col)
		output := make([]float64, len(input))
		for i := range input {
			if i < window-1 {
				output[i] = math.NaN()
				continue
			}
			output[i] = calculateMean(input[i-window+1 : i+1])
		}
		series.Columns[col] = output
	}

	return series, nil
}

// TopAppliances ranks candidate columns by their total over every period of
// the aggregate and keeps the k largest. Order is descending by total and
// stable on ties, so equal totals keep their first-seen column order. A
// non-positive k or an empty candidate list yields an empty ranking.
func TopAppliances(agg *Aggregate, candidates []string, k int) []ApplianceTotal {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	totals := make([]ApplianceTotal, 0, len(candidates))
	for _, col := range candidates {
		total := 0.0
		for _, row := range agg.Rows {
			total += row.Sums[col]
		}
		totals = append(totals, ApplianceTotal{Name: col, Total: total})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	if len(totals) > k {
		totals = totals[:k]
	}
	return totals
}

// Summarize computes the three scalar totals of the solar view over an
// already-filtered table. Net consumption is house minus solar; an empty
// table yields all zeros.
func Summarize(t *Table) SummaryMetrics {
	var m SummaryMetrics
	for _, r := range t.Readings {
		m.SolarTotal += r.Energy[SolarColumn]
		m.HouseTotal += r.Energy[HouseOverallColumn]
	}
	m.NetTotal = m.HouseTotal - m.SolarTotal
	return m
}

// SampleCorrelation downsamples the filtered table to (temperature, use)
// pairs for the weather scatter. The sample is pseudo-random with a fixed
// seed so every recomputation of the same range draws the same points.
func SampleCorrelation(t *Table, fraction float64) []CorrelationPoint {
	if fraction <= 0 || t.Len() == 0 {
		return nil
	}
	if fraction > 1 {
		fraction = 1
	}

	rng := rand.New(rand.NewSource(correlationSampleSeed))
	points := make([]CorrelationPoint, 0, int(float64(t.Len())*fraction)+1)
	for _, r := range t.Readings {
		if rng.Float64() >= fraction {
			continue
		}
		points = append(points, CorrelationPoint{
			Temperature: r.Temperature,
			Use:         r.Energy[UseColumn],
		})
	}
	return points
}

// calculateMean calculates the mean of a slice of float64 values
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
