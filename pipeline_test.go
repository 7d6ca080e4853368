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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyTable builds a table with one reading per day starting at base, each
// carrying the same per-channel values.
func dailyTable(base time.Time, days int, values map[string]float64) *Table {
	t := &Table{
		Columns: ColumnSet{
			EnergyColumns:    []string{UseColumn, GenColumn, HouseOverallColumn, SolarColumn, "Fridge [kW]"},
			ApplianceColumns: []string{SolarColumn, "Fridge [kW]"},
		},
	}
	for i := 0; i < days; i++ {
		energy := make(map[string]float64, len(values))
		for k, v := range values {
			energy[k] = v
		}
		t.Readings = append(t.Readings, Reading{
			Time:   base.AddDate(0, 0, i).Add(13 * time.Hour),
			Energy: energy,
		})
	}
	return t
}

func TestFilterRange(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	table := dailyTable(base, 10, map[string]float64{UseColumn: 1})

	t.Run("inclusive on both ends", func(t *testing.T) {
		got := FilterRange(table, base.AddDate(0, 0, 2), base.AddDate(0, 0, 5))
		assert.Equal(t, 4, got.Len())
	})

	t.Run("time of day is discarded", func(t *testing.T) {
		// Readings sit at 13:00; a bound equal to their date must
		// still include them.
		got := FilterRange(table, base, base)
		assert.Equal(t, 1, got.Len())
	})

	t.Run("inverted range is empty, not an error", func(t *testing.T) {
		got := FilterRange(table, base.AddDate(0, 0, 5), base.AddDate(0, 0, 2))
		assert.Equal(t, 0, got.Len())
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		before := table.Len()
		FilterRange(table, base, base.AddDate(0, 0, 1))
		assert.Equal(t, before, table.Len())
	})

	t.Run("full range keeps everything", func(t *testing.T) {
		got := FilterRange(table, base, base.AddDate(0, 0, 9))
		assert.Equal(t, table.Len(), got.Len())
	})
}

func TestAggregateByPeriod(t *testing.T) {
	base := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)

	t.Run("daily sums group by calendar date", func(t *testing.T) {
		table := &Table{}
		// Two readings on the same day, one on the next
		table.Readings = []Reading{
			{Time: base.Add(1 * time.Hour), Energy: map[string]float64{UseColumn: 1.5}},
			{Time: base.Add(20 * time.Hour), Energy: map[string]float64{UseColumn: 2.5}},
			{Time: base.AddDate(0, 0, 1), Energy: map[string]float64{UseColumn: 3}},
		}

		agg := AggregateByPeriod(table, []string{UseColumn}, GranularityDay)
		require.Len(t, agg.Rows, 2)
		assert.Equal(t, 4.0, agg.Rows[0].Sums[UseColumn])
		assert.Equal(t, 3.0, agg.Rows[1].Sums[UseColumn])
		assert.True(t, agg.Rows[0].Period.Before(agg.Rows[1].Period))
	})

	t.Run("column totals are conserved", func(t *testing.T) {
		table := dailyTable(base, 14, map[string]float64{UseColumn: 2.5, SolarColumn: 0.5})
		agg := AggregateByPeriod(table, []string{UseColumn, SolarColumn}, GranularityDay)

		assert.LessOrEqual(t, len(agg.Rows), 14)
		sum := 0.0
		for _, row := range agg.Rows {
			sum += row.Sums[UseColumn]
		}
		assert.InDelta(t, 14*2.5, sum, 1e-9)
	})

	t.Run("monthly grouping spans month boundaries", func(t *testing.T) {
		// Jan 30 + 4 days crosses into February
		table := dailyTable(base, 4, map[string]float64{UseColumn: 1})
		agg := AggregateByPeriod(table, []string{UseColumn}, GranularityMonth)

		require.Len(t, agg.Rows, 2)
		assert.Equal(t, "2024-01", agg.Granularity.Label(agg.Rows[0].Period))
		assert.Equal(t, "2024-02", agg.Granularity.Label(agg.Rows[1].Period))
		assert.Equal(t, 2.0, agg.Rows[0].Sums[UseColumn])
		assert.Equal(t, 2.0, agg.Rows[1].Sums[UseColumn])
	})

	t.Run("empty table yields empty aggregate", func(t *testing.T) {
		agg := AggregateByPeriod(&Table{}, []string{UseColumn}, GranularityDay)
		assert.Empty(t, agg.Rows)
	})

	t.Run("no forward filling of missing days", func(t *testing.T) {
		table := &Table{Readings: []Reading{
			{Time: base, Energy: map[string]float64{UseColumn: 1}},
			{Time: base.AddDate(0, 0, 3), Energy: map[string]float64{UseColumn: 1}},
		}}
		agg := AggregateByPeriod(table, []string{UseColumn}, GranularityDay)
		assert.Len(t, agg.Rows, 2)
	})
}

func TestSmooth(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	makeAggregate := func(values []float64) *Aggregate {
		agg := &Aggregate{Granularity: GranularityDay, Columns: []string{UseColumn}}
		for i, v := range values {
			agg.Rows = append(agg.Rows, AggregateRow{
				Period: base.AddDate(0, 0, i),
				Sums:   map[string]float64{UseColumn: v},
			})
		}
		return agg
	}

	t.Run("trailing window means", func(t *testing.T) {
		agg := makeAggregate([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
		series, err := Smooth(agg, []string{UseColumn}, 7)
		require.NoError(t, err)

		values := series.Columns[UseColumn]
		require.Len(t, values, 10)
		for i := 0; i < 6; i++ {
			assert.True(t, math.IsNaN(values[i]), "index %d should be undefined", i)
		}
		assert.InDelta(t, 4, values[6], 1e-9)
		assert.InDelta(t, 5, values[7], 1e-9)
		assert.InDelta(t, 6, values[8], 1e-9)
		assert.InDelta(t, 7, values[9], 1e-9)
	})

	t.Run("constant series is a fixed point", func(t *testing.T) {
		agg := makeAggregate([]float64{3, 3, 3, 3, 3})
		series, err := Smooth(agg, []string{UseColumn}, 3)
		require.NoError(t, err)
		for i := 2; i < 5; i++ {
			assert.InDelta(t, 3, series.Columns[UseColumn][i], 1e-9)
		}
	})

	t.Run("window of one is the identity", func(t *testing.T) {
		agg := makeAggregate([]float64{5, 1, 9})
		series, err := Smooth(agg, []string{UseColumn}, 1)
		require.NoError(t, err)
		assert.Equal(t, []float64{5, 1, 9}, series.Columns[UseColumn])
	})

	t.Run("non-positive window is a configuration error", func(t *testing.T) {
		agg := makeAggregate([]float64{1, 2})
		_, err := Smooth(agg, []string{UseColumn}, 0)
		var configErr *ConfigError
		require.ErrorAs(t, err, &configErr)

		_, err = Smooth(agg, []string{UseColumn}, -3)
		require.ErrorAs(t, err, &configErr)
	})

	t.Run("input aggregate is not mutated", func(t *testing.T) {
		agg := makeAggregate([]float64{1, 2, 3})
		_, err := Smooth(agg, []string{UseColumn}, 2)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, agg.Column(UseColumn))
	})

	t.Run("empty aggregate yields empty series", func(t *testing.T) {
		series, err := Smooth(makeAggregate(nil), []string{UseColumn}, 7)
		require.NoError(t, err)
		assert.Empty(t, series.Columns[UseColumn])
	})
}

func TestTopAppliances(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	monthly := &Aggregate{
		Granularity: GranularityMonth,
		Rows: []AggregateRow{
			{Period: base, Sums: map[string]float64{"A [kW]": 10, "B [kW]": 30, "C [kW]": 20}},
		},
	}

	t.Run("largest totals first", func(t *testing.T) {
		top := TopAppliances(monthly, []string{"A [kW]", "B [kW]", "C [kW]"}, 2)
		require.Len(t, top, 2)
		assert.Equal(t, ApplianceTotal{Name: "B [kW]", Total: 30}, top[0])
		assert.Equal(t, ApplianceTotal{Name: "C [kW]", Total: 20}, top[1])
	})

	t.Run("totals accumulate across periods", func(t *testing.T) {
		multi := &Aggregate{
			Granularity: GranularityMonth,
			Rows: []AggregateRow{
				{Period: base, Sums: map[string]float64{"A [kW]": 10, "B [kW]": 1}},
				{Period: base.AddDate(0, 1, 0), Sums: map[string]float64{"A [kW]": 2, "B [kW]": 20}},
			},
		}
		top := TopAppliances(multi, []string{"A [kW]", "B [kW]"}, 1)
		require.Len(t, top, 1)
		assert.Equal(t, ApplianceTotal{Name: "B [kW]", Total: 21}, top[0])
	})

	t.Run("ties keep first-seen column order", func(t *testing.T) {
		tied := &Aggregate{
			Granularity: GranularityMonth,
			Rows: []AggregateRow{
				{Period: base, Sums: map[string]float64{"X [kW]": 5, "Y [kW]": 5, "Z [kW]": 5}},
			},
		}
		top := TopAppliances(tied, []string{"X [kW]", "Y [kW]", "Z [kW]"}, 3)
		require.Len(t, top, 3)
		assert.Equal(t, "X [kW]", top[0].Name)
		assert.Equal(t, "Y [kW]", top[1].Name)
		assert.Equal(t, "Z [kW]", top[2].Name)
	})

	t.Run("fewer candidates than k returns all", func(t *testing.T) {
		top := TopAppliances(monthly, []string{"A [kW]"}, 5)
		assert.Len(t, top, 1)
	})

	t.Run("non-positive k is empty, not an error", func(t *testing.T) {
		assert.Empty(t, TopAppliances(monthly, []string{"A [kW]"}, 0))
		assert.Empty(t, TopAppliances(monthly, []string{"A [kW]"}, -1))
	})

	t.Run("empty candidates is empty", func(t *testing.T) {
		assert.Empty(t, TopAppliances(monthly, nil, 5))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty table yields zeros", func(t *testing.T) {
		m := Summarize(&Table{})
		assert.Equal(t, SummaryMetrics{}, m)
	})

	t.Run("fourteen day scenario", func(t *testing.T) {
		base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		table := dailyTable(base, 14, map[string]float64{
			SolarColumn:        1.0,
			HouseOverallColumn: 3.0,
		})

		m := Summarize(table)
		assert.InDelta(t, 14.0, m.SolarTotal, 1e-9)
		assert.InDelta(t, 42.0, m.HouseTotal, 1e-9)
		assert.InDelta(t, 28.0, m.NetTotal, 1e-9)
	})

	t.Run("net is exactly house minus solar", func(t *testing.T) {
		base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		table := dailyTable(base, 5, map[string]float64{
			SolarColumn:        0.73,
			HouseOverallColumn: 1.19,
		})
		m := Summarize(table)
		assert.Equal(t, m.HouseTotal-m.SolarTotal, m.NetTotal)
	})
}

func TestSampleCorrelation(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	table := &Table{}
	for i := 0; i < 1000; i++ {
		table.Readings = append(table.Readings, Reading{
			Time:        base.Add(time.Duration(i) * time.Minute),
			Energy:      map[string]float64{UseColumn: float64(i)},
			Temperature: float64(i % 30),
		})
	}

	t.Run("deterministic across recomputations", func(t *testing.T) {
		first := SampleCorrelation(table, 0.05)
		second := SampleCorrelation(table, 0.05)
		assert.Equal(t, first, second)
	})

	t.Run("keeps roughly the requested fraction", func(t *testing.T) {
		points := SampleCorrelation(table, 0.05)
		assert.Greater(t, len(points), 0)
		assert.Less(t, len(points), 200)
	})

	t.Run("fraction of one keeps everything", func(t *testing.T) {
		points := SampleCorrelation(table, 1)
		assert.Len(t, points, table.Len())
	})

	t.Run("empty table or zero fraction yields nothing", func(t *testing.T) {
		assert.Empty(t, SampleCorrelation(&Table{}, 0.05))
		assert.Empty(t, SampleCorrelation(table, 0))
	})
}
