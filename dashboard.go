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

// Dashboard computes the derived views for one user interaction. Every call
// to Compute is a full, synchronous recomputation from the memoized table;
// no state is carried between interactions.
type Dashboard struct {
	dataset *Dataset
	config  *Config
	charts  *ChartGenerator
	logger  *Logger
}

// NewDashboard creates a new dashboard pipeline
func NewDashboard(dataset *Dataset, config *Config, logger *Logger) *Dashboard {
	return &Dashboard{
		dataset: dataset,
		config:  config,
		charts:  NewChartGenerator(logger),
		logger:  logger.WithComponent("dashboard"),
	}
}

// Meta describes the loaded dataset for the UI controls
func (d *Dashboard) Meta() (*DatasetMeta, error) {
	table, err := d.dataset.Load()
	if err != nil {
		return nil, err
	}
	return &DatasetMeta{
		Rows:             table.Len(),
		MinDate:          d.dataset.MinDate().Format("2006-01-02"),
		MaxDate:          d.dataset.MaxDate().Format("2006-01-02"),
		EnergyColumns:    table.Columns.EnergyColumns,
		ApplianceColumns: table.Columns.ApplianceColumns,
	}, nil
}

// DefaultQuery builds the initial interaction: the full date extent, the
// first few appliance columns in column order, and the use series visible.
func (d *Dashboard) DefaultQuery() (DashboardQuery, error) {
	table, err := d.dataset.Load()
	if err != nil {
		return DashboardQuery{}, err
	}

	appliances := table.Columns.ApplianceColumns
	if len(appliances) > d.config.DefaultAppliances {
		appliances = appliances[:d.config.DefaultAppliances]
	}

	return DashboardQuery{
		StartDate:       d.dataset.MinDate(),
		EndDate:         d.dataset.MaxDate(),
		Appliances:      appliances,
		ShowUseColumn:   true,
		SmoothingWindow: d.config.SmoothingWindow,
	}, nil
}

// Compute runs the full pipeline for one interaction: filter, aggregate,
// smooth, rank, summarize, sample, render. An empty selection or an empty
// date window degrades to empty views; only rendering faults and a bad
// smoothing window return errors.
func (d *Dashboard) Compute(query DashboardQuery) (*DashboardView, error) {
	table, err := d.dataset.Load()
	if err != nil {
		return nil, err
	}

	if query.SmoothingWindow == 0 {
		query.SmoothingWindow = d.config.SmoothingWindow
	}
	query.StartDate, query.EndDate = d.dataset.ClampRange(query.StartDate, query.EndDate)
	query.Appliances = knownAppliances(query.Appliances, table.Columns.ApplianceColumns)

	working := FilterRange(table, query.StartDate, query.EndDate)
	d.logger.LogQuery(query, working.Len())

	view := &DashboardView{
		Query: query,
		Rows:  working.Len(),
	}

	// Trend: daily sums of the use channel plus the selected appliances,
	// smoothed with the trailing window. The use series is always
	// computed; the checkbox only controls its visibility in the chart.
	trendColumns := append([]string{UseColumn}, query.Appliances...)
	daily := AggregateByPeriod(working, trendColumns, GranularityDay)
	d.logger.LogPipelineStage("daily_aggregate")

	view.Trend, err = Smooth(daily, trendColumns, query.SmoothingWindow)
	if err != nil {
		return nil, err
	}
	d.logger.LogPipelineStage("smoothing")

	// Weather correlation: downsampled raw readings, no aggregation
	view.Correlation = SampleCorrelation(working, d.config.SampleFraction)

	// Solar summary metrics
	view.Summary = Summarize(working)

	// Monthly ranking of the selected appliances
	view.Monthly = AggregateByPeriod(working, table.Columns.EnergyColumns, GranularityMonth)
	view.TopK = TopAppliances(view.Monthly, query.Appliances, d.config.TopAppliances)
	d.logger.LogPipelineStage("monthly_aggregate")

	chartColumns := query.Appliances
	if query.ShowUseColumn {
		chartColumns = trendColumns
	}
	if view.TrendChart, err = d.charts.TrendChart(view.Trend, chartColumns); err != nil {
		return nil, err
	}
	if view.CorrelationChart, err = d.charts.CorrelationChart(view.Correlation); err != nil {
		return nil, err
	}
	if view.MonthlyChart, err = d.charts.MonthlyChart(view.Monthly, view.TopK); err != nil {
		return nil, err
	}
	d.logger.LogPipelineStage("charts")

	return view, nil
}

// knownAppliances drops selection entries that are not appliance columns of
// the loaded table, preserving the requested order
func knownAppliances(selected, appliances []string) []string {
	known := make(map[string]bool, len(appliances))
	for _, name := range appliances {
		known[name] = true
	}
	kept := make([]string, 0, len(selected))
	for _, name := range selected {
		if known[name] {
			kept = append(kept, name)
		}
	}
	return kept
}
