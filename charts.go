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
	"bytes"
	"encoding/base64"
	"math"

	charts "github.com/vicanso/go-charts/v2"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartGenerator renders the dashboard charts as base64-encoded PNGs
type ChartGenerator struct {
	theme  string
	logger *Logger
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator(logger *Logger) *ChartGenerator {
	return &ChartGenerator{
		theme:  "light",
		logger: logger.WithComponent("charts"),
	}
}

// TrendChart renders the smoothed consumption trend for the given columns.
// An empty series or column list yields an empty string rather than an
// error; the page simply omits the image.
func (cg *ChartGenerator) TrendChart(series *SmoothedSeries, columns []string) (string, error) {
	if series == nil || len(series.Periods) == 0 || len(columns) == 0 {
		return "", nil
	}

	labels := make([]string, len(series.Periods))
	for i, p := range series.Periods {
		labels[i] = p.Format("2006-01-02")
	}

	values := make([][]float64, 0, len(columns))
	legendLabels := make([]string, 0, len(columns))
	for _, col := range columns {
		input, ok := series.Columns[col]
		if !ok {
			continue
		}
		// The leading window-1 values are undefined; the chart
		// library has its own null sentinel for those.
		row := make([]float64, len(input))
		for i, v := range input {
			if math.IsNaN(v) {
				row[i] = charts.GetNullValue()
			} else {
				row[i] = v
			}
		}
		values = append(values, row)
		legendLabels = append(legendLabels, col)
	}
	if len(values) == 0 {
		return "", nil
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc("Energy Consumption Trend Over Time"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legendLabels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", &RenderError{Chart: "trend", Err: err}
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", &RenderError{Chart: "trend", Err: err}
	}

	cg.logger.LogChartRendered("trend", len(values))
	return base64.StdEncoding.EncodeToString(buf), nil
}

// CorrelationChart renders the temperature versus total-use scatter from the
// downsampled correlation view
func (cg *ChartGenerator) CorrelationChart(points []CorrelationPoint) (string, error) {
	// go-chart needs at least two points to place an axis range
	if len(points) < 2 {
		return "", nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Temperature
		ys[i] = p.Use
	}

	graph := chart.Chart{
		Title:  "Weather vs Energy Consumption",
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Temperature",
		},
		YAxis: chart.YAxis{
			Name: UseColumn,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Readings",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColor:    drawing.Color{R: 63, G: 81, B: 181, A: 200},
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", &RenderError{Chart: "correlation", Err: err}
	}

	cg.logger.LogChartRendered("correlation", len(points))
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// MonthlyChart renders the month-by-month consumption of the top-ranked
// appliances
func (cg *ChartGenerator) MonthlyChart(monthly *Aggregate, top []ApplianceTotal) (string, error) {
	if monthly == nil || len(monthly.Rows) == 0 || len(top) == 0 {
		return "", nil
	}

	labels := make([]string, len(monthly.Rows))
	for i, row := range monthly.Rows {
		labels[i] = monthly.Granularity.Label(row.Period)
	}

	values := make([][]float64, 0, len(top))
	legendLabels := make([]string, 0, len(top))
	for _, appliance := range top {
		values = append(values, monthly.Column(appliance.Name))
		legendLabels = append(legendLabels, appliance.Name)
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc("Top Energy Consuming Appliances (Month-by-Month)"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legendLabels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", &RenderError{Chart: "monthly", Err: err}
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", &RenderError{Chart: "monthly", Err: err}
	}

	cg.logger.LogChartRendered("monthly", len(values))
	return base64.StdEncoding.EncodeToString(buf), nil
}
