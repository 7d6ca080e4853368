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
	"html"
	"io"

	"github.com/dustin/go-humanize"
)

// HTMLReporter renders the dashboard page. The same writer serves both the
// HTTP handler and the static snapshot mode.
type HTMLReporter struct {
	logger *Logger
}

// NewHTMLReporter creates a new dashboard page renderer
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger.WithComponent("reporter"),
	}
}

// RenderPage writes the complete dashboard page for one computed view
func (r *HTMLReporter) RenderPage(w io.Writer, meta *DatasetMeta, view *DashboardView) {
	r.writeHeader(w, meta)
	r.writeControls(w, meta, view.Query)
	r.writeTrendAndWeather(w, view)
	r.writeSummaryAndTopAppliances(w, view)
	r.writeFooter(w)
}

func (r *HTMLReporter) writeHeader(w io.Writer, meta *DatasetMeta) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Energy Dashboard</title>
    <style>
        :root {
            --primary-color: #3F51B5;
            --secondary-color: #00C896;
            --bg-color: #F4F6FB;
            --card-bg: #FFFFFF;
            --text-color: #1A2332;
            --text-muted: #6B7490;
            --border-color: #D9DEEF;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: var(--bg-color);
            color: var(--text-color);
            line-height: 1.6;
            padding: 20px;
        }

        .container {
            max-width: 1280px;
            margin: 0 auto;
        }

        header {
            background: linear-gradient(135deg, var(--primary-color), var(--secondary-color));
            color: white;
            padding: 30px 40px;
            border-radius: 16px;
            margin-bottom: 24px;
        }

        h1 {
            font-size: 2.2em;
            margin-bottom: 6px;
            font-weight: 700;
        }

        .subtitle {
            color: rgba(255, 255, 255, 0.9);
            font-size: 1.05em;
        }

        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 24px;
            border: 1px solid var(--border-color);
        }

        h2 {
            color: var(--primary-color);
            margin-bottom: 16px;
            font-size: 1.5em;
            border-bottom: 2px solid var(--border-color);
            padding-bottom: 8px;
        }

        .grid-2 {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(480px, 1fr));
            gap: 24px;
        }

        .controls {
            display: flex;
            flex-wrap: wrap;
            gap: 20px;
            align-items: flex-end;
        }

        .controls label {
            display: block;
            color: var(--text-muted);
            font-size: 0.85em;
            margin-bottom: 4px;
        }

        .controls input[type="date"], .controls select {
            padding: 8px;
            border: 1px solid var(--border-color);
            border-radius: 6px;
            font-size: 0.95em;
        }

        .controls select[multiple] {
            min-width: 240px;
            min-height: 120px;
        }

        .controls button {
            background: var(--primary-color);
            color: white;
            border: none;
            border-radius: 6px;
            padding: 10px 24px;
            font-size: 1em;
            cursor: pointer;
        }

        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 16px;
            margin: 16px 0;
        }

        .metric-card {
            background: rgba(63, 81, 181, 0.05);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 18px;
            text-align: center;
        }

        .metric-value {
            font-size: 1.8em;
            font-weight: bold;
            color: var(--secondary-color);
            margin: 8px 0;
        }

        .metric-label {
            color: var(--text-muted);
            font-size: 0.9em;
        }

        table {
            width: 100%%;
            border-collapse: collapse;
            margin: 16px 0;
        }

        th, td {
            padding: 10px;
            text-align: left;
            border-bottom: 1px solid var(--border-color);
        }

        th {
            background: rgba(63, 81, 181, 0.08);
            color: var(--primary-color);
            font-weight: 600;
        }

        .chart img {
            width: 100%%;
            border-radius: 8px;
        }

        .empty-note {
            color: var(--text-muted);
            font-style: italic;
            padding: 12px 0;
        }

        footer {
            text-align: center;
            padding: 24px;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
            margin-top: 32px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Energy Dashboard</h1>
            <div class="subtitle">%s readings from %s to %s</div>
        </header>
`,
		humanize.Comma(int64(meta.Rows)),
		meta.MinDate,
		meta.MaxDate,
	)
}

func (r *HTMLReporter) writeControls(w io.Writer, meta *DatasetMeta, query DashboardQuery) {
	fmt.Fprintf(w, `
        <div class="card">
            <form method="GET" action="/" class="controls">
                <div>
                    <label for="start">Start Date</label>
                    <input type="date" id="start" name="start" value="%s" min="%s" max="%s">
                </div>
                <div>
                    <label for="end">End Date</label>
                    <input type="date" id="end" name="end" value="%s" min="%s" max="%s">
                </div>
                <div>
                    <label for="appliances">Appliances</label>
                    <select id="appliances" name="appliances" multiple>
`,
		query.StartDate.Format("2006-01-02"),
		meta.MinDate,
		meta.MaxDate,
		query.EndDate.Format("2006-01-02"),
		meta.MinDate,
		meta.MaxDate,
	)

	selected := make(map[string]bool, len(query.Appliances))
	for _, name := range query.Appliances {
		selected[name] = true
	}
	for _, name := range meta.ApplianceColumns {
		marker := ""
		if selected[name] {
			marker = " selected"
		}
		fmt.Fprintf(w, `                        <option value="%s"%s>%s</option>
`,
			html.EscapeString(name),
			marker,
			html.EscapeString(name),
		)
	}

	useChecked := ""
	if query.ShowUseColumn {
		useChecked = " checked"
	}

	fmt.Fprintf(w, `                    </select>
                </div>
                <div>
                    <label for="show_use">Show %s</label>
                    <input type="checkbox" id="show_use" name="show_use" value="1"%s>
                </div>
                <button type="submit">Update</button>
            </form>
        </div>
`,
		html.EscapeString(UseColumn),
		useChecked,
	)
}

func (r *HTMLReporter) writeTrendAndWeather(w io.Writer, view *DashboardView) {
	fmt.Fprintf(w, `
        <div class="grid-2">
            <div class="card chart">
                <h2>Energy Consumption Trend Over Time</h2>
`)
	if view.TrendChart != "" {
		fmt.Fprintf(w, `                <img src="data:image/png;base64,%s" alt="Consumption trend">
`, view.TrendChart)
	} else {
		fmt.Fprintf(w, `                <p class="empty-note">No data in the selected range.</p>
`)
	}

	fmt.Fprintf(w, `            </div>
            <div class="card chart">
                <h2>Weather vs Energy Consumption</h2>
`)
	if view.CorrelationChart != "" {
		fmt.Fprintf(w, `                <img src="data:image/png;base64,%s" alt="Temperature correlation">
`, view.CorrelationChart)
	} else {
		fmt.Fprintf(w, `                <p class="empty-note">Not enough readings for the correlation view.</p>
`)
	}
	fmt.Fprintf(w, `            </div>
        </div>
`)
}

func (r *HTMLReporter) writeSummaryAndTopAppliances(w io.Writer, view *DashboardView) {
	fmt.Fprintf(w, `
        <div class="grid-2">
            <div class="card">
                <h2>Solar Energy vs Household Energy Consumption</h2>
                <div class="metric-grid">
                    <div class="metric-card">
                        <div class="metric-label">Total Solar Energy Production [kW]</div>
                        <div class="metric-value">%s</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-label">Total Household Energy Consumption [kW]</div>
                        <div class="metric-value">%s</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-label">Net Energy Consumption [kW]</div>
                        <div class="metric-value">%s</div>
                    </div>
                </div>
            </div>
            <div class="card chart">
                <h2>Top %d Energy Consuming Appliances (Month-by-Month)</h2>
`,
		FormatEnergy(view.Summary.SolarTotal),
		FormatEnergy(view.Summary.HouseTotal),
		FormatEnergy(view.Summary.NetTotal),
		len(view.TopK),
	)

	if view.MonthlyChart != "" {
		fmt.Fprintf(w, `                <img src="data:image/png;base64,%s" alt="Monthly appliance consumption">
`, view.MonthlyChart)
	}

	if len(view.TopK) > 0 {
		fmt.Fprintf(w, `                <table>
                    <thead>
                        <tr>
                            <th>Appliance</th>
                            <th>Total [kW]</th>
                        </tr>
                    </thead>
                    <tbody>
`)
		for _, appliance := range view.TopK {
			fmt.Fprintf(w, `                        <tr>
                            <td>%s</td>
                            <td>%s</td>
                        </tr>
`,
				html.EscapeString(appliance.Name),
				FormatEnergy(appliance.Total),
			)
		}
		fmt.Fprintf(w, `                    </tbody>
                </table>
`)
	} else {
		fmt.Fprintf(w, `                <p class="empty-note">No appliances selected.</p>
`)
	}

	fmt.Fprintf(w, `            </div>
        </div>
`)
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, `
        <footer>
            <p>wattdash %s</p>
        </footer>
    </div>
</body>
</html>
`,
		GetVersion(),
	)
}

// FormatEnergy formats a kW total for the metric cards
func FormatEnergy(value float64) string {
	return humanize.CommafWithDigits(value, 2)
}
