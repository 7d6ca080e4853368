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
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// timestampLayouts are the accepted formats for the time column, tried in
// order. A bare integer is interpreted as a unix timestamp in seconds.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Dataset loads the raw reading table exactly once per process lifetime.
// The loaded table is immutable; concurrent first access is guarded by a
// single initialization gate rather than a lock held for the table's life.
type Dataset struct {
	path   string
	logger *Logger

	once    sync.Once
	table   *Table
	loadErr error

	minDate time.Time
	maxDate time.Time
}

// NewDataset creates a dataset bound to a CSV file
func NewDataset(path string, logger *Logger) *Dataset {
	return &Dataset{
		path:   path,
		logger: logger.WithComponent("dataset"),
	}
}

// Load reads and parses the dataset. The first call performs the read; every
// subsequent call returns the identical cached table.
func (d *Dataset) Load() (*Table, error) {
	d.once.Do(func() {
		d.table, d.loadErr = d.read()
		if d.loadErr != nil {
			return
		}
		for i, r := range d.table.Readings {
			date := r.Date()
			if i == 0 || date.Before(d.minDate) {
				d.minDate = date
			}
			if i == 0 || date.After(d.maxDate) {
				d.maxDate = date
			}
		}
		d.logger.LogDatasetLoaded(d.path, d.table.Len(), d.minDate, d.maxDate)
	})
	return d.table, d.loadErr
}

// MinDate returns the earliest calendar date in the dataset. Load must have
// succeeded first.
func (d *Dataset) MinDate() time.Time { return d.minDate }

// MaxDate returns the latest calendar date in the dataset
func (d *Dataset) MaxDate() time.Time { return d.maxDate }

// ClampRange restricts a requested date interval to the dataset's observed
// extent. Zero bounds default to the full extent.
func (d *Dataset) ClampRange(start, end time.Time) (time.Time, time.Time) {
	if start.IsZero() || start.Before(d.minDate) {
		start = d.minDate
	}
	if end.IsZero() || end.After(d.maxDate) {
		end = d.maxDate
	}
	return start, end
}

// read parses the CSV file into a table
func (d *Dataset) read() (*Table, error) {
	file, err := os.Open(d.path)
	if err != nil {
		return nil, &LoadError{
			Path:    d.path,
			Message: "cannot open dataset",
			Err:     err,
		}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{
			Path:    d.path,
			Message: "cannot read header",
			Err:     err,
		}
	}

	timeIdx := -1
	tempIdx := -1
	energyIdx := make(map[int]string)
	for i, name := range header {
		switch {
		case name == TimeColumn:
			timeIdx = i
		case name == TemperatureColumn:
			tempIdx = i
		case strings.Contains(name, EnergyUnitSuffix):
			energyIdx[i] = name
		}
	}

	if timeIdx < 0 {
		return nil, &LoadError{
			Path:    d.path,
			Message: "timestamp column \"" + TimeColumn + "\" not found",
		}
	}

	table := &Table{
		Columns: ClassifyColumns(header),
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{
				Path:    d.path,
				Message: "malformed record at line " + strconv.Itoa(line),
				Err:     err,
			}
		}

		ts, err := parseTimestamp(record[timeIdx])
		if err != nil {
			return nil, &LoadError{
				Path:    d.path,
				Message: "unparsable timestamp at line " + strconv.Itoa(line),
				Err:     err,
			}
		}

		reading := Reading{
			Time:   ts,
			Energy: make(map[string]float64, len(energyIdx)),
		}
		// The input is assumed already cleaned; blank or malformed
		// numeric cells read as zero.
		for idx, name := range energyIdx {
			reading.Energy[name] = parseFloat(record[idx])
		}
		if tempIdx >= 0 {
			reading.Temperature = parseFloat(record[tempIdx])
		}

		table.Readings = append(table.Readings, reading)
	}

	// An empty table would leave the date extent undefined
	if table.Len() == 0 {
		return nil, &DataError{
			DataType: "readings",
			Message:  "dataset contains no readings",
		}
	}

	return table, nil
}

// ClassifyColumns derives the energy and appliance column sets from a header.
// It is a pure function of the column names: energy columns carry the unit
// suffix, appliance columns are energy columns minus the three aggregate
// channels. Absent aggregate names are tolerated, not faults.
func ClassifyColumns(header []string) ColumnSet {
	set := ColumnSet{}
	for _, name := range header {
		if !strings.Contains(name, EnergyUnitSuffix) {
			continue
		}
		set.EnergyColumns = append(set.EnergyColumns, name)
		if name != UseColumn && name != GenColumn && name != HouseOverallColumn {
			set.ApplianceColumns = append(set.ApplianceColumns, name)
		}
	}
	return set
}

// parseTimestamp parses a time cell, accepting the known layouts plus
// integer unix seconds
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
