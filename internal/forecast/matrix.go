package forecast

import (
	"math"
	"strconv"
	"strings"
)

// BuildMatrix parses WindowSize rows of free-text field values into a
// MeasurementMatrix. Required-field checks run over all rows before any
// numeric parsing; blank optional fields default to 0. Values are passed
// through as entered, with no clamping or unit conversion.
func BuildMatrix(rows []RawRow) (MeasurementMatrix, error) {
	var m MeasurementMatrix

	if len(rows) != WindowSize {
		return m, validationErrorf(CodeWindowSize, "expected exactly %d rows of observations, got %d", WindowSize, len(rows))
	}

	for i, r := range rows {
		if strings.TrimSpace(r.MaxTemp) == "" || strings.TrimSpace(r.MinTemp) == "" {
			return m, validationErrorf(CodeMissingRequiredField, "day %d is missing a required temperature", i+1)
		}
	}

	for i, r := range rows {
		row, err := parseRow(i, r)
		if err != nil {
			return m, err
		}
		m[i] = row
	}

	return m, nil
}

func parseRow(day int, r RawRow) (MeasurementRow, error) {
	var (
		row MeasurementRow
		err error
	)

	if row.MaxTemp, err = parseRequired(day, "max temperature", r.MaxTemp); err != nil {
		return row, err
	}
	if row.MinTemp, err = parseRequired(day, "min temperature", r.MinTemp); err != nil {
		return row, err
	}
	if row.Precipitation, err = parseOptional(day, "precipitation", r.Precipitation); err != nil {
		return row, err
	}
	if row.Snowfall, err = parseOptional(day, "snowfall", r.Snowfall); err != nil {
		return row, err
	}
	if row.SnowDepth, err = parseOptional(day, "snow depth", r.SnowDepth); err != nil {
		return row, err
	}

	return row, nil
}

func parseRequired(day int, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validationErrorf(CodeInvalidNumber, "day %d: %s value %q is not a finite number", day+1, field, raw)
	}
	return v, nil
}

func parseOptional(day int, field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseRequired(day, field, raw)
}

// Validate rechecks that every row holds finite values. Matrices produced by
// BuildMatrix or MatrixFromHistory always pass; this guards matrices injected
// through other paths before they reach the inference boundary.
func (m MeasurementMatrix) Validate() error {
	for i, row := range m {
		for _, v := range []float64{row.MaxTemp, row.MinTemp, row.Precipitation, row.Snowfall, row.SnowDepth} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validationErrorf(CodeInvalidNumber, "day %d holds a non-finite value", i+1)
			}
		}
	}
	return nil
}
