package forecast

import "time"

// MatrixFromHistory maps a provider's day-indexed parallel arrays onto a
// MeasurementMatrix, selecting the most recent WindowSize entries of the time
// axis. The provider is expected to exclude the current, incomplete day.
// Optional fields missing at an index default to 0, matching BuildMatrix.
func MatrixFromHistory(h DailyHistory) (MeasurementMatrix, error) {
	var m MeasurementMatrix

	if len(h.Time) < WindowSize {
		return m, validationErrorf(CodeInsufficientHistory,
			"provider returned %d days of history, need %d", len(h.Time), WindowSize)
	}

	start := len(h.Time) - WindowSize
	if len(h.MaxTemp) < start+WindowSize || len(h.MinTemp) < start+WindowSize {
		return m, validationErrorf(CodeInsufficientHistory,
			"temperature series shorter than the time axis")
	}

	for i := 0; i < WindowSize; i++ {
		j := start + i
		m[i] = MeasurementRow{
			MaxTemp:       h.MaxTemp[j],
			MinTemp:       h.MinTemp[j],
			Precipitation: seriesAt(h.Precipitation, j),
			Snowfall:      seriesAt(h.Snowfall, j),
			SnowDepth:     seriesAt(h.SnowDepth, j),
		}
	}

	return m, nil
}

// seriesAt reads series[i], defaulting to 0 when the series is absent or
// shorter than the time axis.
func seriesAt(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

// HistoryRange returns the calendar range of the measurement window relative
// to now: end is yesterday, start is WindowSize-1 days before end, so the
// window covers WindowSize whole days and never the current one.
func HistoryRange(now time.Time) (start, end time.Time) {
	y, mo, d := now.UTC().Date()
	end = time.Date(y, mo, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	start = end.AddDate(0, 0, -(WindowSize - 1))
	return start, end
}
