package solar

import "time"

// Step is the sampling interval between consecutive points in a series.
const Step = 5 * time.Minute

// ForecastWindow returns the time range a yield series covers: from the
// beginning of the day two days before now to the beginning of the day two
// days ahead, both aligned to midnight UTC. It is recomputed on every call;
// nothing about the window is persisted.
func ForecastWindow(now time.Time) (start, end time.Time) {
	start = midnightUTC(now.AddDate(0, 0, -2))
	end = midnightUTC(now.AddDate(0, 0, 2))
	return start, end
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
