package ottava

import (
	"strconv"
	"time"
)

// DaysInMonth relies on time.Date normalization:
// day zero of the following month is the last day of this one.
// Gregorian month lengths and leap years come along for free.
func DaysInMonth(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthLabels produces the 35 day labels for one month view.
// Cells before the first weekday and after the last day stay empty.
// Days past the 35th visual cell wrap to the head of the grid,
// so a six-week month still fits the fixed shape.
//
// The returned slice is in the column-major order ComposeGrid
// consumes: the label for visual cell (row i, col j) sits at
// index j*5+i. Weeks start on Sunday.
func MonthLabels(month time.Month, year int) []string {
	labels := make([]string, GridCells)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := int(first.Weekday())
	days := DaysInMonth(month, year)

	for d := 1; d <= days; d++ {
		cell := (start + d - 1) % GridCells
		i := cell / GridCols
		j := cell % GridCols
		labels[j*GridRows+i] = strconv.Itoa(d)
	}

	return labels
}

// MonthStep moves a month view forward or backward,
// again leaning on time.Date normalization for year rollover.
func MonthStep(month time.Month, year, delta int) (time.Month, int) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Month(), t.Year()
}
