package ottava_test

import (
	"testing"
	"time"

	Og "github.com/craque/ottava/glyph"
)

func TestDaysInMonth(t *testing.T) {
	t.Run("knows regular month lengths", func(t *testing.T) {
		assertInt(t, Og.DaysInMonth(time.January, 2025), 31)
		assertInt(t, Og.DaysInMonth(time.April, 2025), 30)
	})

	t.Run("knows leap years", func(t *testing.T) {
		assertInt(t, Og.DaysInMonth(time.February, 2024), 29)
		assertInt(t, Og.DaysInMonth(time.February, 2025), 28)
		assertInt(t, Og.DaysInMonth(time.February, 2000), 29)
		assertInt(t, Og.DaysInMonth(time.February, 1900), 28)
	})
}

// labelAt reads the label for visual cell (row, col) out of the
// column-major slice MonthLabels returns.
func labelAt(labels []string, row, col int) string {
	return labels[col*Og.GridRows+row]
}

func TestMonthLabels(t *testing.T) {
	t.Run("returns exactly 35 labels", func(t *testing.T) {
		assertInt(t, len(Og.MonthLabels(time.June, 2025)), Og.GridCells)
	})

	t.Run("places day 1 on the first weekday", func(t *testing.T) {
		// June 1, 2025 is a Sunday
		labels := Og.MonthLabels(time.June, 2025)
		assertString(t, labelAt(labels, 0, 0), "1")
		assertString(t, labelAt(labels, 0, 6), "7")
		assertString(t, labelAt(labels, 1, 0), "8")
		assertString(t, labelAt(labels, 4, 1), "30")
	})

	t.Run("offsets a mid-week month start", func(t *testing.T) {
		// September 1, 2025 is a Monday
		labels := Og.MonthLabels(time.September, 2025)
		assertString(t, labelAt(labels, 0, 0), "")
		assertString(t, labelAt(labels, 0, 1), "1")
		assertString(t, labelAt(labels, 4, 2), "30")
	})

	t.Run("leaves trailing cells empty", func(t *testing.T) {
		labels := Og.MonthLabels(time.February, 2025) // Feb 1 is a Saturday
		assertString(t, labelAt(labels, 0, 0), "")
		assertString(t, labelAt(labels, 0, 6), "1")
		assertString(t, labelAt(labels, 4, 5), "28")
		assertString(t, labelAt(labels, 4, 6), "")
	})

	t.Run("wraps a six-week month to the head of the grid", func(t *testing.T) {
		// August 2026: Aug 1 is a Saturday, 31 days -> cells 6..36
		labels := Og.MonthLabels(time.August, 2026)
		assertString(t, labelAt(labels, 0, 6), "1")
		assertString(t, labelAt(labels, 4, 6), "29")
		// days 30 and 31 land past cell 34 and wrap to the head
		assertString(t, labelAt(labels, 0, 0), "30")
		assertString(t, labelAt(labels, 0, 1), "31")
	})
}

func TestMonthStep(t *testing.T) {
	t.Run("steps forward within a year", func(t *testing.T) {
		m, y := Og.MonthStep(time.June, 2025, 1)
		if m != time.July || y != 2025 {
			t.Errorf("got %v %d, want July 2025", m, y)
		}
	})

	t.Run("rolls over year boundaries", func(t *testing.T) {
		m, y := Og.MonthStep(time.December, 2025, 1)
		if m != time.January || y != 2026 {
			t.Errorf("got %v %d, want January 2026", m, y)
		}

		m, y = Og.MonthStep(time.January, 2025, -1)
		if m != time.December || y != 2024 {
			t.Errorf("got %v %d, want December 2024", m, y)
		}
	})
}
