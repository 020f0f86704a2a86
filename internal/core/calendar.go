package core

import "time"

// MonthGrid describes the 7-column layout of one Gregorian calendar month:
// FirstWeekday leading blank cells (weeks start on Sunday) followed by Days
// numbered day cells.
type MonthGrid struct {
	Year  int
	Month int
	// FirstWeekday is the weekday of the 1st, 0=Sunday .. 6=Saturday.
	FirstWeekday int
	// Days is the number of days in the month.
	Days int
}

// NewMonthGrid computes the grid for the given year and 1-based month.
func NewMonthGrid(year, month int) MonthGrid {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
	return MonthGrid{
		Year:         year,
		Month:        month,
		FirstWeekday: int(first.Weekday()),
		Days:         last.Day(),
	}
}

// LeadingBlanks is the number of empty cells before the 1st.
func (g MonthGrid) LeadingBlanks() int {
	return g.FirstWeekday
}

// Cells is the total number of grid cells (blanks plus day cells).
func (g MonthGrid) Cells() int {
	return g.FirstWeekday + g.Days
}

// Contains reports whether t falls inside this month.
func (g MonthGrid) Contains(t time.Time) bool {
	return t.Year() == g.Year && int(t.Month()) == g.Month
}
