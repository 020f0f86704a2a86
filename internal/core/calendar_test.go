package core

import (
	"testing"
	"time"
)

func TestNewMonthGrid(t *testing.T) {
	tests := []struct {
		name         string
		year, month  int
		firstWeekday int
		days         int
	}{
		// June 2022 is a 30-day month starting on a Wednesday:
		// 3 leading blanks + 30 day cells.
		{name: "30-day month starting Wednesday", year: 2022, month: 6, firstWeekday: 3, days: 30},
		{name: "march 2024 starts Friday", year: 2024, month: 3, firstWeekday: 5, days: 31},
		{name: "leap february", year: 2024, month: 2, firstWeekday: 4, days: 29},
		{name: "non-leap february", year: 2023, month: 2, firstWeekday: 3, days: 28},
		{name: "century non-leap", year: 1900, month: 2, firstWeekday: 4, days: 28},
		{name: "400-year leap", year: 2000, month: 2, firstWeekday: 2, days: 29},
		{name: "month starting Sunday has no blanks", year: 2023, month: 10, firstWeekday: 0, days: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewMonthGrid(tt.year, tt.month)
			if g.FirstWeekday != tt.firstWeekday {
				t.Errorf("FirstWeekday = %d, want %d", g.FirstWeekday, tt.firstWeekday)
			}
			if g.Days != tt.days {
				t.Errorf("Days = %d, want %d", g.Days, tt.days)
			}
			if g.LeadingBlanks() != tt.firstWeekday {
				t.Errorf("LeadingBlanks = %d, want %d", g.LeadingBlanks(), tt.firstWeekday)
			}
			if g.Cells() != tt.firstWeekday+tt.days {
				t.Errorf("Cells = %d, want %d", g.Cells(), tt.firstWeekday+tt.days)
			}
		})
	}
}

func TestMonthGridContains(t *testing.T) {
	g := NewMonthGrid(2024, 3)
	in := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if !g.Contains(in) {
		t.Errorf("expected %v inside March 2024", in)
	}
	for _, out := range []time.Time{
		time.Date(2024, 4, 15, 0, 0, 0, 0, time.Local),
		time.Date(2023, 3, 15, 0, 0, 0, 0, time.Local),
	} {
		if g.Contains(out) {
			t.Errorf("expected %v outside March 2024", out)
		}
	}
}
