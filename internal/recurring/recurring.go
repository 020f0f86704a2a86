// Package recurring projects scheduled bills onto the calendar and
// materializes due entries into the transaction store.
package recurring

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
)

// Schedule is one recurring bill. Day anchors the entry to a day of the
// month; EveryDays switches to a fixed day stride instead, re-anchored at
// the 1st of each month. Remaining limits how many occurrences are left
// (0 means unlimited).
type Schedule struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Day       int    `json:"day"`
	EveryDays int    `json:"everyDays,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
}

func (s Schedule) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("schedule missing title")
	}
	if _, err := core.ParseAmount(s.Amount); err != nil {
		return fmt.Errorf("schedule %q: %w", s.Title, err)
	}
	if s.EveryDays < 0 {
		return fmt.Errorf("schedule %q: everyDays must not be negative", s.Title)
	}
	if s.EveryDays == 0 && (s.Day < 1 || s.Day > 31) {
		return fmt.Errorf("schedule %q: day %d out of range", s.Title, s.Day)
	}
	return nil
}

func (s Schedule) cents() int64 {
	c, _ := core.ParseAmount(s.Amount)
	return c
}

// LoadFile reads schedules from a JSON file. A missing file is not an
// error; recurring bills are optional.
func LoadFile(path string) ([]Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read schedules: %w", err)
	}

	var schedules []Schedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, fmt.Errorf("parse schedules: %w", err)
	}

	for _, s := range schedules {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return schedules, nil
}

// Project expands the schedules into calendar events from the first day of
// from's month through the given number of months. Day-of-month anchors are
// clamped to the last day of short months.
func Project(schedules []Schedule, from time.Time, months int) []ledger.CalendarEvent {
	if months < 1 {
		return nil
	}

	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, months, 0)

	var events []ledger.CalendarEvent
	for _, s := range schedules {
		remaining := s.Remaining
		unlimited := remaining == 0
		for _, d := range s.occurrences(start, end) {
			if !unlimited {
				if remaining == 0 {
					break
				}
				remaining--
			}
			events = append(events, ledger.CalendarEvent{
				Date:   d,
				Title:  s.Title,
				Amount: core.Money{Cents: s.cents()},
			})
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Title < events[j].Title
	})
	return events
}

// occurrences lists the schedule's dates per month. Interval schedules
// re-anchor at the 1st of every month (1, 1+N, 1+2N, ...), the same rule
// dueOn applies, so a projected date is always a due date.
func (s Schedule) occurrences(start, end time.Time) []time.Time {
	var out []time.Time

	for m := start; m.Before(end); m = m.AddDate(0, 1, 0) {
		lastDay := core.NewMonthGrid(m.Year(), int(m.Month())).Days

		if s.EveryDays > 0 {
			for day := 1; day <= lastDay; day += s.EveryDays {
				out = append(out, time.Date(m.Year(), m.Month(), day, 0, 0, 0, 0, time.UTC))
			}
			continue
		}

		day := s.Day
		if day > lastDay {
			day = lastDay
		}
		out = append(out, time.Date(m.Year(), m.Month(), day, 0, 0, 0, 0, time.UTC))
	}
	return out
}

// Creator is the slice of the transaction service the materializer needs.
type Creator interface {
	Create(ctx context.Context, t core.Transaction) (string, error)
}

// Materializer turns due schedule entries into stored transactions. Run is
// meant to fire once a day from a cron trigger.
type Materializer struct {
	path    string
	creator Creator
}

func NewMaterializer(path string, creator Creator) *Materializer {
	return &Materializer{path: path, creator: creator}
}

// Run materializes every schedule entry due today and returns the number of
// transactions created. Failures on individual entries are logged and
// skipped so one bad entry cannot block the rest.
func (m *Materializer) Run(ctx context.Context, now time.Time) (int, error) {
	schedules, err := LoadFile(m.path)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, s := range schedules {
		if !s.dueOn(now) {
			continue
		}

		tx := core.Transaction{
			Date:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			Title:    s.Title,
			Category: s.Category,
			Amount:   core.Money{Cents: s.cents()},
		}
		if tx.Category == "" {
			tx.Category = "Bills"
		}

		ref, err := m.creator.Create(ctx, tx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to materialize recurring entry",
				"title", s.Title,
				"error", err)
			continue
		}

		created++
		slog.InfoContext(ctx, "Materialized recurring entry",
			"title", s.Title,
			"amount_cents", tx.Amount.Cents,
			"ref", ref)
	}

	return created, nil
}

func (s Schedule) dueOn(now time.Time) bool {
	if s.EveryDays > 0 {
		return (now.Day()-1)%s.EveryDays == 0
	}

	day := s.Day
	lastDay := core.NewMonthGrid(now.Year(), int(now.Month())).Days
	if day > lastDay {
		day = lastDay
	}
	return now.Day() == day
}
