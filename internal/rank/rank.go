// Package rank aggregates historical score records into a global
// leaderboard: best run per user per level, summed into a total, sorted
// descending. Aggregation is a full recompute on every call; record
// volumes are leaderboard-scale, so no caching is needed.
package rank

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-memory/internal/game/score"
)

// ErrInvalidRecord is returned when a record's fields are outside the
// documented domain.
var ErrInvalidRecord = errors.New("rank: invalid record")

// DateLayout is the calendar-date format used for record date keys and
// the daily filter.
const DateLayout = "2006-01-02"

// Record is the canonical persisted shape of one winning run. External
// representations (database rows, imported JSON) are normalized into
// this before anything else sees them.
type Record struct {
	Username       string
	Level          int
	Moves          int
	ElapsedSeconds int
	Points         int // 0 on legacy records; recomputed during aggregation
	DateKey        string
}

// Entry is one leaderboard row: a user's best-per-level totals.
type Entry struct {
	Username   string
	TotalScore int
	MaxLevel   int
}

// Filter selects which records take part in the aggregation.
type Filter struct {
	Daily   bool
	DateKey string // required when Daily
}

// All includes every record.
func All() Filter { return Filter{} }

// Daily includes only records from the given calendar day.
func Daily(dateKey string) Filter { return Filter{Daily: true, DateKey: dateKey} }

// Today is the daily filter for the current date.
func Today() Filter { return Daily(time.Now().Format(DateLayout)) }

// Aggregate computes the sorted leaderboard from raw records.
//
// Per user and level only the highest-scoring run counts; points missing
// from legacy records are recomputed from level, moves and time. Ties
// within a level keep the first-seen record, and users with equal totals
// keep their first-encountered order.
func Aggregate(records []Record, f Filter) ([]Entry, error) {
	type best struct {
		points map[int]int // level -> best points
		order  int         // first-encountered position, the sort tie-break
	}

	users := make(map[string]*best)
	var names []string

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if f.Daily && rec.DateKey != f.DateKey {
			continue
		}

		points := rec.Points
		if points == 0 {
			recomputed, err := score.ComputePoints(rec.Level, rec.Moves, rec.ElapsedSeconds)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			points = recomputed
		}

		u, ok := users[rec.Username]
		if !ok {
			u = &best{points: make(map[int]int), order: len(names)}
			users[rec.Username] = u
			names = append(names, rec.Username)
		}
		if prev, seen := u.points[rec.Level]; !seen || points > prev {
			u.points[rec.Level] = points
		}
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		u := users[name]
		e := Entry{Username: name}
		for lvl, pts := range u.points {
			e.TotalScore += pts
			if lvl > e.MaxLevel {
				e.MaxLevel = lvl
			}
		}
		entries = append(entries, e)
	}

	// Stable over first-encountered order, so equal totals don't jump
	// around between recomputes.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})

	return entries, nil
}

// Validate reports whether the record's fields are inside the documented
// domain. Adapters normalizing external representations call this before
// handing records to the rest of the system.
func (rec Record) Validate() error {
	switch {
	case rec.Username == "":
		return fmt.Errorf("%w: empty username", ErrInvalidRecord)
	case rec.Level < 1:
		return fmt.Errorf("%w: level %d", ErrInvalidRecord, rec.Level)
	case rec.Moves < 1:
		return fmt.Errorf("%w: moves %d", ErrInvalidRecord, rec.Moves)
	case rec.ElapsedSeconds < 0:
		return fmt.Errorf("%w: elapsed seconds %d", ErrInvalidRecord, rec.ElapsedSeconds)
	case rec.Points < 0:
		return fmt.Errorf("%w: points %d", ErrInvalidRecord, rec.Points)
	}
	return nil
}
