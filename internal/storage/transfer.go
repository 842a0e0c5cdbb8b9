package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vovakirdan/tui-memory/internal/rank"
)

// scoreJSON is the wire shape for score transfer. Exports always write
// the snake_case fields; imports additionally accept the camelCase
// variants older exports and third-party backends used, so everything is
// normalized into rank.Record right at this boundary.
type scoreJSON struct {
	Username       string `json:"username"`
	Level          int    `json:"level"`
	Moves          int    `json:"moves"`
	TimeSeconds    *int   `json:"time_seconds,omitempty"`
	TimeSecondsAlt *int   `json:"timeSeconds,omitempty"`
	Points         int    `json:"points"`
	Date           string `json:"date,omitempty"`
	DateAlt        string `json:"dateKey,omitempty"`
}

// normalize converts one wire record into the canonical shape.
func (j scoreJSON) normalize() (rank.Record, error) {
	rec := rank.Record{
		Username: j.Username,
		Level:    j.Level,
		Moves:    j.Moves,
		Points:   j.Points,
		DateKey:  j.Date,
	}

	switch {
	case j.TimeSeconds != nil:
		rec.ElapsedSeconds = *j.TimeSeconds
	case j.TimeSecondsAlt != nil:
		rec.ElapsedSeconds = *j.TimeSecondsAlt
	}
	if rec.DateKey == "" {
		rec.DateKey = j.DateAlt
	}

	if err := rec.Validate(); err != nil {
		return rank.Record{}, err
	}
	return rec, nil
}

// ExportScores writes every stored score record to w as a JSON array in
// the canonical snake_case field naming.
func (s *Store) ExportScores(w io.Writer) error {
	records, err := s.AllScores()
	if err != nil {
		return err
	}

	out := make([]scoreJSON, len(records))
	for i, rec := range records {
		elapsed := rec.ElapsedSeconds
		out[i] = scoreJSON{
			Username:    rec.Username,
			Level:       rec.Level,
			Moves:       rec.Moves,
			TimeSeconds: &elapsed,
			Points:      rec.Points,
			Date:        rec.DateKey,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("storage: cannot encode scores: %w", err)
	}
	return nil
}

// ImportScores reads a JSON array of score records from r, normalizes
// field-name variants, and appends each record to the store. Returns the
// number of records imported; stops at the first malformed record so a
// bad file doesn't half-apply silently.
func (s *Store) ImportScores(r io.Reader) (int, error) {
	var in []scoreJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("storage: cannot decode scores: %w", err)
	}

	imported := 0
	for i, j := range in {
		rec, err := j.normalize()
		if err != nil {
			return imported, fmt.Errorf("storage: record %d: %w", i, err)
		}
		if _, err := s.AppendScore(rec); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}
