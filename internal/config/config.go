// Package config provides YAML-based game configuration loading for the
// memory game: icon set, presentation timings and leaderboard display.
package config

import "time"

// GameConfig contains all tunable configuration for the memory game.
// Scoring and board-shape formulas are game rules, not configuration,
// and live in the game packages.
type GameConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Gameplay    GameplayConfig    `yaml:"gameplay"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// BoardConfig defines the card appearance.
type BoardConfig struct {
	// Icons is the alphabet cards draw their tokens from. Alphabets
	// shorter than 9 runes fall back to the built-in set.
	Icons string `yaml:"icons"`
}

// GameplayConfig defines attempt-level behavior.
type GameplayConfig struct {
	UnflipDelayMs int `yaml:"unflip_delay_ms"` // reveal time for a mismatched pair
	StartLevel    int `yaml:"start_level"`     // 0 resumes from recorded progress
}

// LeaderboardConfig defines the leaderboard screen.
type LeaderboardConfig struct {
	Limit         int    `yaml:"limit"`
	DefaultFilter string `yaml:"default_filter"` // "daily" or "all"
}

// UnflipDelay returns the configured mismatch reveal time, falling back
// to one second for zero or negative values.
func (c GameplayConfig) UnflipDelay() time.Duration {
	if c.UnflipDelayMs <= 0 {
		return time.Second
	}
	return time.Duration(c.UnflipDelayMs) * time.Millisecond
}

// IconRunes returns the configured icon alphabet as runes.
func (c BoardConfig) IconRunes() []rune {
	return []rune(c.Icons)
}
