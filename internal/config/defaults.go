package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultGameConfig returns the default memory game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Icons: "🚀🌟🎮💎👻🍕🐱🦄🌈🍦🎈🎁🏆🔥⚡💣🍎🌻",
		},
		Gameplay: GameplayConfig{
			UnflipDelayMs: 1000,
			StartLevel:    0,
		},
		Leaderboard: LeaderboardConfig{
			Limit:         10,
			DefaultFilter: "daily",
		},
	}
}
