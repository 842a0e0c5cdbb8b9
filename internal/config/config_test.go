package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	def := DefaultGameConfig()
	if cfg.Gameplay.UnflipDelayMs != def.Gameplay.UnflipDelayMs {
		t.Errorf("UnflipDelayMs = %d, expected %d", cfg.Gameplay.UnflipDelayMs, def.Gameplay.UnflipDelayMs)
	}
	if cfg.Leaderboard.Limit != def.Leaderboard.Limit {
		t.Errorf("Leaderboard.Limit = %d, expected %d", cfg.Leaderboard.Limit, def.Leaderboard.Limit)
	}
	if len(cfg.Board.IconRunes()) != 18 {
		t.Errorf("default alphabet has %d icons, expected 18", len(cfg.Board.IconRunes()))
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("gameplay:\n  unflip_delay_ms: 500\nleaderboard:\n  limit: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.UnflipDelayMs != 500 {
		t.Errorf("UnflipDelayMs = %d, expected 500", cfg.Gameplay.UnflipDelayMs)
	}
	if cfg.Leaderboard.Limit != 5 {
		t.Errorf("Leaderboard.Limit = %d, expected 5", cfg.Leaderboard.Limit)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing custom path should fail")
	}
}

func TestUnflipDelayFallback(t *testing.T) {
	tests := []struct {
		ms       int
		expected time.Duration
	}{
		{1000, time.Second},
		{250, 250 * time.Millisecond},
		{0, time.Second},
		{-5, time.Second},
	}

	for _, tc := range tests {
		got := GameplayConfig{UnflipDelayMs: tc.ms}.UnflipDelay()
		if got != tc.expected {
			t.Errorf("UnflipDelay(%d ms) = %v, expected %v", tc.ms, got, tc.expected)
		}
	}
}
