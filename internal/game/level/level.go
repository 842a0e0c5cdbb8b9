// Package level derives board shape and move limits from a level number.
// Configuration is pure arithmetic; nothing here is persisted.
package level

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned when a level number is below 1.
// Callers passing a bad level have a bug; clamping would hide it.
var ErrInvalidLevel = errors.New("level: level must be >= 1")

// Alphabet is the fixed icon set boards draw their tokens from.
// 18 distinct symbols; the pair cap keeps any single board well under that.
var Alphabet = []rune("🚀🌟🎮💎👻🍕🐱🦄🌈🍦🎈🎁🏆🔥⚡💣🍎🌻")

// MaxPairs caps the pair count per board so tokens stay unambiguous.
const MaxPairs = 9

// Config describes the board shape and move budget for one level.
type Config struct {
	Level      int // 1-based level number
	PairCount  int // distinct tokens on the board
	CardCount  int // always 2 * PairCount
	MoveBudget int // moves allowed before the attempt fails
}

// Configure returns the board configuration for the given level.
//
// Pairs grow by two per level up to MaxPairs; the move budget leaves a
// buffer of 6 moves over a perfect two-flips-per-pair game, so every
// level is theoretically winnable.
func Configure(lvl int) (Config, error) {
	if lvl < 1 {
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidLevel, lvl)
	}

	pairs := lvl * 2
	if pairs > MaxPairs {
		pairs = MaxPairs
	}

	return Config{
		Level:      lvl,
		PairCount:  pairs,
		CardCount:  pairs * 2,
		MoveBudget: pairs*2 + 6,
	}, nil
}

// Tokens returns the PairCount distinct tokens for this config, drawn
// from the given alphabet. Falls back to the built-in Alphabet when the
// provided one is too small to supply distinct tokens.
func (c Config) Tokens(alphabet []rune) []rune {
	if len(alphabet) < c.PairCount {
		alphabet = Alphabet
	}
	tokens := make([]rune, c.PairCount)
	for i := 0; i < c.PairCount; i++ {
		tokens[i] = alphabet[i%len(alphabet)]
	}
	return tokens
}
