// Package board builds shuffled card decks for a level configuration.
// Generation is deterministic for a given rand source, which keeps
// gameplay reproducible under a fixed seed.
package board

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-memory/internal/game/level"
)

// ErrNilRand is returned when no randomness source is supplied.
var ErrNilRand = errors.New("board: rand source must not be nil")

// Card is one face-down tile on the board. Exactly two cards share each
// token. FaceUp is mutated by the match engine; everything else is fixed
// at generation time.
type Card struct {
	Token    rune
	Position int
	FaceUp   bool
}

// Generate produces a shuffled deck of cfg.CardCount cards using the
// given rand source. Every token from the level's alphabet slice appears
// exactly twice. The optional alphabet overrides the built-in icon set
// (see level.Config.Tokens).
func Generate(cfg level.Config, rng *rand.Rand, alphabet []rune) ([]Card, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if cfg.PairCount < 1 || cfg.CardCount != cfg.PairCount*2 {
		return nil, fmt.Errorf("board: malformed level config %+v", cfg)
	}

	tokens := cfg.Tokens(alphabet)

	deck := make([]rune, 0, cfg.CardCount)
	deck = append(deck, tokens...)
	deck = append(deck, tokens...)

	// Fisher-Yates; uniform over all permutations of the multiset.
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	cards := make([]Card, len(deck))
	for i, tok := range deck {
		cards[i] = Card{Token: tok, Position: i}
	}
	return cards, nil
}
