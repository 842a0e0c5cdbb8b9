// Package engine owns the state of a single level attempt: which cards
// are revealed, how many moves are spent, and whether the attempt has
// been won or lost. It is pure logic with no timers and no UI; the
// platform feeds it flip requests and one-second ticks.
package engine

import (
	"time"

	"github.com/vovakirdan/tui-memory/internal/game/board"
	"github.com/vovakirdan/tui-memory/internal/game/level"
)

// UnflipDelay is how long a mismatched pair stays revealed. The board
// stays locked for the whole delay; the platform calls CompleteUnflip
// when it elapses.
const UnflipDelay = time.Second

// Phase is the current state of the attempt's state machine.
type Phase int

const (
	PhaseIdle           Phase = iota // no cards selected
	PhaseAwaitingSecond              // one card revealed
	PhaseResolving                   // mismatch revealed, board locked
	PhaseWon                         // terminal
	PhaseLost                        // terminal
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseAwaitingSecond:
		return "AwaitingSecond"
	case PhaseResolving:
		return "Resolving"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Outcome classifies what a single Flip call did.
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // no-op: locked, face-up, stale or terminal
	OutcomeFlipped                 // first card of a move revealed
	OutcomeMatch                   // pair matched, attempt continues
	OutcomeMismatch                // pair differs, board locked until unflip
	OutcomeWon                     // final pair matched
	OutcomeLost                    // budget exhausted with pairs remaining
)

// FlipResult reports the transition caused by one flip request.
type FlipResult struct {
	Outcome Outcome
	Card    *board.Card // card revealed by this flip, nil when ignored
}

// Events are optional callbacks fired on attempt transitions. Nil
// callbacks are skipped. Terminal events fire exactly once per attempt.
type Events struct {
	LevelWon       func(level, moves, elapsedSeconds int)
	LevelLost      func(level, moves int)
	MoveRegistered func(movesUsed, moveBudget int)
	BoardReady     func(cards []board.Card)
}

// Engine drives one level attempt. All calls must come from a single
// goroutine; the locked flag serializes flips against the pending unflip,
// not against concurrent callers.
type Engine struct {
	cfg     level.Config
	cards   []board.Card
	flipped []int // positions of the current selection, at most 2
	moves   int
	matched int
	locked  bool
	started bool
	elapsed int
	phase   Phase
	events  Events
}

// New creates an engine for the given level config and freshly generated
// deck, and fires BoardReady.
func New(cfg level.Config, cards []board.Card, events Events) *Engine {
	e := &Engine{events: events}
	e.Reset(cfg, cards)
	return e
}

// Reset starts a fresh attempt on a new deck. Which level the new config
// belongs to (retry, next, back to 1) is the caller's decision.
func (e *Engine) Reset(cfg level.Config, cards []board.Card) {
	e.cfg = cfg
	e.cards = cards
	e.flipped = e.flipped[:0]
	e.moves = 0
	e.matched = 0
	e.locked = false
	e.started = false
	e.elapsed = 0
	e.phase = PhaseIdle

	if e.events.BoardReady != nil {
		e.events.BoardReady(e.cards)
	}
}

// Flip requests revealing the card at the given board position.
// Invalid requests (locked board, face-up card, spent budget, stale
// position, finished attempt) are silently ignored: rapid or late input
// must never corrupt the attempt.
func (e *Engine) Flip(position int) FlipResult {
	ignored := FlipResult{Outcome: OutcomeIgnored}

	if e.phase == PhaseWon || e.phase == PhaseLost || e.locked {
		return ignored
	}
	if position < 0 || position >= len(e.cards) {
		return ignored
	}
	if e.moves >= e.cfg.MoveBudget {
		return ignored
	}
	card := &e.cards[position]
	if card.FaceUp {
		return ignored
	}

	// The clock starts on the attempt's very first reveal.
	e.started = true
	card.FaceUp = true
	e.flipped = append(e.flipped, position)

	if len(e.flipped) < 2 {
		e.phase = PhaseAwaitingSecond
		return FlipResult{Outcome: OutcomeFlipped, Card: card}
	}

	e.moves++
	if e.events.MoveRegistered != nil {
		e.events.MoveRegistered(e.moves, e.cfg.MoveBudget)
	}

	if e.cards[e.flipped[0]].Token == card.Token {
		return e.resolveMatch(card)
	}
	return e.resolveMismatch(card)
}

// resolveMatch handles a matching second flip. The match is evaluated
// before the budget: a completing match always wins, even when it lands
// exactly on the last budgeted move.
func (e *Engine) resolveMatch(card *board.Card) FlipResult {
	e.matched++
	e.flipped = e.flipped[:0]

	if e.matched == e.cfg.PairCount {
		e.phase = PhaseWon
		if e.events.LevelWon != nil {
			e.events.LevelWon(e.cfg.Level, e.moves, e.elapsed)
		}
		return FlipResult{Outcome: OutcomeWon, Card: card}
	}

	if e.moves >= e.cfg.MoveBudget {
		// The last budgeted move matched, but pairs remain.
		e.phase = PhaseLost
		if e.events.LevelLost != nil {
			e.events.LevelLost(e.cfg.Level, e.moves)
		}
		return FlipResult{Outcome: OutcomeLost, Card: card}
	}

	e.phase = PhaseIdle
	return FlipResult{Outcome: OutcomeMatch, Card: card}
}

// resolveMismatch handles a non-matching second flip. On the losing move
// the pair stays revealed; otherwise the board locks until CompleteUnflip.
func (e *Engine) resolveMismatch(card *board.Card) FlipResult {
	if e.moves >= e.cfg.MoveBudget {
		e.flipped = e.flipped[:0]
		e.phase = PhaseLost
		if e.events.LevelLost != nil {
			e.events.LevelLost(e.cfg.Level, e.moves)
		}
		return FlipResult{Outcome: OutcomeLost, Card: card}
	}

	e.locked = true
	e.phase = PhaseResolving
	return FlipResult{Outcome: OutcomeMismatch, Card: card}
}

// CompleteUnflip turns the mismatched selection face down again and
// re-enables input. Called by the platform UnflipDelay after a mismatch;
// a no-op unless an unflip is actually pending.
func (e *Engine) CompleteUnflip() {
	if !e.locked {
		return
	}
	for _, pos := range e.flipped {
		e.cards[pos].FaceUp = false
	}
	e.flipped = e.flipped[:0]
	e.locked = false
	e.phase = PhaseIdle
}

// Tick advances the elapsed-time clock by one second. Driven externally;
// it only feeds the clock and never touches move or match state. The
// clock runs from the first flip until the attempt ends.
func (e *Engine) Tick() {
	if e.started && e.phase != PhaseWon && e.phase != PhaseLost {
		e.elapsed++
	}
}

// Cards returns the live board. Callers must treat it as read-only.
func (e *Engine) Cards() []board.Card { return e.cards }

// Phase returns the current state-machine phase.
func (e *Engine) Phase() Phase { return e.phase }

// Locked reports whether the board is waiting on an unflip.
func (e *Engine) Locked() bool { return e.locked }

// Started reports whether the attempt's clock is running.
func (e *Engine) Started() bool { return e.started }

// Level returns the attempt's level number.
func (e *Engine) Level() int { return e.cfg.Level }

// Moves returns the moves spent so far.
func (e *Engine) Moves() int { return e.moves }

// MoveBudget returns the attempt's move limit.
func (e *Engine) MoveBudget() int { return e.cfg.MoveBudget }

// Matched returns how many pairs have been matched.
func (e *Engine) Matched() int { return e.matched }

// PairCount returns the total pairs on the board.
func (e *Engine) PairCount() int { return e.cfg.PairCount }

// Elapsed returns the attempt's elapsed seconds.
func (e *Engine) Elapsed() int { return e.elapsed }
