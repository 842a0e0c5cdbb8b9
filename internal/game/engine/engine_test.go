package engine

import (
	"testing"

	"github.com/vovakirdan/tui-memory/internal/game/board"
	"github.com/vovakirdan/tui-memory/internal/game/level"
)

// deck builds a board with the given tokens in fixed positions so tests
// control exactly which flips match.
func deck(tokens ...rune) []board.Card {
	cards := make([]board.Card, len(tokens))
	for i, tok := range tokens {
		cards[i] = board.Card{Token: tok, Position: i}
	}
	return cards
}

func twoPairConfig(budget int) level.Config {
	return level.Config{Level: 1, PairCount: 2, CardCount: 4, MoveBudget: budget}
}

func TestFirstMatchKeepsAttemptAlive(t *testing.T) {
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{})

	if r := e.Flip(0); r.Outcome != OutcomeFlipped {
		t.Fatalf("first flip outcome = %v, expected OutcomeFlipped", r.Outcome)
	}
	if e.Phase() != PhaseAwaitingSecond {
		t.Errorf("phase after first flip = %v, expected AwaitingSecond", e.Phase())
	}

	if r := e.Flip(1); r.Outcome != OutcomeMatch {
		t.Fatalf("matching flip outcome = %v, expected OutcomeMatch", r.Outcome)
	}
	if e.Matched() != 1 {
		t.Errorf("Matched() = %d, expected 1", e.Matched())
	}
	if e.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", e.Moves())
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase after non-final match = %v, expected Idle", e.Phase())
	}
}

func TestWinWithinBudget(t *testing.T) {
	var wins []struct{ level, moves, elapsed int }
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{
		LevelWon: func(lvl, moves, elapsed int) {
			wins = append(wins, struct{ level, moves, elapsed int }{lvl, moves, elapsed})
		},
	})

	e.Flip(0)
	e.Flip(1)
	r := e.Flip(2)
	if r.Outcome != OutcomeFlipped {
		t.Fatalf("flip outcome = %v, expected OutcomeFlipped", r.Outcome)
	}
	r = e.Flip(3)
	if r.Outcome != OutcomeWon {
		t.Fatalf("final flip outcome = %v, expected OutcomeWon", r.Outcome)
	}

	if len(wins) != 1 {
		t.Fatalf("LevelWon fired %d times, expected 1", len(wins))
	}
	// A perfect game uses exactly one move per pair.
	if wins[0].moves != e.PairCount() {
		t.Errorf("winning moves = %d, expected %d", wins[0].moves, e.PairCount())
	}
	if wins[0].level != 1 {
		t.Errorf("winning level = %d, expected 1", wins[0].level)
	}

	// Terminal: any further flips are ignored.
	if r := e.Flip(0); r.Outcome != OutcomeIgnored {
		t.Errorf("flip after win = %v, expected OutcomeIgnored", r.Outcome)
	}
}

func TestBudgetExhaustionMismatchLoses(t *testing.T) {
	lost := 0
	e := New(twoPairConfig(7), deck('A', 'A', 'B', 'B'), Events{
		LevelLost: func(lvl, moves int) {
			lost++
			if moves != 7 {
				t.Errorf("LevelLost moves = %d, expected 7", moves)
			}
		},
	})

	// Burn all 7 moves on the same mismatching pair.
	for i := 0; i < 7; i++ {
		e.Flip(0)
		r := e.Flip(2)
		if i < 6 {
			if r.Outcome != OutcomeMismatch {
				t.Fatalf("move %d outcome = %v, expected OutcomeMismatch", i+1, r.Outcome)
			}
			if !e.Locked() {
				t.Fatalf("board not locked after mismatch %d", i+1)
			}
			e.CompleteUnflip()
		} else {
			if r.Outcome != OutcomeLost {
				t.Fatalf("final move outcome = %v, expected OutcomeLost", r.Outcome)
			}
		}
	}

	if lost != 1 {
		t.Errorf("LevelLost fired %d times, expected 1", lost)
	}
	if e.Phase() != PhaseLost {
		t.Errorf("phase = %v, expected Lost", e.Phase())
	}

	// The losing pair stays revealed: no unflip delay at failure.
	cards := e.Cards()
	if !cards[0].FaceUp || !cards[2].FaceUp {
		t.Error("losing mismatch should stay revealed")
	}

	if r := e.Flip(1); r.Outcome != OutcomeIgnored {
		t.Errorf("flip after loss = %v, expected OutcomeIgnored", r.Outcome)
	}
}

func TestCompletingMatchOnLastMoveWins(t *testing.T) {
	won := 0
	e := New(twoPairConfig(2), deck('A', 'A', 'B', 'B'), Events{
		LevelWon: func(lvl, moves, elapsed int) { won++ },
	})

	e.Flip(0)
	e.Flip(1)
	e.Flip(2)
	r := e.Flip(3)

	// Match is evaluated before the budget check: finishing on the last
	// budgeted move is a win, not a loss.
	if r.Outcome != OutcomeWon {
		t.Fatalf("outcome = %v, expected OutcomeWon", r.Outcome)
	}
	if won != 1 {
		t.Errorf("LevelWon fired %d times, expected 1", won)
	}
}

func TestMatchOnLastMoveWithPairsRemainingLoses(t *testing.T) {
	lost := 0
	e := New(twoPairConfig(1), deck('A', 'A', 'B', 'B'), Events{
		LevelLost: func(lvl, moves int) { lost++ },
	})

	e.Flip(0)
	r := e.Flip(1)

	if r.Outcome != OutcomeLost {
		t.Fatalf("outcome = %v, expected OutcomeLost", r.Outcome)
	}
	if e.Matched() != 1 {
		t.Errorf("Matched() = %d, expected 1 (the match still counted)", e.Matched())
	}
	if lost != 1 {
		t.Errorf("LevelLost fired %d times, expected 1", lost)
	}
}

func TestLockedBoardIgnoresFlips(t *testing.T) {
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{})

	e.Flip(0)
	e.Flip(2) // mismatch, locks

	if r := e.Flip(1); r.Outcome != OutcomeIgnored {
		t.Errorf("flip while locked = %v, expected OutcomeIgnored", r.Outcome)
	}
	if e.Phase() != PhaseResolving {
		t.Errorf("phase = %v, expected Resolving", e.Phase())
	}

	e.CompleteUnflip()

	if e.Locked() {
		t.Error("board still locked after CompleteUnflip")
	}
	cards := e.Cards()
	if cards[0].FaceUp || cards[2].FaceUp {
		t.Error("mismatched pair still revealed after unflip")
	}

	// Input works again.
	if r := e.Flip(1); r.Outcome != OutcomeFlipped {
		t.Errorf("flip after unflip = %v, expected OutcomeFlipped", r.Outcome)
	}
}

func TestFaceUpAndStaleFlipsIgnored(t *testing.T) {
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{})

	e.Flip(0)
	if r := e.Flip(0); r.Outcome != OutcomeIgnored {
		t.Errorf("re-flipping a face-up card = %v, expected OutcomeIgnored", r.Outcome)
	}
	if r := e.Flip(-1); r.Outcome != OutcomeIgnored {
		t.Errorf("negative position = %v, expected OutcomeIgnored", r.Outcome)
	}
	if r := e.Flip(99); r.Outcome != OutcomeIgnored {
		t.Errorf("out-of-range position = %v, expected OutcomeIgnored", r.Outcome)
	}
	if e.Moves() != 0 {
		t.Errorf("ignored flips changed move count to %d", e.Moves())
	}
}

func TestClockRunsFromFirstFlipUntilTerminal(t *testing.T) {
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{})

	e.Tick()
	e.Tick()
	if e.Elapsed() != 0 {
		t.Errorf("clock ran before first flip: %d", e.Elapsed())
	}

	e.Flip(0)
	e.Tick()
	e.Tick()
	e.Tick()
	if e.Elapsed() != 3 {
		t.Errorf("Elapsed() = %d, expected 3", e.Elapsed())
	}

	e.Flip(1)
	e.Flip(2)
	e.Flip(3) // win
	e.Tick()
	if e.Elapsed() != 3 {
		t.Errorf("clock advanced after win: %d", e.Elapsed())
	}
}

func TestElapsedReportedInWinEvent(t *testing.T) {
	var gotElapsed int
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{
		LevelWon: func(lvl, moves, elapsed int) { gotElapsed = elapsed },
	})

	e.Flip(0)
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	e.Flip(1)
	e.Flip(2)
	e.Flip(3)

	if gotElapsed != 5 {
		t.Errorf("LevelWon elapsed = %d, expected 5", gotElapsed)
	}
}

func TestMoveRegisteredEvents(t *testing.T) {
	var moves []int
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{
		MoveRegistered: func(used, budget int) {
			moves = append(moves, used)
			if budget != 10 {
				t.Errorf("MoveRegistered budget = %d, expected 10", budget)
			}
		},
	})

	e.Flip(0)
	e.Flip(2) // move 1, mismatch
	e.CompleteUnflip()
	e.Flip(0)
	e.Flip(1) // move 2, match

	if len(moves) != 2 || moves[0] != 1 || moves[1] != 2 {
		t.Errorf("MoveRegistered sequence = %v, expected [1 2]", moves)
	}
}

func TestResetStartsFreshAttempt(t *testing.T) {
	boardsReady := 0
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{
		BoardReady: func(cards []board.Card) { boardsReady++ },
	})

	e.Flip(0)
	e.Flip(1)
	e.Tick()

	cfg, err := level.Configure(2)
	if err != nil {
		t.Fatalf("Configure(2) failed: %v", err)
	}
	e.Reset(cfg, deck('A', 'A', 'B', 'B', 'C', 'C', 'D', 'D'))

	if boardsReady != 2 {
		t.Errorf("BoardReady fired %d times, expected 2 (New + Reset)", boardsReady)
	}
	if e.Moves() != 0 || e.Matched() != 0 || e.Elapsed() != 0 || e.Started() {
		t.Errorf("Reset left stale state: moves=%d matched=%d elapsed=%d started=%v",
			e.Moves(), e.Matched(), e.Elapsed(), e.Started())
	}
	if e.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", e.Level())
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase after Reset = %v, expected Idle", e.Phase())
	}
}

func TestCompleteUnflipWithoutPendingIsNoop(t *testing.T) {
	e := New(twoPairConfig(10), deck('A', 'A', 'B', 'B'), Events{})

	e.CompleteUnflip()
	e.Flip(0)
	e.CompleteUnflip() // still nothing pending; selection must survive

	if cards := e.Cards(); !cards[0].FaceUp {
		t.Error("CompleteUnflip without a pending mismatch cleared the selection")
	}
	if e.Phase() != PhaseAwaitingSecond {
		t.Errorf("phase = %v, expected AwaitingSecond", e.Phase())
	}
}
