// Package session runs one player's snake games: it owns the current state,
// coalesces input between ticks, and advances the rules once per tick.
//
// A Session does not own a timer. The caller (the terminal UI, or a test)
// calls Tick at its own fixed rate and must not call it concurrently.
package session

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/brensch/gridsnake/game"
	"github.com/brensch/gridsnake/rules"
	"github.com/brensch/gridsnake/trace"
)

// Recorder receives every frame of every game. trace.Recorder implements it.
type Recorder interface {
	Record(trace.Frame)
	EndGame()
	Close() error
}

const (
	StatusGameOver = "Game Over"
	StatusPaused   = "Paused"
)

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

type Session struct {
	cfg      Config
	logger   *slog.Logger
	recorder Recorder
	inbox    *Mailbox

	mu          sync.Mutex
	state       *game.GameState
	rng         rules.Source
	gameID      string
	seed        uint64
	games       uint64
	ticks       int64
	paused      bool
	lastOutcome rules.Outcome
}

func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:   cfg,
		inbox: NewMailbox(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.mu.Lock()
	s.startGameLocked()
	s.mu.Unlock()
	return s, nil
}

func (s *Session) Config() Config { return s.cfg }

// State returns the current state. Callers must treat it as read-only.
func (s *Session) State() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

func (s *Session) Seed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Ticks is the number of ticks the current game has advanced.
func (s *Session) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// LastOutcome reports what the most recent tick did.
func (s *Session) LastOutcome() rules.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOutcome
}

func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Running reports whether Tick would advance the game.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.paused && !s.state.GameOver
}

// Status is the overlay label: game over wins over paused.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state.GameOver:
		return StatusGameOver
	case s.paused:
		return StatusPaused
	}
	return ""
}

// Queue offers a direction for the next tick. It is clamped against the
// current heading now, and again by the rules when the tick runs, since the
// heading may change in between. Only the latest queued direction survives.
func (s *Session) Queue(d game.Direction) {
	if !d.Valid() {
		return
	}
	s.mu.Lock()
	if s.state.GameOver {
		s.mu.Unlock()
		return
	}
	d = rules.ResolveDirection(s.state.Direction, d)
	s.mu.Unlock()

	s.inbox.Put(d)
}

// Tick advances the game once, consuming the pending direction. It does
// nothing while paused or after the game has ended.
func (s *Session) Tick() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused || s.state.GameOver {
		return s.state
	}

	input := s.inbox.Take()
	next, outcome := rules.Step(s.state, rules.StepOptions{Rand: s.rng, Input: input})
	s.ticks++
	s.state = next
	s.lastOutcome = outcome

	if s.recorder != nil {
		s.recorder.Record(trace.NewFrame(s.gameID, s.seed, s.ticks, input, outcome.String(), next))
	}

	switch outcome {
	case rules.Ate:
		s.logger.Debug("food eaten", "game_id", s.gameID, "tick", s.ticks, "score", next.Score, "length", len(next.Snake))
	case rules.HitWall, rules.HitSelf, rules.BoardFull:
		s.logger.Info("game over",
			"game_id", s.gameID,
			"reason", outcome.String(),
			"tick", s.ticks,
			"score", next.Score,
			"length", len(next.Snake),
		)
		if s.recorder != nil {
			s.recorder.EndGame()
		}
	}
	return next
}

// TogglePause flips the paused flag and returns the new value. State is kept.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	s.logger.Debug("pause toggled", "game_id", s.gameID, "paused", s.paused, "tick", s.ticks)
	return s.paused
}

// Restart discards the current game and starts a fresh, unpaused one.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.GameOver {
		s.logger.Info("game abandoned", "game_id", s.gameID, "tick", s.ticks, "score", s.state.Score)
		if s.recorder != nil {
			s.recorder.EndGame()
		}
	}
	s.startGameLocked()
}

// Close flushes the recorder, if any.
func (s *Session) Close() error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Close()
}

func (s *Session) startGameLocked() {
	s.games++
	s.seed = s.cfg.Seed + s.games - 1
	if s.cfg.Seed == 0 {
		s.seed = rand.Uint64() | 1
	}
	s.rng = rules.SeededSource(s.seed)
	s.gameID = uuid.NewString()
	s.ticks = 0
	s.paused = false
	s.lastOutcome = rules.Moved
	s.inbox.Clear()

	s.state = rules.CreateInitialState(rules.InitOptions{Rows: s.cfg.Rows, Cols: s.cfg.Cols, Rand: s.rng})
	if s.recorder != nil {
		s.recorder.Record(trace.NewFrame(s.gameID, s.seed, 0, game.None, "", s.state))
	}
	s.logger.Info("game started", "game_id", s.gameID, "seed", s.seed, "rows", s.cfg.Rows, "cols", s.cfg.Cols)
}
