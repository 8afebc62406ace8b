// Package trace records games tick by tick into Parquet files and replays
// them through the rules to check they reproduce.
//
// A trace file holds exactly one game: the initial state at tick 0 followed
// by one Frame per tick that advanced the game.
package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/gridsnake/game"
	"github.com/brensch/gridsnake/rules"
)

const schemaName = "snake_tick_v1"

var (
	ErrEmptyTrace = errors.New("empty trace")
	ErrDiverged   = errors.New("replay diverged from trace")
)

// Frame is the state after one tick, plus what drove it.
//
// Input is the direction taken from the mailbox for this tick ("NONE" when
// there was none); Outcome is the rules.Outcome string, empty at tick 0.
type Frame struct {
	GameID    string `parquet:"game_id,dict"`
	Seed      uint64 `parquet:"seed"`
	Tick      int64  `parquet:"tick"`
	CreatedNs int64  `parquet:"created_ns"`

	Rows int32 `parquet:"rows"`
	Cols int32 `parquet:"cols"`

	Input     string `parquet:"input,dict"`
	Direction string `parquet:"direction,dict"`
	Outcome   string `parquet:"outcome,dict"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`

	HasFood bool  `parquet:"has_food"`
	FoodX   int32 `parquet:"food_x"`
	FoodY   int32 `parquet:"food_y"`

	Score    int32 `parquet:"score"`
	GameOver bool  `parquet:"game_over"`
}

// NewFrame snapshots state. The state's slices are copied.
func NewFrame(gameID string, seed uint64, tick int64, input game.Direction, outcome string, state *game.GameState) Frame {
	f := Frame{
		GameID:    gameID,
		Seed:      seed,
		Tick:      tick,
		CreatedNs: time.Now().UnixNano(),
		Rows:      state.Rows,
		Cols:      state.Cols,
		Input:     input.String(),
		Direction: state.Direction.String(),
		Outcome:   outcome,
		BodyX:     make([]int32, len(state.Snake)),
		BodyY:     make([]int32, len(state.Snake)),
		Score:     state.Score,
		GameOver:  state.GameOver,
	}
	for i, p := range state.Snake {
		f.BodyX[i] = p.X
		f.BodyY[i] = p.Y
	}
	if state.Food != nil {
		f.HasFood = true
		f.FoodX = state.Food.X
		f.FoodY = state.Food.Y
	}
	return f
}

// State rebuilds the game state stored in f.
func (f Frame) State() (*game.GameState, error) {
	if len(f.BodyX) != len(f.BodyY) {
		return nil, fmt.Errorf("tick %d: body_x has %d entries, body_y %d", f.Tick, len(f.BodyX), len(f.BodyY))
	}
	dir, err := game.ParseDirection(f.Direction)
	if err != nil {
		return nil, fmt.Errorf("tick %d: %w", f.Tick, err)
	}
	s := &game.GameState{
		Rows:      f.Rows,
		Cols:      f.Cols,
		Snake:     make([]game.Point, len(f.BodyX)),
		Direction: dir,
		Score:     f.Score,
		GameOver:  f.GameOver,
	}
	for i := range f.BodyX {
		s.Snake[i] = game.Point{X: f.BodyX[i], Y: f.BodyY[i]}
	}
	if f.HasFood {
		s.Food = &game.Point{X: f.FoodX, Y: f.FoodY}
	}
	return s, nil
}

// FileName is the trace file name for a game.
func FileName(gameID string) string {
	return fmt.Sprintf("game_%s.parquet", gameID)
}

// WriteFile writes frames to outPath through a temp file in outDir/tmp and
// a rename, so readers never see a partial file.
func WriteFile(outPath string, frames []Frame) error {
	outDir := filepath.Dir(outPath)
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return fmt.Errorf("create tmp dir: %w", err)
	}

	tmpPath := filepath.Join(tmpDir, filepath.Base(outPath)+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, frames,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaName),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadFile loads every frame in a trace file, in file order.
func ReadFile(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	reader := parquet.NewGenericReader[Frame](pf)
	defer reader.Close()

	frames := make([]Frame, reader.NumRows())
	n := 0
	for n < len(frames) {
		got, err := reader.Read(frames[n:])
		n += got
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
	}
	return frames[:n], nil
}

// Verify replays a single game trace through the rules from its seed and
// recorded inputs, and returns the final state. Any frame that does not match
// the replayed state yields an error wrapping ErrDiverged.
func Verify(frames []Frame) (*game.GameState, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyTrace
	}
	first := frames[0]
	if first.Tick != 0 {
		return nil, fmt.Errorf("%w: first frame is tick %d, want 0", ErrDiverged, first.Tick)
	}

	rng := rules.SeededSource(first.Seed)
	state := rules.CreateInitialState(rules.InitOptions{Rows: first.Rows, Cols: first.Cols, Rand: rng})
	if err := compare(first, state); err != nil {
		return nil, err
	}

	for i, f := range frames[1:] {
		if f.GameID != first.GameID {
			return nil, fmt.Errorf("frame %d belongs to game %s, want %s", i+1, f.GameID, first.GameID)
		}
		if f.Tick != int64(i+1) {
			return nil, fmt.Errorf("%w: frame %d is tick %d", ErrDiverged, i+1, f.Tick)
		}
		input, err := game.ParseDirection(f.Input)
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", f.Tick, err)
		}
		next, outcome := rules.Step(state, rules.StepOptions{Rand: rng, Input: input})
		if f.Outcome != outcome.String() {
			return nil, fmt.Errorf("%w: tick %d outcome %s, trace says %s", ErrDiverged, f.Tick, outcome, f.Outcome)
		}
		if err := compare(f, next); err != nil {
			return nil, err
		}
		state = next
	}
	return state, nil
}

func compare(f Frame, replayed *game.GameState) error {
	recorded, err := f.State()
	if err != nil {
		return err
	}
	if recorded.Rows != replayed.Rows || recorded.Cols != replayed.Cols {
		return fmt.Errorf("%w: tick %d board %dx%d, replay %dx%d", ErrDiverged, f.Tick, recorded.Cols, recorded.Rows, replayed.Cols, replayed.Rows)
	}
	if recorded.Direction != replayed.Direction || recorded.Score != replayed.Score || recorded.GameOver != replayed.GameOver {
		return fmt.Errorf("%w: tick %d dir/score/over %s/%d/%v, replay %s/%d/%v", ErrDiverged, f.Tick,
			recorded.Direction, recorded.Score, recorded.GameOver, replayed.Direction, replayed.Score, replayed.GameOver)
	}
	if (recorded.Food == nil) != (replayed.Food == nil) || (recorded.Food != nil && *recorded.Food != *replayed.Food) {
		return fmt.Errorf("%w: tick %d food differs", ErrDiverged, f.Tick)
	}
	if len(recorded.Snake) != len(replayed.Snake) {
		return fmt.Errorf("%w: tick %d snake length %d, replay %d", ErrDiverged, f.Tick, len(recorded.Snake), len(replayed.Snake))
	}
	for i := range recorded.Snake {
		if recorded.Snake[i] != replayed.Snake[i] {
			return fmt.Errorf("%w: tick %d segment %d at %v, replay %v", ErrDiverged, f.Tick, i, recorded.Snake[i], replayed.Snake[i])
		}
	}
	return nil
}
