package trace

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
)

type gameWriteRequest struct {
	gameID string
	frames []Frame
}

// Recorder buffers the frames of the game in progress and hands finished
// games to a background writer, so a tick never waits on disk.
type Recorder struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	pending []Frame
	closed  bool

	writes chan gameWriteRequest
	done   chan struct{}

	// Written by the writer goroutine; read after done is closed.
	paths []string
	errs  []error
}

// NewRecorder starts a recorder writing one Parquet file per game into dir.
func NewRecorder(dir string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		dir:    dir,
		logger: logger,
		writes: make(chan gameWriteRequest, 16),
		done:   make(chan struct{}),
	}
	go r.writerLoop()
	return r
}

// Record appends a frame to the current game.
func (r *Recorder) Record(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.pending = append(r.pending, f)
}

// EndGame queues the current game for writing. It is a no-op when nothing
// was recorded since the last call.
func (r *Recorder) EndGame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endGameLocked()
}

func (r *Recorder) endGameLocked() {
	if r.closed || len(r.pending) == 0 {
		return
	}
	frames := r.pending
	r.pending = nil
	r.writes <- gameWriteRequest{gameID: frames[0].GameID, frames: frames}
}

// Close writes any game in progress, waits for the writer to drain and
// returns the joined write errors.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return errors.Join(r.errs...)
	}
	r.endGameLocked()
	r.closed = true
	close(r.writes)
	r.mu.Unlock()

	<-r.done
	return errors.Join(r.errs...)
}

// Paths waits for Close to finish and lists the files written.
func (r *Recorder) Paths() []string {
	<-r.done
	return append([]string(nil), r.paths...)
}

func (r *Recorder) writerLoop() {
	defer close(r.done)
	for req := range r.writes {
		outPath := filepath.Join(r.dir, FileName(req.gameID))
		if err := WriteFile(outPath, req.frames); err != nil {
			r.logger.Error("trace write failed", "game_id", req.gameID, "frames", len(req.frames), "err", err)
			r.errs = append(r.errs, err)
			continue
		}
		r.logger.Info("trace written", "game_id", req.gameID, "frames", len(req.frames), "path", outPath)
		r.paths = append(r.paths, outPath)
	}
}
