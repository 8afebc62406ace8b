package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/logging"
	"github.com/brensch/gridsnake/rules"
	"github.com/brensch/gridsnake/session"
	"github.com/brensch/gridsnake/trace"
	"github.com/brensch/gridsnake/tui"
)

func main() {
	rows := flag.Int("rows", rules.DefaultRows, "Board height in cells")
	cols := flag.Int("cols", rules.DefaultCols, "Board width in cells")
	tick := flag.Duration("tick", session.DefaultTickInterval, "Time between simulation ticks")
	seed := flag.Uint64("seed", 0, "Food RNG seed for the first game (0 = random per game)")
	logFile := flag.String("log-file", "snake.log", "Log file (the terminal belongs to the game; empty discards logs)")
	logFormat := flag.String("log-format", logging.FormatPretty, "Log format: pretty, json or text")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	traceDir := flag.String("trace-dir", "", "If set, write one Parquet tick trace per game into this directory")
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid -log-level: %v", err)
	}
	out, err := logging.OpenFile(*logFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer out.Close()
	logger, err := logging.New(out, *logFormat, level)
	if err != nil {
		log.Fatalf("Invalid -log-format: %v", err)
	}

	cfg := session.Config{
		Rows:         int32(*rows),
		Cols:         int32(*cols),
		TickInterval: *tick,
		Seed:         *seed,
	}

	opts := []session.Option{session.WithLogger(logger)}
	if *traceDir != "" {
		opts = append(opts, session.WithRecorder(trace.NewRecorder(*traceDir, logger)))
	}

	sess, err := session.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("snake starting", "rows", cfg.Rows, "cols", cfg.Cols, "tick", cfg.TickInterval, "trace_dir", *traceDir)

	p := tea.NewProgram(tui.New(sess, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, runErr := p.Run()

	if err := sess.Close(); err != nil {
		logger.Error("trace flush failed", "err", err)
		fmt.Fprintf(os.Stderr, "trace flush failed: %v\n", err)
	}

	final := sess.State()
	logger.Info("snake exiting", "score", final.Score, "game_over", final.GameOver)
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Fatalf("UI error: %v", runErr)
	}
	fmt.Printf("Final score: %d\n", final.Score)
}
