// Command replay checks recorded snake traces: each game is re-simulated from
// its seed and recorded inputs, and every tick is compared with the trace.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/brensch/gridsnake/logging"
	"github.com/brensch/gridsnake/trace"
	"github.com/brensch/gridsnake/tui"
)

func main() {
	board := flag.Bool("board", false, "Print the final board of each game")
	logFormat := flag.String("log-format", logging.FormatText, "Log format: pretty, json or text")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] trace.parquet...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid -log-level: %v", err)
	}
	logger, err := logging.New(os.Stderr, *logFormat, level)
	if err != nil {
		log.Fatalf("Invalid -log-format: %v", err)
	}

	failed := 0
	for _, path := range flag.Args() {
		frames, err := trace.ReadFile(path)
		if err != nil {
			logger.Error("read trace", "path", path, "err", err)
			failed++
			continue
		}

		final, err := trace.Verify(frames)
		if err != nil {
			logger.Error("replay mismatch", "path", path, "err", err)
			fmt.Printf("%s  FAIL  %v\n", path, err)
			failed++
			continue
		}

		last := frames[len(frames)-1]
		outcome := "in progress"
		if final.GameOver {
			outcome = last.Outcome
		}
		fmt.Printf("%s  OK  game=%s seed=%d ticks=%d score=%d length=%d outcome=%s\n",
			path, last.GameID, last.Seed, last.Tick, final.Score, len(final.Snake), outcome)
		logger.Debug("replay ok", "path", path, "frames", len(frames))

		if *board {
			fmt.Print(tui.RenderPlain(final))
			fmt.Println()
		}
	}

	if failed > 0 {
		log.Fatalf("%d of %d traces failed", failed, flag.NArg())
	}
}
