package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/platform/tui"
	"github.com/vovakirdan/arcade-classics/internal/replay"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate or watch a recorded round",
	Long: `Re-run a recorded round from its seed, config and inputs.

Without --watch the round is simulated as fast as possible, the final
frame is printed and the outcome is checked against the recorded one.
With --watch the round plays back in real time.

Playback controls:
  Space/P   - Pause
  Right/+   - Faster
  Left/-    - Slower
  Esc/Q     - Stop

Examples:
  arcade replay 12
  arcade replay 12 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the round back in real time")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		exitErr(nil, "invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr(nil, "opening replay database: %v", err)
	}

	rec, err := store.Replay(id)
	store.Close()
	if errors.Is(err, storage.ErrNotFound) {
		exitErr(nil, "no replay with id %d (see 'arcade replays')", id)
	}
	if err != nil {
		exitErr(nil, "loading replay: %v", err)
	}

	if flagWatch {
		if _, err := tui.RunWatch(rec, flagFPS); err != nil {
			exitErr(nil, "%v", err)
		}
		return
	}

	res, err := replay.Run(rec)
	if err != nil {
		exitErr(nil, "%v", err)
	}

	fmt.Println(res.Screen.String())
	fmt.Printf("Replay #%d  %s  %d ticks\n", rec.ID, rec.GameID, res.Ticks)
	fmt.Printf("Recorded outcome:   %s\n", rec.Outcome)
	fmt.Printf("Re-simulated:       %s\n", res.Outcome())

	if res.Outcome() != rec.Outcome {
		fmt.Fprintln(os.Stderr, "Outcome mismatch: the recording does not reproduce")
		os.Exit(1)
	}
}
