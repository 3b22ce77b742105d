// Command huntsim plays hunts and showdowns against a running Campaign Keeper
// server through its REST API. It is a smoke and load driver: every move,
// resolution and showdown turn goes through the same pipeline the UI uses.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/campaign-keeper/game/engine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "huntsim: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "huntsim",
		Usage: "simulate hunts and showdowns against a campaign server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "campaign server URL"},
			&cli.IntFlag{Name: "hunts", Value: 10, Usage: "number of hunts to play"},
			&cli.IntFlag{Name: "level", Value: 1, Usage: "quarry level"},
			&cli.IntFlag{Name: "max-moves", Value: 50, Usage: "board moves before a hunt is abandoned"},
			&cli.IntFlag{Name: "rounds", Value: 3, Usage: "showdown rounds played before the outcome is rolled"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "random seed"},
			&cli.FloatFlag{Name: "stalk", Value: 0.3, Usage: "chance the quarry moves toward the party"},
			&cli.FloatFlag{Name: "retreat", Value: 0.2, Usage: "chance the quarry moves away"},
			&cli.FloatFlag{Name: "victory", Value: 0.7, Usage: "chance a showdown ends in victory"},
			&cli.BoolFlag{Name: "v", Usage: "verbose output"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("v") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level}))

	opts := Options{
		Hunts:         int(cmd.Int("hunts")),
		Level:         int(cmd.Int("level")),
		MaxMoves:      int(cmd.Int("max-moves")),
		Rounds:        int(cmd.Int("rounds")),
		Seed:          uint64(cmd.Int("seed")),
		StalkChance:   cmd.Float("stalk"),
		RetreatChance: cmd.Float("retreat"),
		VictoryChance: cmd.Float("victory"),
	}
	if opts.Hunts < 1 || opts.MaxMoves < 1 || opts.Rounds < 0 {
		return fmt.Errorf("hunts and max-moves must be positive, rounds must not be negative")
	}
	if opts.Level < engine.MinMonsterLevel || opts.Level > engine.MaxMonsterLevel {
		return fmt.Errorf("level must be in [%d,%d]", engine.MinMonsterLevel, engine.MaxMonsterLevel)
	}

	url := cmd.String("url")
	logger.Info("connecting to campaign server", "url", url)
	report, err := NewSimulator(NewClient(url), opts, logger).Run(ctx)
	fmt.Fprintln(cmd.Root().Writer, report)
	return err
}
