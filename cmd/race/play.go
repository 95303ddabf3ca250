package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridrace/game/engine"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:   "play",
		Usage:  "race interactively, steering humans with W/A/S/D",
		Action: runPlay,
	}
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "run a race to the end with humans steering at random",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "print only the final board and result",
				Local: true,
			},
		},
		Action: runSimulate,
	}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	out := stdout(cmd)
	race, game, err := buildRace(cmd, engine.NewConsoleInput(stdin(cmd), out), true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, race.Messages.Welcome)
	limit := maxRounds(cmd, race)
	for game.Status() == engine.StatusRunning {
		if game.CheckRoundLimit(limit) {
			break
		}
		printBoard(out, game)
		if _, err := game.PlayRound(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				game.EndGame()
				break
			}
			return err
		}
	}

	printBoard(out, game)
	fmt.Fprintln(out, engine.FinishMessage(race.Messages, game))
	return nil
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	out := stdout(cmd)
	verbose := !cmd.Bool("quiet")
	race, game, err := buildRace(cmd, engine.NewRandomInput(random(cmd)), verbose)
	if err != nil {
		return err
	}

	if !verbose {
		if err := game.StartGame(ctx, maxRounds(cmd, race)); err != nil {
			return err
		}
	}
	limit := maxRounds(cmd, race)
	for game.Status() == engine.StatusRunning && !game.CheckRoundLimit(limit) {
		if _, err := game.PlayRound(ctx); err != nil {
			return err
		}
		printBoard(out, game)
	}

	if !verbose {
		printBoard(out, game)
	}
	fmt.Fprintf(out, "Finished after %d rounds: %s\n", game.Round(), engine.FinishMessage(race.Messages, game))
	return nil
}

// buildRace loads the selected race and wires its racers to input. With
// verbose set every turn is printed as it is played.
func buildRace(cmd *cli.Command, input engine.InputProvider, verbose bool) (*engine.RaceConfig, *engine.GamePlay, error) {
	logger := newLogger(stderr(cmd), cmd.Bool("debug"))

	config, warnings, err := loadRace(cmd)
	if err != nil {
		return nil, nil, err
	}
	config.ApplyDefaults()
	for _, w := range warnings {
		logger.Warn(w, "config", config.Name)
	}

	out := stdout(cmd)
	opts := engine.RaceOptions{
		HumanInput: input,
		Random:     random(cmd),
		Logger:     logger,
	}
	if verbose {
		opts.Observer = func(event engine.TurnEvent) {
			fmt.Fprintln(out, describeTurn(event, config.Messages))
		}
	}

	race, err := engine.NewRace(config, opts)
	if err != nil {
		return nil, nil, err
	}
	return config, race.GamePlay, nil
}

func describeTurn(event engine.TurnEvent, messages engine.Messages) string {
	move := event.Move
	var b strings.Builder
	fmt.Fprintf(&b, "[round %d] %s (%s): ", event.Round, event.Racer, event.Kind)
	switch move.Reason {
	case engine.ReasonMoved:
		fmt.Fprintf(&b, "%s %s -> %s at speed %d", move.Direction, move.From, move.To, move.Speed)
	case engine.ReasonInvalidMove:
		fmt.Fprintf(&b, "%s blocked at %s. %s", move.Direction, move.Candidate, messages.InvalidMove)
	case engine.ReasonTrapped:
		fmt.Fprintf(&b, "trapped at %s", move.From)
	default:
		fmt.Fprintf(&b, "stays at %s", move.From)
	}
	if event.CollidedWith != "" {
		fmt.Fprintf(&b, " (hit %s)", event.CollidedWith)
	}
	if event.Winner {
		b.WriteString(" and crosses the finish line")
	}
	return b.String()
}

func printBoard(w io.Writer, game *engine.GamePlay) {
	fmt.Fprintln(w)
	for _, line := range game.Render() {
		fmt.Fprintln(w, line)
	}
}
