// Command race runs Grid Race in the terminal.
//
// Races come either from a named definition in the configs directory
// (JSON or HCL) or from a track text file plus a players text file:
//
//	race play --race classic
//	race play --track track.txt --players players.txt
//	race simulate --race gauntlet --seed 7
//	race validate configs/*.json
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridrace/game/config"
	"github.com/wricardo/gridrace/game/engine"
)

const Version = "1.0.0"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "race:", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flags declared on the root are inherited
// by every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "race",
		Usage:   "turn-based grid racing in the terminal",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory holding race definitions",
				Value:   "configs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "race",
				Aliases: []string{"r"},
				Usage:   "race definition to load from the config directory",
				Value:   config.DefaultConfigName,
			},
			&cli.StringFlag{
				Name:  "track",
				Usage: "track text file (requires --players)",
			},
			&cli.StringFlag{
				Name:  "players",
				Usage: "players text file (requires --track)",
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "seed for bot decisions, 0 seeds from the clock",
				Sources: cli.EnvVars("RACE_SEED"),
			},
			&cli.IntFlag{
				Name:  "max-rounds",
				Usage: "round limit, overrides the race definition when positive",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			playCommand(),
			simulateCommand(),
			validateCommand(),
		},
	}
}

// loadRace resolves the race selected by the flags. Text files take
// precedence over a named definition.
func loadRace(cmd *cli.Command) (*engine.RaceConfig, []string, error) {
	trackPath, playersPath := cmd.String("track"), cmd.String("players")
	if trackPath != "" || playersPath != "" {
		if trackPath == "" || playersPath == "" {
			return nil, nil, errors.New("--track and --players must be used together")
		}
		trackLines, err := readLines(trackPath)
		if err != nil {
			return nil, nil, err
		}
		rosterLines, err := readLines(playersPath)
		if err != nil {
			return nil, nil, err
		}
		name := strings.TrimSuffix(filepath.Base(trackPath), filepath.Ext(trackPath))
		return engine.ConfigFromFiles(name, trackLines, rosterLines)
	}

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, nil, err
	}
	race, err := manager.LoadConfig(cmd.String("race"))
	if err != nil {
		return nil, nil, fmt.Errorf("race %q: %w", cmd.String("race"), err)
	}
	return race, nil, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

func maxRounds(cmd *cli.Command, race *engine.RaceConfig) int {
	if n := cmd.Int("max-rounds"); n > 0 {
		return n
	}
	return race.MaxRounds
}

func random(cmd *cli.Command) engine.Random {
	if seed := cmd.Int64("seed"); seed != 0 {
		return engine.NewRandom(seed)
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
