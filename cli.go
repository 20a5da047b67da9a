package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// NewCLI creates the root CLI command
func NewCLI() *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to config file",
		Value:   "config.yaml",
	}
	verboseFlag := &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "enable verbose logging",
	}

	return &cli.Command{
		Name:        "mediashelf",
		Usage:       "Track watched and listened media in local JSON statistics files",
		Version:     "1.0.0",
		Description: "Search anime, manga, music, movie, and TV metadata providers and log entries with a personal score.",
		Flags: []cli.Flag{
			configFlag,
			verboseFlag,
		},
		Commands: []*cli.Command{
			newAddCommand(),
			newListCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("unknown command: %s", cmd.Args().First())
			}
			return cli.ShowAppHelp(cmd)
		},
	}
}

// RunCLI executes the CLI application
func RunCLI() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := NewCLI()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		return fmt.Errorf("command failed")
	}

	return nil
}
