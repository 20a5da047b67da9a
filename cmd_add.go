package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

// ErrCancelled is returned when the user backs out of candidate selection.
var ErrCancelled = errors.New("cancelled")

func newAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Search a metadata provider and append the chosen result",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "media type: anime, manga, music, movie, tv",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "score",
				Aliases:  []string{"s"},
				Usage:    "personal score to store with the entry",
				Required: true,
			},
		},
		Action: runAdd,
	}
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	verboseVal := cmd.Bool("verbose")
	verbose = &verboseVal

	logger := NewLogger(verboseVal)
	ctx = logger.WithContext(ctx)

	config, err := loadConfigFromFile(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	mediaType := MediaType(strings.ToLower(strings.TrimSpace(cmd.String("type"))))
	if !mediaType.Valid() {
		return fmt.Errorf("unknown media type %q (want anime, manga, music, movie, or tv)", cmd.String("type"))
	}

	query := strings.Join(cmd.Args().Slice(), " ")

	app, err := NewApp(ctx, config)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	record, err := app.AddEntry(ctx, query, mediaType, cmd.String("score"), pickFromTerminal(os.Stdin, os.Stdout))
	if closeErr := app.Close(ctx); closeErr != nil {
		LogWarn(ctx, "%v", closeErr)
	}
	if errors.Is(err, ErrCancelled) {
		LogInfo(ctx, "Cancelled, nothing stored.")
		return nil
	}
	if err != nil {
		return err
	}

	LogDebug(ctx, "Stored record: %v", record)
	return nil
}

// pickFromTerminal prints the numbered candidate list and reads one
// selection. Entering 0 cancels.
func pickFromTerminal(in io.Reader, out io.Writer) func(candidates []Candidate) (int, error) {
	return func(candidates []Candidate) (int, error) {
		fmt.Fprintln(out, "Select the correct item:")
		for i, c := range candidates {
			fmt.Fprintf(out, "%3d. %s\n", i+1, c.Label)
		}
		fmt.Fprintf(out, "Selection [1-%d, 0 to cancel]: ", len(candidates))

		reader := bufio.NewReader(in)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read selection: %w", err)
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return 0, fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
		}
		if n == 0 {
			return 0, ErrCancelled
		}
		return n - 1, nil
	}
}
