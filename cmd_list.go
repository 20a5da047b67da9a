package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print logged entries for one media type",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "media type: anime, manga, music, movie, tv",
				Required: true,
			},
		},
		Action: runList,
	}
}

// primaryField names the title-ish column of one media type's layout.
func primaryField(mediaType MediaType) string {
	switch mediaType {
	case MediaTypeAnime, MediaTypeManga:
		return fieldNames
	case MediaTypeMusic:
		return fieldName
	default:
		return fieldTitle
	}
}

// personalScoreField names the user-score column of one media type's layout.
func personalScoreField(mediaType MediaType) string {
	switch mediaType {
	case MediaTypeAnime, MediaTypeManga:
		return fieldPersonalScores
	default:
		return fieldPersonalScore
	}
}

func runList(ctx context.Context, cmd *cli.Command) error {
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

	store := NewStore(config.StatsDir, DefaultLayouts())
	entries := store.Entries(ctx, mediaType)
	if len(entries) == 0 {
		LogInfo(ctx, "No %s entries yet.", mediaType)
		return nil
	}

	LogStage(ctx, "%s entries:", mediaType.DisplayName())
	for i, rec := range entries {
		line := fmt.Sprintf("%3d. %v (personal score %v)", i+1, rec[primaryField(mediaType)], rec[personalScoreField(mediaType)])
		if mediaType == MediaTypeMusic {
			line = fmt.Sprintf("%3d. %v by %v (personal score %v)", i+1, rec[fieldName], rec[fieldArtist], rec[fieldPersonalScore])
		}
		LogInfo(ctx, "%s", line)
	}

	return nil
}
