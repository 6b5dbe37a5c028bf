package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gaut2172/bidindex/internal/applog"
	"github.com/gaut2172/bidindex/internal/config"
	"github.com/gaut2172/bidindex/internal/datastruct"
	"github.com/gaut2172/bidindex/internal/datastruct/hashtable"
	"github.com/gaut2172/bidindex/internal/datastruct/tree"
	"github.com/gaut2172/bidindex/internal/ingest"
	"github.com/gaut2172/bidindex/internal/menu"
	"github.com/gaut2172/bidindex/version"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cmd := config.CreateCommand(
		runMenu,
		runSort,
		version.Version(),
		version.Commit,
		version.Build,
	)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMenu(ctx context.Context, configPath string, cfg *config.Config) error {
	logger := applog.NewLogger(os.Stderr, *cfg.General.LogLevel)

	if !*cfg.General.Silent {
		printBanner(os.Stdout, configPath, cfg)
	}

	mainLogger := applog.WithScope(logger, "MAIN")
	if configPath != "" {
		mainLogger.Info().Msgf("config loaded from %s", configPath)
	}

	m := menu.NewMenu(
		os.Stdin,
		os.Stdout,
		createLoader(logger, cfg),
		createIndex(cfg),
		*cfg.Source.Path,
		*cfg.Source.Key,
		applog.WithScope(logger, "MENU"),
	)

	return m.Run(ctx)
}

func runSort(ctx context.Context, _ string, cfg *config.Config) error {
	logger := applog.NewLogger(os.Stderr, *cfg.General.LogLevel)
	return sortBids(ctx, os.Stdout, logger, cfg)
}

func sortBids(
	ctx context.Context,
	w io.Writer,
	logger zerolog.Logger,
	cfg *config.Config,
) error {
	bids, err := createLoader(logger, cfg).Collect(ctx, *cfg.Source.Path)
	if err != nil {
		return err
	}

	algo := *cfg.Sort.Algorithm
	start := time.Now()
	algo.Sort(bids)
	elapsed := time.Since(start)

	for _, b := range bids {
		_, _ = fmt.Fprintln(w, b)
	}
	_, _ = fmt.Fprintf(w, "%d bids sorted with %s sort\n", len(bids), algo)
	_, _ = fmt.Fprintf(w, "time: %s\n", elapsed)

	return nil
}

func createIndex(cfg *config.Config) menu.IndexFactory {
	switch *cfg.Index.Kind {
	case config.IndexKindHashed:
		capacity := *cfg.Index.Capacity
		return func() datastruct.Index {
			return hashtable.NewHashTable(capacity)
		}
	default:
		return func() datastruct.Index {
			return tree.NewBinarySearchTree()
		}
	}
}

func createLoader(logger zerolog.Logger, cfg *config.Config) *ingest.Loader {
	return ingest.NewLoader(
		cfg.Source.Columns.Columns(),
		*cfg.Source.Delimiter,
		applog.WithScope(logger, "INGEST"),
	)
}

func printBanner(w io.Writer, configPath string, cfg *config.Config) {
	bid := putils.LettersFromStringWithStyle("Bid", pterm.NewStyle(pterm.FgCyan))
	index := putils.LettersFromStringWithStyle("Index", pterm.NewStyle(pterm.FgLightMagenta))

	if s, err := pterm.DefaultBigText.WithLetters(bid, index).Srender(); err == nil {
		_, _ = io.WriteString(w, s)
	}

	items := []pterm.BulletListItem{
		{Level: 0, Text: "INDEX    : " + cfg.Index.Kind.String()},
		{Level: 0, Text: "SOURCE   : " + *cfg.Source.Path},
		{Level: 0, Text: "KEY      : " + *cfg.Source.Key},
	}
	if *cfg.Index.Kind == config.IndexKindHashed {
		items = append(items, pterm.BulletListItem{
			Level: 0, Text: fmt.Sprintf("CAPACITY : %d", *cfg.Index.Capacity),
		})
	}
	if configPath != "" {
		items = append(items, pterm.BulletListItem{Level: 0, Text: "CONFIG   : " + configPath})
	}

	if s, err := pterm.DefaultBulletList.WithItems(items).Srender(); err == nil {
		_, _ = io.WriteString(w, s)
	}
}
