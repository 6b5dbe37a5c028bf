package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gaut2172/bidindex/internal/ptr"
	"github.com/urfave/cli/v3"
)

// ActionFunc receives the resolved configuration and the path of the config
// file it was read from, if any.
type ActionFunc func(ctx context.Context, configPath string, cfg *Config) error

func CreateCommand(
	runFunc ActionFunc,
	sortFunc ActionFunc,
	version string,
	commit string,
	build string,
) *cli.Command {
	cli.RootCommandHelpTemplate = createHelpTemplate()

	cmd := &cli.Command{
		Name:        "bidindex",
		Description: "Load, search and remove auction bids from an in-memory index",
		ArgsUsage:   "[csv-path] [bid-key]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name: "clean",
				Usage: `
				if set, all configuration files will be ignored`,
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage: `
				Custom location of the config file to load (toml or yaml). Options given
				through the command line flags will override the options set in this file.`,
				OnlyOnce: true,
				Sources:  cli.EnvVars("BIDINDEX_CONFIG"),
			},

			&cli.StringFlag{
				Name: "delimiter",
				Usage: `
				Field delimiter of the csv source (default: ',')`,
				Value:     ",",
				OnlyOnce:  true,
				Validator: checkDelimiter,
			},

			&cli.IntFlag{
				Name: "index-capacity",
				Usage: `
				Number of buckets of the hashed index. Ignored by the ordered index.
				(default: 179, max: 65535)`,
				Value:     179,
				OnlyOnce:  true,
				Validator: checkUint16NonZero,
				Sources:   cli.EnvVars("BIDINDEX_INDEX_CAPACITY"),
			},

			&cli.StringFlag{
				Name: "index-kind",
				Usage: `
				Index structure to load bids into. One of 'ordered', 'hashed' (default: 'ordered')`,
				Value:     "ordered",
				OnlyOnce:  true,
				Validator: checkIndexKind,
				Sources:   cli.EnvVars("BIDINDEX_INDEX_KIND"),
			},

			&cli.StringFlag{
				Name: "key",
				Usage: `
				Bid id searched when the prompt is left blank (default: '98109')`,
				Value:     DefaultSearchKey,
				OnlyOnce:  true,
				Validator: checkNonEmpty,
				Sources:   cli.EnvVars("BIDINDEX_KEY"),
			},

			&cli.StringFlag{
				Name: "log-level",
				Usage: `
				Set log level (default: 'info')`,
				Value:     "info",
				OnlyOnce:  true,
				Validator: checkLogLevel,
				Sources:   cli.EnvVars("BIDINDEX_LOG_LEVEL"),
			},

			&cli.BoolFlag{
				Name: "silent",
				Usage: `
				Do not show the banner at start up`,
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name: "source",
				Usage: `
				Path of the csv file to load bids from`,
				Value:     DefaultSourcePath,
				OnlyOnce:  true,
				Validator: checkNonEmpty,
				Sources:   cli.EnvVars("BIDINDEX_SOURCE"),
			},

			&cli.BoolFlag{
				Name: "version",
				Usage: `
				Print version; this may contain some other relevant information`,
				Aliases:  []string{"v"},
				OnlyOnce: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sort",
				Usage:     "print the bids of a csv file ordered by title",
				ArgsUsage: "[csv-path]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "algo",
						Usage: `
						Sort algorithm. One of 'quick', 'selection' (default: 'quick')`,
						Value:     "quick",
						OnlyOnce:  true,
						Validator: checkSortAlgorithm,
						Sources:   cli.EnvVars("BIDINDEX_SORT_ALGO"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() > 1 {
						return fmt.Errorf("too many arguments: %v", cmd.Args().Slice())
					}

					overrides := &Config{}
					if p := cmd.Args().First(); p != "" {
						overrides.Source = &SourceOptions{Path: ptr.FromValue(p)}
					}

					configPath, cfg, err := loadConfig(cmd, overrides)
					if err != nil {
						return err
					}

					return sortFunc(ctx, configPath, cfg)
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				_, _ = fmt.Fprintf(cmd.Root().Writer, "bidindex %s %s (%s)\n", version, commit, build)
				return nil
			}

			if cmd.NArg() > 2 {
				return fmt.Errorf("too many arguments: %v", cmd.Args().Slice())
			}

			overrides := &Config{Source: &SourceOptions{}}
			if p := cmd.Args().Get(0); p != "" {
				overrides.Source.Path = ptr.FromValue(p)
			}
			if k := cmd.Args().Get(1); k != "" {
				overrides.Source.Key = ptr.FromValue(k)
			}

			configPath, cfg, err := loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			return runFunc(ctx, configPath, cfg)
		},
	}

	cli.HelpFlag = &cli.BoolFlag{
		Name:    "help",
		Aliases: []string{"h"},
		Usage: `
        show help`,
	}

	return cmd
}

// loadConfig layers defaults, the config file, explicitly set flags and
// finally overrides taken from positional arguments.
func loadConfig(cmd *cli.Command, overrides *Config) (string, *Config, error) {
	var fileCfg *Config
	var configPath string
	if !cmd.Bool("clean") {
		p, err := searchConfigFile(cmd.String("config"), defaultLookupPaths())
		if err != nil {
			return "", nil, err
		}

		if p != "" {
			configPath = p
			fileCfg, err = fromFile(p)
			if err != nil {
				return "", nil, fmt.Errorf("error parsing config file %s: %w", p, err)
			}
		}
	}

	final := NewConfig().
		Merge(fileCfg).
		Merge(parseConfigFromArgs(cmd)).
		Merge(overrides)

	if err := final.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid config: %w", err)
	}

	if home := os.Getenv("HOME"); home != "" {
		configPath = strings.Replace(configPath, home, "~", 1)
	}

	return configPath, final, nil
}

// parseConfigFromArgs only carries flags the user actually set, so that flag
// defaults never shadow values from the config file.
func parseConfigFromArgs(cmd *cli.Command) *Config {
	general := &GeneralOptions{}
	if cmd.IsSet("log-level") {
		general.LogLevel = ptr.FromValue(MustParseLogLevel(cmd.String("log-level")))
	}
	if cmd.IsSet("silent") {
		general.Silent = ptr.FromValue(cmd.Bool("silent"))
	}

	index := &IndexOptions{}
	if cmd.IsSet("index-kind") {
		index.Kind = ptr.FromValue(MustParseIndexKind(cmd.String("index-kind")))
	}
	if cmd.IsSet("index-capacity") {
		index.Capacity = ptr.FromValue(uint16(cmd.Int("index-capacity")))
	}

	source := &SourceOptions{}
	if cmd.IsSet("source") {
		source.Path = ptr.FromValue(cmd.String("source"))
	}
	if cmd.IsSet("key") {
		source.Key = ptr.FromValue(cmd.String("key"))
	}
	if cmd.IsSet("delimiter") {
		source.Delimiter = ptr.FromValue(MustParseDelimiter(cmd.String("delimiter")))
	}

	sort := &SortOptions{}
	if cmd.IsSet("algo") {
		sort.Algorithm = ptr.FromValue(MustParseSortAlgorithm(cmd.String("algo")))
	}

	return &Config{
		General: general,
		Index:   index,
		Source:  source,
		Sort:    sort,
	}
}

func createHelpTemplate() string {
	return fmt.Sprintf(`DESCRIPTION:
  %s
USAGE:
  %s {{if .Flags}}%s{{end}} {{.ArgsUsage}}{{if .VisibleCommands}}
COMMANDS:
  {{range .VisibleCommands}}%s
  {{end}}{{end}}{{if .VisibleFlags}}
GLOBAL OPTIONS:
  {{range .VisibleFlags}}%s{{if .Aliases}}{{range .Aliases}}%s{{end}}{{end}} %s %s
	{{end}}{{end}}
	`,
		"{{.Name}} - {{.Description}}",
		"{{.Name}}",
		"[global options]",
		"{{.Name}}  {{.Usage}}",
		"--{{.Name}}",
		", -{{.}}",
		"{{.TypeName}}",
		"{{.Usage}}",
	)
}
