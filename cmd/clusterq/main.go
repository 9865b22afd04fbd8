package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/bgcdb/clusterq"
	"github.com/bgcdb/clusterq/codec"
	"github.com/bgcdb/clusterq/dataset"
	"github.com/bgcdb/clusterq/module"
	"github.com/bgcdb/clusterq/query"
	"github.com/bgcdb/clusterq/resource"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	typeFlag := &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Usage:   "Search type (cluster, gene, domain)",
		Value:   string(query.SearchCluster),
	}
	return &cli.App{
		Name:  "clusterq",
		Usage: "Query a biosynthetic gene cluster dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "Dataset location: a path, file://, s3://bucket/prefix or minio://endpoint/bucket/prefix",
				EnvVars: []string{"CLUSTERQ_DATASET"},
			},
			&cli.StringFlag{
				Name:  "codec",
				Usage: "JSON codec for requests and dataset shards (" + strings.Join(codec.Names(), ", ") + ")",
				Value: codec.Default.Name(),
			},
			&cli.StringFlag{
				Name:    "minio-access-key",
				Usage:   "MinIO access key",
				EnvVars: []string{"MINIO_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "minio-secret-key",
				Usage:   "MinIO secret key",
				EnvVars: []string{"MINIO_SECRET_KEY"},
			},
			&cli.BoolFlag{
				Name:  "minio-secure",
				Usage: "Use TLS for MinIO",
			},
			&cli.Int64Flag{
				Name:  "max-fetches",
				Usage: "Maximum number of shards fetched concurrently",
				Value: 4,
			},
			&cli.Int64Flag{
				Name:  "io-limit",
				Usage: "Maximum shard read throughput in bytes per second (0 for unlimited)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a free-text query, or a JSON request with --json",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					typeFlag,
					&cli.StringFlag{
						Name:  "json",
						Usage: "Read a JSON request from `FILE` (- for stdin)",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Include a record for every hit",
					},
				},
			},
			{
				Name:   "categories",
				Usage:  "List the categories of a search type",
				Action: categoriesCommand,
				Flags:  []cli.Flag{typeFlag},
			},
			{
				Name:      "filters",
				Usage:     "Describe the filters a category accepts",
				ArgsUsage: "<category>",
				Action:    filtersCommand,
			},
			{
				Name:      "suggest",
				Usage:     "Complete a category value",
				ArgsUsage: "<category> <prefix>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					typeFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: 20,
					},
				},
			},
			{
				Name:      "module",
				Usage:     "Validate a module architecture query and print its canonical form",
				ArgsUsage: "<query>",
				Action:    moduleCommand,
			},
			{
				Name:      "pack",
				Usage:     "Re-encode a dataset file; compression follows the output suffix",
				ArgsUsage: "<in> <out>",
				Action:    packCommand,
			},
		},
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}

func selectCodec(c *cli.Context) (codec.Codec, error) {
	cd, ok := codec.ByName(c.String("codec"))
	if !ok {
		return nil, fmt.Errorf("unknown codec %q: must be one of %s", c.String("codec"), strings.Join(codec.Names(), ", "))
	}
	return cd, nil
}

func setupLogger(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

// openSearcher loads the dataset named by --dataset.
func openSearcher(c *cli.Context) (*clusterq.Searcher, error) {
	raw := c.String("dataset")
	if raw == "" {
		return nil, fmt.Errorf("dataset location is required (--dataset or CLUSTERQ_DATASET)")
	}
	loc, err := parseLocation(raw)
	if err != nil {
		return nil, err
	}
	cd, err := selectCodec(c)
	if err != nil {
		return nil, err
	}
	bs, prefix, err := loc.open(c.Context, minioAuth{
		accessKey: c.String("minio-access-key"),
		secretKey: c.String("minio-secret-key"),
		secure:    c.Bool("minio-secure"),
	})
	if err != nil {
		return nil, err
	}
	s, err := clusterq.Open(c.Context, bs, prefix,
		clusterq.WithCodec(cd),
		clusterq.WithLogger(clusterq.NewLogger(slog.Default().Handler())),
		clusterq.WithResourceConfig(resource.Config{
			MaxConcurrentFetches: c.Int64("max-fetches"),
			IOLimitBytesPerSec:   c.Int64("io-limit"),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return s, nil
}

func searchCommand(c *cli.Context) error {
	var (
		request []byte
		err     error
	)
	if path := c.String("json"); path != "" {
		request, err = readInput(c.App.Reader, path)
		if err != nil {
			return err
		}
	} else if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}

	s, err := openSearcher(c)
	if err != nil {
		return err
	}

	var res *clusterq.Result
	if request != nil {
		res, err = s.SearchJSON(c.Context, request)
	} else {
		res, err = s.SearchText(c.Context, strings.Join(c.Args().Slice(), " "), query.SearchType(c.String("type")), c.Bool("verbose"))
	}
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, res)
}

func categoriesCommand(c *cli.Context) error {
	s, err := openSearcher(c)
	if err != nil {
		return err
	}
	cats, err := s.Categories(query.SearchType(c.String("type")))
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, cats)
}

func filtersCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one category")
	}
	s, err := openSearcher(c)
	if err != nil {
		return err
	}
	filters, err := s.AvailableFilters(c.Args().First())
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, filters)
}

func suggestCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected a category and a prefix")
	}
	s, err := openSearcher(c)
	if err != nil {
		return err
	}
	values, err := s.Suggest(query.SearchType(c.String("type")), c.Args().Get(0), c.Args().Get(1), c.Int("limit"))
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Fprintln(c.App.Writer, v)
	}
	return nil
}

func moduleCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one module query")
	}
	q, err := module.Parse(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, q.String())
	return nil
}

func packCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected an input and an output file")
	}
	in, out := c.Args().Get(0), c.Args().Get(1)
	cd, err := selectCodec(c)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	ds, err := dataset.DecodeReader(in, f, cd)
	if err != nil {
		return err
	}
	data, err := dataset.Marshal(out, ds, cd)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	slog.Info("dataset packed", "input", in, "output", out, "regions", len(ds.Regions), "bytes", len(data))
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
