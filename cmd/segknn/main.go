// Package main is the segknn command: segment KNN and range queries over a
// JSON file or a SQLite segment store.
package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/viant/segknn/logging"
)

const (
	// Flags.
	flagBackend  = "backend"
	flagMetric   = "metric"
	flagSamples  = "samples"
	flagLogLevel = "log-level"
	flagWorkers  = "workers"
	flagInput    = "input"
	flagDB       = "db"
	flagQuery    = "query"
	flagQueries  = "queries"
	flagK        = "k"
	flagRadius   = "radius"
	flagA        = "a"
	flagB        = "b"

	loggerKey = "logger"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    flagInput,
			Aliases: []string{"i"},
			Usage:   "read segments from JSON `FILE` ([{\"start\":[x,y,z],\"end\":[x,y,z]}])",
			EnvVars: []string{"SEGKNN_INPUT"},
		},
		&cli.StringFlag{
			Name:    flagDB,
			Usage:   "read segments from the SQLite store at `PATH`",
			EnvVars: []string{"SEGKNN_DB"},
		},
	}
	searchFlags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    flagBackend,
			Value:   "kdtree",
			Usage:   "point index: kdtree, cover, vptree or brute",
			EnvVars: []string{"SEGKNN_BACKEND"},
		},
		&cli.StringFlag{
			Name:    flagQuery,
			Aliases: []string{"q"},
			Usage:   "query segment as `x1,y1,z1,x2,y2,z2`",
		},
		&cli.StringFlag{
			Name:  flagQueries,
			Usage: "run every segment of JSON `FILE` as a query in parallel",
		},
		&cli.IntFlag{
			Name:    flagWorkers,
			Usage:   "parallel queries for --queries (0 = GOMAXPROCS)",
			EnvVars: []string{"SEGKNN_WORKERS"},
		},
	}, sourceFlags...)
	metricFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    flagMetric,
			Aliases: []string{"m"},
			Value:   "shortest",
			Usage:   "segment metric: shortest, longest or hausdorff",
			EnvVars: []string{"SEGKNN_METRIC"},
		},
		&cli.IntFlag{
			Name:    flagSamples,
			Usage:   "hausdorff samples per segment",
			EnvVars: []string{"SEGKNN_SAMPLES"},
		},
	}

	return &cli.App{
		Name:     "segknn",
		Usage:    "nearest-neighbor and range search over 3D line segments",
		Writer:   out,
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   "info",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"SEGKNN_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger, err := logging.NewLogger("segknn", c.String(flagLogLevel))
			if err != nil {
				return err
			}
			c.App.Metadata[loggerKey] = logger
			return nil
		},
		After: func(c *cli.Context) error {
			_ = loggerFrom(c).Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "knn",
				Usage: "print the k segments nearest to the query",
				Flags: append(append([]cli.Flag{
					&cli.IntFlag{Name: flagK, Value: 5, Usage: "number of neighbors"},
				}, searchFlags...), metricFlags...),
				Action: KNNAction,
			},
			{
				Name:  "range",
				Usage: "print every segment within a radius of the query",
				Flags: append(append([]cli.Flag{
					&cli.Float64Flag{Name: flagRadius, Aliases: []string{"r"}, Required: true, Usage: "search radius"},
				}, searchFlags...), metricFlags...),
				Action: RangeAction,
			},
			{
				Name:  "distance",
				Usage: "print the distance between two segments",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: flagA, Required: true, Usage: "first segment as `x1,y1,z1,x2,y2,z2`"},
					&cli.StringFlag{Name: flagB, Required: true, Usage: "second segment as `x1,y1,z1,x2,y2,z2`"},
				}, metricFlags...),
				Action: DistanceAction,
			},
			{
				Name:  "import",
				Usage: "append the segments of a JSON file to a SQLite store",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagInput, Aliases: []string{"i"}, Required: true, Usage: "JSON `FILE`"},
					&cli.StringFlag{Name: flagDB, Required: true, Usage: "SQLite store `PATH`", EnvVars: []string{"SEGKNN_DB"}},
				},
				Action: ImportAction,
			},
			{
				Name:   "bounds",
				Usage:  "print the bounding box and diagonal of a collection",
				Flags:  sourceFlags,
				Action: BoundsAction,
			},
		},
	}
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(*zap.Logger); ok {
		return logger
	}
	return logging.Nop()
}
