// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/textgraph"
	"github.com/poiesic/textgraph/ai"
	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/embedding"
	"github.com/poiesic/textgraph/graph"
	"github.com/poiesic/textgraph/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "textgraph",
		Usage: "Similarity graphs and ranked search over labeled text items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Parse items from a file into the database",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Input file path",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Input format (json, csv, text)",
						Value: "json",
					},
				},
			},
			{
				Name:   "embed",
				Usage:  "Generate embeddings for items that lack one",
				Action: embedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Embedding service API token",
						Value: "none",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items per provider call (max 50)",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Submission attempts per batch before giving up",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "estimate-only",
						Usage: "Print the token and cost estimate without embedding",
					},
				},
			},
			{
				Name:   "graph",
				Usage:  "Generate a similarity graph and write it as JSON",
				Action: graphCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Connection strategy name",
						Value:   "threshold",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity threshold for the threshold strategy",
						Value: 0.7,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to stdout)",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Search stored items and print ranked results",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Search query",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Search strategy name, or 'all' for multi-strategy fan-out",
						Value:   "text",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "case-sensitive",
						Usage: "Match case exactly",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print graph analytics for the stored items",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Connection strategy name",
						Value:   "threshold",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity threshold for the threshold strategy",
						Value: 0.7,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	file, err := os.Open(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	items, err := ingest.Parse(file, c.String("format"))
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	ws, err := textgraph.NewWorkspace(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	if err := ws.AddItems(ctx, items...); err != nil {
		return fmt.Errorf("failed to store items: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d items\n", len(items))
	return nil
}

func embedCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	ws, err := textgraph.NewWorkspace(c.String("db"), textgraph.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	config := embedding.DefaultConfig()
	config.BatchSize = c.Int("batch-size")
	config.MaxAttempts = c.Int("max-attempts")
	config.RetryDelay = c.Duration("retry-delay")

	if c.Bool("estimate-only") {
		items, err := ws.ItemRepository().ListItems(ctx)
		if err != nil {
			return err
		}
		var pending []*core.Item
		for _, item := range items {
			if !item.HasEmbedding() {
				pending = append(pending, item)
			}
		}
		estimate := embedding.EstimateRun(pending, config)
		fmt.Fprintf(os.Stderr, "Items: %d  Batches: %d  Tokens: ~%d  Cost: ~$%.4f\n",
			estimate.Items, estimate.Batches, estimate.Tokens, estimate.Cost)
		return nil
	}

	monitor := embedding.MonitorFunc(func(stage embedding.Stage, percent float64, message string) {
		fmt.Fprintf(os.Stderr, "[%5.1f%%] %s: %s\n", percent, stage, message)
	})

	report, err := ws.EmbedItems(ctx, config, embedding.WithMonitor(monitor))
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Embedded %d/%d items in %d batches\n",
		report.Embedded, report.Requested, report.Batches)
	return nil
}

func graphCommand(c *cli.Context) error {
	ctx := context.Background()

	ws, err := textgraph.NewWorkspace(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	opts := graph.DefaultOptions()
	opts.Threshold = c.Float64("threshold")

	g, err := ws.GenerateGraph(ctx, c.String("strategy"), opts)
	if err != nil {
		return fmt.Errorf("graph generation failed: %w", err)
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := ingest.ExportGraphJSON(out, g); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Graph: %d nodes, %d links\n", len(g.Nodes), len(g.Links))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	ws, err := textgraph.NewWorkspace(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	q := core.NewQueryContext(c.String("query"))
	q.MaxResults = c.Int("max-results")
	q.CaseSensitive = c.Bool("case-sensitive")

	strategy := c.String("strategy")
	if strategy == "all" {
		resultSets, err := ws.MultiSearch(ctx, q)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		for name, results := range resultSets {
			fmt.Fprintf(os.Stderr, "-- %s (%d results)\n", name, len(results))
			if err := ingest.ExportResultsJSON(os.Stdout, results); err != nil {
				return err
			}
		}
		return nil
	}

	results, err := ws.Search(ctx, strategy, q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return ingest.ExportResultsJSON(os.Stdout, results)
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	ws, err := textgraph.NewWorkspace(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	opts := graph.DefaultOptions()
	opts.Threshold = c.Float64("threshold")

	g, err := ws.GenerateGraph(ctx, c.String("strategy"), opts)
	if err != nil {
		return fmt.Errorf("graph generation failed: %w", err)
	}

	distribution := graph.ConnectionDistribution(g)

	fmt.Printf("Nodes:       %d\n", len(g.Nodes))
	fmt.Printf("Links:       %d\n", len(g.Links))
	fmt.Printf("Density:     %.4f\n", graph.Density(g))
	fmt.Printf("Connected:   %t\n", graph.IsConnected(g))
	fmt.Printf("Mean degree: %.2f (min %d, max %d)\n",
		distribution.Mean, distribution.Min, distribution.Max)
	for _, bucket := range []string{"0", "1-2", "3-5", "6-10", "10+"} {
		fmt.Printf("  %-5s %d\n", bucket, distribution.Buckets[bucket])
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
