// qa-batch sweeps the analysis pipeline over a list of team queries and
// prints a JSON summary. Queries come from a file (one per line, # starts
// a comment) or stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	sonic "github.com/bytedance/sonic"

	"github.com/betfaro/engine/internal/app"
	"github.com/betfaro/engine/internal/config"
	"github.com/betfaro/engine/internal/platform/logging"
)

func main() {
	var (
		queriesPath = flag.String("file", "", "path to a file with one team query per line (default: stdin)")
		sampleSize  = flag.Int("sample", 0, "fixtures per team (0 uses the configured default)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	queries, err := readQueries(*queriesPath)
	if err != nil {
		logger.Error("read queries", "error", err)
		os.Exit(1)
	}
	if len(queries) == 0 {
		logger.Error("no queries to run")
		os.Exit(1)
	}

	components, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = components.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := components.Batch.Run(ctx, queries, *sampleSize)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	encoder := sonic.ConfigDefault.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}

func readQueries(path string) ([]string, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open queries file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var queries []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	return queries, nil
}
