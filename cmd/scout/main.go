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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scout"
	"github.com/poiesic/scout/config"
	"github.com/poiesic/scout/session"
	"github.com/urfave/cli/v2"
)

// logoutCommand ends the chat and clears the session.
const logoutCommand = "/salir"

var (
	errQueryRequired  = errors.New("query is required")
	errInvalidWorkers = errors.New("workers must be greater than 0")
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "scout",
		Usage: "Conversational search for people and job offers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "Path to a .env file with secrets and endpoints",
				Value:   ".env",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive session",
				Action: chatCommand,
			},
			{
				Name:      "ask",
				Usage:     "Answer a single query in a fresh session",
				ArgsUsage: "<query>",
				Action:    askCommand,
			},
			{
				Name:   "batch",
				Usage:  "Answer every query in a file, each in its own session",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "File with one query per line",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of sessions handled concurrently",
						Value: defaultWorkers(),
					},
				},
			},
		},
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// newAssistant builds an assistant from the environment and the --env-file flag.
func newAssistant(c *cli.Context) (*scout.Assistant, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	assistant, err := scout.NewAssistant(
		scout.WithAIConfig(cfg.AI),
		scout.WithSearchConfig(cfg.Search),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}
	return assistant, nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	return runChat(c.Context, assistant, os.Stdin, os.Stdout)
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errQueryRequired
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	state, err := assistant.NewSession()
	if err != nil {
		return err
	}

	result, err := assistant.HandleTurn(c.Context, state, query)
	if err != nil {
		return err
	}
	printTurn(os.Stdout, result)
	return nil
}

func batchCommand(c *cli.Context) error {
	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open queries: %w", err)
	}
	defer file.Close()

	queries, err := readQueries(file)
	if err != nil {
		return err
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	results, err := runBatch(c.Context, assistant, queries, c.Int("workers"), newBatchProgress(os.Stderr, len(queries)))
	if err != nil {
		return err
	}

	for i, result := range results {
		fmt.Fprintf(os.Stdout, "## %s\n", queries[i])
		if result == nil {
			fmt.Fprintln(os.Stdout)
			continue
		}
		printTurn(os.Stdout, result)
	}
	return nil
}

// runChat reads queries from in until EOF or the logout command and writes
// each reply to out. All queries share one session.
func runChat(ctx context.Context, assistant *scout.Assistant, in io.Reader, out io.Writer) error {
	state, err := assistant.NewSession()
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, session.Prompt)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, logoutCommand) {
			if err := assistant.Logout(ctx, state); err != nil {
				return err
			}
			fmt.Fprintln(out, "Sesión cerrada.")
			return nil
		}

		result, err := assistant.HandleTurn(ctx, state, line)
		if err != nil {
			return err
		}
		printTurn(out, result)
	}

	return scanner.Err()
}

// runBatch answers each query in its own session on a pool of workers.
// Results keep the order of queries; a nil entry marks a query that could
// not be handled at all. progress may be nil.
func runBatch(ctx context.Context, assistant *scout.Assistant, queries []string, workers int, progress *batchProgress) ([]*session.TurnResult, error) {
	if workers <= 0 {
		return nil, errInvalidWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	results := make([]*session.TurnResult, len(queries))
	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			state, err := assistant.NewSession()
			if err != nil {
				slog.Error("error creating session", "query", query, "err", err)
				progress.record(true)
				return
			}
			result, err := assistant.HandleTurn(ctx, state, query)
			if err != nil {
				slog.Error("error handling query", "query", query, "err", err)
				progress.record(true)
				return
			}
			results[i] = result
			progress.record(result.Failed())
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to submit query: %w", err)
		}
	}

	wg.Wait()
	progress.finish()
	return results, nil
}

// readQueries returns the non-blank lines of r. Lines starting with '#' are skipped.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	return queries, nil
}

func printTurn(out io.Writer, result *session.TurnResult) {
	if result.ClassifierMessage != "" && result.ClassifierMessage != result.Reply {
		fmt.Fprintln(out, result.ClassifierMessage)
	}
	fmt.Fprintln(out, result.Reply)
	fmt.Fprintln(out)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
