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
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/kgraph"
	"github.com/poiesic/kgraph/ai"
	"github.com/poiesic/kgraph/engine"
	"github.com/poiesic/kgraph/vector"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "kgraphd",
		Usage:  "Knowledge-graph document ingestion and query service",
		Before: setupLogger,
		Action: serveCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP listen port",
				Value:   9621,
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "workdir",
				Aliases: []string{"w"},
				Usage:   "Working directory for local graph storage",
				Value:   "./kgraph-data",
				EnvVars: []string{"KGRAPH_WORKDIR"},
			},
			&cli.StringFlag{
				Name:    "pinecone-api-key",
				Usage:   "Pinecone API key",
				EnvVars: []string{"PINECONE_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "pinecone-index",
				Usage:   "Pinecone index name",
				EnvVars: []string{"PINECONE_INDEX_NAME"},
			},
			&cli.StringFlag{
				Name:    "ns-entities",
				Usage:   "Index namespace for entity vectors",
				EnvVars: []string{"PINECONE_NS_ENTITIES"},
			},
			&cli.StringFlag{
				Name:    "ns-relationships",
				Usage:   "Index namespace for relationship vectors",
				EnvVars: []string{"PINECONE_NS_RELATIONSHIPS"},
			},
			&cli.StringFlag{
				Name:    "ns-chunks",
				Usage:   "Index namespace for chunk vectors",
				EnvVars: []string{"PINECONE_NS_CHUNKS"},
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "API key for the language-model service",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				EnvVars: []string{"EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "completion-host",
				Usage:   "Completion service host URL",
				EnvVars: []string{"COMPLETION_HOST"},
			},
			&cli.StringFlag{
				Name:    "completion-model",
				Usage:   "Completion model name",
				EnvVars: []string{"COMPLETION_MODEL"},
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Vectors per upsert request",
			},
			&cli.IntFlag{
				Name:  "top-k",
				Usage: "Similarity results per partition during queries",
			},
			&cli.IntFlag{
				Name:  "pool-size",
				Usage: "Ingestion worker pool size",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	aiCfg := ai.DefaultConfig()
	if v := c.String("openai-api-key"); v != "" {
		aiCfg.APIKey = v
	}
	if v := c.String("embedding-host"); v != "" {
		aiCfg.EmbeddingHost = v
	}
	if v := c.String("embedding-model"); v != "" {
		aiCfg.EmbeddingModel = v
	}
	if v := c.String("completion-host"); v != "" {
		aiCfg.CompletionHost = v
	}
	if v := c.String("completion-model"); v != "" {
		aiCfg.CompletionModel = v
	}

	cfg := engine.Config{
		Workdir:        c.String("workdir"),
		PineconeAPIKey: c.String("pinecone-api-key"),
		PineconeIndex:  c.String("pinecone-index"),
		Namespaces: vector.Namespaces{
			Entities:      c.String("ns-entities"),
			Relationships: c.String("ns-relationships"),
			Chunks:        c.String("ns-chunks"),
		},
		BatchSize: c.Int("batch-size"),
		AI:        aiCfg,
		TopK:      c.Int("top-k"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	service, err := kgraph.NewService(cfg, kgraph.WithPoolSize(c.Int("pool-size")))
	if err != nil {
		return err
	}
	defer service.Close()

	addr := fmt.Sprintf(":%d", c.Int("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      service.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
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
