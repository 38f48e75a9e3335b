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


package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/poiesic/kgraph/ai/openai"
	"github.com/poiesic/kgraph/graphstore"
	"github.com/poiesic/kgraph/vector"
	"github.com/poiesic/kgraph/vector/pinecone"
)

// BuildFunc constructs an Engine from a validated configuration.
type BuildFunc func(ctx context.Context, cfg Config) (*Engine, error)

// Manager guards lazy engine construction. The first successful call to
// Engine builds and caches the instance; later calls return the same
// handle. A failed build leaves the manager uninitialized so the next
// call retries. Once ready, the manager never rebuilds.
type Manager struct {
	mu     sync.Mutex
	cfg    Config
	engine *Engine
	build  BuildFunc
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithBuildFunc overrides the engine construction function.
func WithBuildFunc(build BuildFunc) ManagerOption {
	return func(m *Manager) {
		if build != nil {
			m.build = build
		}
	}
}

// WithManagerLogger sets a custom logger.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager for lazily constructing an engine from cfg.
// No connections are made until the first call to Engine.
func NewManager(cfg Config, opts ...ManagerOption) *Manager {
	m := &Manager{
		cfg:    cfg,
		build:  buildEngine,
		logger: slog.Default().With("component", "engine-manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Engine returns the managed engine, building it on first use. Concurrent
// callers serialize on the manager's lock so the engine is built at most
// once. Build failures are returned to the caller and do not poison the
// manager.
func (m *Manager) Engine(ctx context.Context) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine != nil {
		return m.engine, nil
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	m.logger.Info("initializing engine", "workdir", m.cfg.Workdir)
	engine, err := m.build(ctx, m.cfg)
	if err != nil {
		m.logger.Error("engine initialization failed", "err", err)
		return nil, err
	}

	m.engine = engine
	m.logger.Info("engine ready", "workdir", m.cfg.Workdir)
	return m.engine, nil
}

// Ready reports whether the engine has been successfully built.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine != nil
}

// Workdir returns the configured working directory.
func (m *Manager) Workdir() string {
	return m.cfg.Workdir
}

// Close releases the managed engine if one was built.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine == nil {
		return nil
	}
	err := m.engine.Close()
	m.engine = nil
	return err
}

// buildEngine is the default BuildFunc. It opens local topology storage,
// connects the AI provider, and binds one vector store per domain. On any
// failure everything opened so far is closed before returning.
func buildEngine(ctx context.Context, cfg Config) (*Engine, error) {
	graph, err := graphstore.Open(filepath.Join(cfg.Workdir, "graph"), false)
	if err != nil {
		return nil, fmt.Errorf("engine: open graph store: %w", err)
	}

	provider, err := openai.NewProvider(cfg.AI)
	if err != nil {
		graph.Close()
		return nil, err
	}

	stores := make(map[vector.Domain]vector.Store, 3)
	cleanup := func() {
		for _, s := range stores {
			s.Close()
		}
		provider.Close()
		graph.Close()
	}

	for _, domain := range []vector.Domain{
		vector.DomainEntities,
		vector.DomainRelationships,
		vector.DomainChunks,
	} {
		store, err := pinecone.New(ctx, pinecone.Config{
			APIKey:    cfg.PineconeAPIKey,
			IndexName: cfg.PineconeIndex,
			Namespace: cfg.Namespaces.For(domain),
			BatchSize: cfg.BatchSize,
		})
		if err != nil {
			cleanup()
			return nil, err
		}
		stores[domain] = store
	}

	engine, err := New(
		cfg.Workdir,
		provider,
		stores[vector.DomainEntities],
		stores[vector.DomainRelationships],
		stores[vector.DomainChunks],
		graph,
		WithChunking(cfg.ChunkSize, cfg.ChunkOverlap),
		WithTopK(cfg.TopK),
	)
	if err != nil {
		cleanup()
		return nil, err
	}
	return engine, nil
}
