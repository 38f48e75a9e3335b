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


package kgraph

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/poiesic/kgraph/engine"
	"github.com/poiesic/kgraph/ingest"
	"github.com/poiesic/kgraph/server"
)

// Service wires the engine lifecycle manager, the ingestion orchestrator,
// and the HTTP API together.
type Service struct {
	manager      *engine.Manager
	orchestrator *ingest.Orchestrator
	srv          *server.Server
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	poolSize    int
	managerOpts []engine.ManagerOption
}

// WithPoolSize sets the ingestion worker pool size.
func WithPoolSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.poolSize = size
	}
}

// WithManagerOptions passes options through to the engine manager.
func WithManagerOptions(opts ...engine.ManagerOption) ServiceOption {
	return func(o *serviceOptions) {
		o.managerOpts = append(o.managerOpts, opts...)
	}
}

// managerSource adapts engine.Manager to the narrow interfaces the server
// and orchestrator consume.
type managerSource struct {
	manager *engine.Manager
}

func (ms *managerSource) Engine(ctx context.Context) (server.Engine, error) {
	return ms.manager.Engine(ctx)
}

func (ms *managerSource) Inserter(ctx context.Context) (ingest.Inserter, error) {
	return ms.manager.Engine(ctx)
}

func (ms *managerSource) Ready() bool {
	return ms.manager.Ready()
}

func (ms *managerSource) Workdir() string {
	return ms.manager.Workdir()
}

// NewService assembles a service from cfg. The engine itself is not built
// here; construction is deferred to the first request that needs it.
func NewService(cfg engine.Config, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	manager := engine.NewManager(cfg, options.managerOpts...)
	source := &managerSource{manager: manager}

	var ingestOpts []ingest.Option
	if options.poolSize > 0 {
		ingestOpts = append(ingestOpts, ingest.WithPoolSize(options.poolSize))
	}
	orchestrator, err := ingest.NewOrchestrator(source, ingestOpts...)
	if err != nil {
		manager.Close()
		return nil, err
	}

	srv, err := server.New(source, orchestrator)
	if err != nil {
		orchestrator.Release()
		manager.Close()
		return nil, err
	}

	return &Service{
		manager:      manager,
		orchestrator: orchestrator,
		srv:          srv,
		logger:       slog.Default(),
	}, nil
}

// Handler returns the HTTP handler for the service API.
func (s *Service) Handler() http.Handler {
	return s.srv.Handler()
}

// Manager returns the engine lifecycle manager.
func (s *Service) Manager() *engine.Manager {
	return s.manager
}

// Close stops the ingestion workers and releases the engine.
func (s *Service) Close() error {
	s.orchestrator.Release()
	if err := s.manager.Close(); err != nil {
		s.logger.Error("error closing engine", "err", err)
		return err
	}
	return nil
}
