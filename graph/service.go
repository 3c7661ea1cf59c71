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


package graph

import (
	"log/slog"

	"github.com/poiesic/textgraph/core"
)

// Service orchestrates node construction and strategy dispatch.
type Service struct {
	registry *Registry
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service) error

// WithRegistry sets a custom strategy registry.
// Default is NewRegistry() with the built-in strategies.
func WithRegistry(registry *Registry) ServiceOption {
	return func(s *Service) error {
		if registry != nil {
			s.registry = registry
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a graph service.
func NewService(opts ...ServiceOption) (*Service, error) {
	s := &Service{
		registry: NewRegistry(),
		logger:   slog.Default().With("component", "graph-service"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Registry returns the strategy registry the service dispatches through.
func (s *Service) Registry() *Registry {
	return s.registry
}

// GenerateGraph builds a graph from the given items using the named
// strategy. Items without embeddings are excluded. An all-unembedded input
// yields an empty graph, not an error. A failing strategy returns no
// partial graph.
func (s *Service) GenerateGraph(items []*core.Item, strategyName string, opts *Options) (*core.Graph, error) {
	strategy, err := s.registry.Get(strategyName)
	if err != nil {
		return nil, err
	}

	var nodes []*core.Node
	for _, item := range items {
		if !item.HasEmbedding() {
			continue
		}
		nodes = append(nodes, buildNode(item))
	}

	if len(nodes) == 0 {
		s.logger.Debug("no embedded items, returning empty graph", "strategy", strategyName)
		return &core.Graph{}, nil
	}

	links, err := strategy.Generate(nodes, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("generated graph",
		"strategy", strategyName, "nodes", len(nodes), "links", len(links))

	return &core.Graph{Nodes: nodes, Links: links}, nil
}

// UpdateConnections re-derives the links of an existing graph with a
// different strategy, keeping the node set and its presentation attributes.
// The graph is only mutated when the strategy succeeds.
func (s *Service) UpdateConnections(g *core.Graph, strategyName string, opts *Options) error {
	strategy, err := s.registry.Get(strategyName)
	if err != nil {
		return err
	}

	links, err := strategy.Generate(g.Nodes, opts)
	if err != nil {
		return err
	}

	g.Links = links
	s.logger.Debug("updated connections", "strategy", strategyName, "links", len(links))
	return nil
}
