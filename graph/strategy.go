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
	"fmt"
	"sort"
	"sync"

	"github.com/poiesic/textgraph/core"
)

// Strategy turns a set of embedded nodes into an undirected, deduplicated
// set of weighted links. Generate is a pure function of its inputs: no
// hidden state, no mutation of the node slice, and every returned link's
// Similarity is the true cosine similarity of its endpoints.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string

	// Generate derives links for the given nodes. Nodes without embeddings
	// are ignored. A nil opts uses the documented defaults.
	Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error)
}

// Registry resolves strategy names to implementations. It is constructed
// explicitly and passed to the Service, so there is no hidden global state.
// Registries are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry preloaded with the built-in strategies:
// topk3, topk5, topk10, threshold, adaptive, category, temporal, community.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	for _, s := range []Strategy{
		&TopK{K: 3},
		&TopK{K: 5},
		&TopK{K: 10},
		&Threshold{},
		&Adaptive{},
		&Category{},
		&Temporal{},
		&Community{},
	} {
		r.strategies[s.Name()] = s
	}
	return r
}

// Register adds a custom strategy. Returns ErrStrategyExists if the name
// is already taken.
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.strategies[s.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrStrategyExists, s.Name())
	}
	r.strategies[s.Name()] = s
	return nil
}

// Get resolves a strategy by name. Returns ErrUnknownStrategy for
// unrecognized names.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
