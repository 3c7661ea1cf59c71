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


// Package graph builds similarity-weighted graphs over embedded items and
// answers analytical queries about them.
//
// Connection strategies are interchangeable algorithms turning a set of
// embedded nodes into an undirected, deduplicated set of weighted links.
// Built-in strategies:
//   - topk3, topk5, topk10: best-k neighbors per node
//   - threshold: every pair above a similarity floor
//   - adaptive: self-balancing link count based on neighborhood density
//   - category: same-category bias without hard partitioning
//   - temporal: blends time proximity with content similarity
//   - community: greedy clustering with cross-community bridges
//
// Strategies are resolved through an explicitly constructed Registry; custom
// strategies can be added with Register at startup. The Service orchestrates
// node construction and strategy dispatch, and the analytics functions answer
// read-only queries (shortest path, connectivity, density, neighborhoods)
// over an assembled graph.
package graph
