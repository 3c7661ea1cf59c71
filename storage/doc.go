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


// Package storage provides the storage abstraction layer for textgraph.
//
// This package defines the repository interface that decouples storage
// implementation from the graph and search layers, so different backends
// (BadgerDB, in-memory, etc.) can be used interchangeably.
//
// Create a repository instance:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//	defer backend.Close()
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines. All repository methods
// accept context.Context for cancellation support.
package storage
