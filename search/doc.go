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


// Package search ranks items against a free-text query through a family of
// interchangeable strategies:
//   - text: exact/partial term matching with highlighting and score fusion
//   - fuzzy: edit-distance matching for typo tolerance
//   - category: category-first matching with a text fallback
//   - semantic: a stub reserving the contract for embedding-based matching
//
// Strategies are resolved by name through a Registry; MultiSearcher fans a
// query out to several strategies at once, swallowing individual strategy
// failures so one broken strategy cannot abort a multi-strategy query.
package search
