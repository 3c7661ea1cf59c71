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


// Package vector provides the similarity primitives shared by every other
// component: cosine similarity, dot product, and unit-length normalization.
//
// Cosine requires equal-length inputs and returns ErrDimensionMismatch
// otherwise. A zero-magnitude input yields a similarity of 0 rather than an
// error, so callers never divide by zero.
package vector
