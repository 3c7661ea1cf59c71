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


// Package embedding runs the batch pipeline that turns item text into
// embedding vectors through an external provider.
//
// A run moves through the stages Preparing, Batching, Submitting (with
// Retrying on rate limits), Finalizing and Complete, reporting a
// monotonically increasing percentage at each transition. Rate-limit
// responses are retried with exponential backoff up to a fixed attempt
// budget; any other provider error fails the run immediately. Embeddings
// committed by earlier batches survive a failed run, and a provider
// returning fewer vectors than requested leaves the tail of that batch
// unembedded rather than failing (partial coverage is logged, not fatal).
package embedding
