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


// Package ai defines the interfaces for external embedding services and the
// error classification the embedding pipeline relies on to decide whether a
// provider failure is transient (rate limiting) or fatal.
//
// Subpackages provide implementations:
//   - ai/openai: OpenAI-compatible APIs via langchaingo
//   - ai/mock: test doubles with deterministic vectors
package ai
