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


package search

import "errors"

var (
	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrStrategyExists is returned when registering a strategy whose name
	// is already taken.
	ErrStrategyExists = errors.New("strategy already registered")

	// ErrRegistryRequired is returned when a MultiSearcher is constructed
	// without a registry.
	ErrRegistryRequired = errors.New("registry required")
)
