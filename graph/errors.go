package graph

import "errors"

var (
	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown connection strategy")

	// ErrNodeNotFound is returned when an analytics query names a node
	// that is not part of the graph.
	ErrNodeNotFound = errors.New("node not found in graph")

	// ErrNoPath is returned by ShortestPath when the two nodes are in
	// disconnected components.
	ErrNoPath = errors.New("no path between nodes")

	// ErrStrategyExists is returned when registering a strategy whose name
	// is already taken.
	ErrStrategyExists = errors.New("strategy already registered")
)
