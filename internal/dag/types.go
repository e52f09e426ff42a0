package dag

import (
	"fmt"
	"strings"
	"sync"
)

// Graph is a collection of nodes and their dependencies. In this project the
// nodes are layout anchors and an edge points from the anchor being
// positioned against to the anchor that depends on it. All operations on the
// graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node is a single vertex. It is un-exported so callers work with string IDs.
type node struct {
	id string
	// deps holds the nodes this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the nodes that depend on this node (successors).
	dependents map[string]*node
}

// CycleError reports a dependency cycle. Path starts and ends on the same
// node, e.g. [a b a].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving node '%s': %s", e.Path[0], strings.Join(e.Path, " -> "))
}
