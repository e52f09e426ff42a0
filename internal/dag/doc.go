// Package dag is a small directed graph with deterministic cycle detection
// and topological ordering. The constraint resolver builds one graph per
// axis from the anchors of a constraint scope.
package dag
