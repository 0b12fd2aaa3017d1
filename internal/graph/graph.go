package graph

import (
	"fmt"
	"sync"
)

// DependencyGraph manages the dependency relationships between injection tokens.
// It provides cycle detection, topological sorting, and dependency lookup.
type DependencyGraph[K comparable] struct {
	mu    sync.RWMutex
	nodes map[K]*Node[K]
	order []K       // insertion order, for deterministic traversal
	edges map[K][]K // adjacency list representation
}

// Node represents a token in the dependency graph
type Node[K comparable] struct {
	Key   K
	Label string
	Kind  string // provider kind, used for rendering

	// Graph metadata
	InDegree  int // number of dependents
	OutDegree int // number of dependencies

	// Dependency information
	Dependencies []K // tokens this node depends on
	Dependents   []K // tokens that depend on this node
}

// New creates a new dependency graph
func New[K comparable]() *DependencyGraph[K] {
	return &DependencyGraph[K]{
		nodes: make(map[K]*Node[K]),
		edges: make(map[K][]K),
	}
}

// AddNode adds a node and its outgoing edges. Adding a node that already
// exists replaces its edges. Dependency nodes are created on demand.
func (g *DependencyGraph[K]) AddNode(key K, kind string, dependencies ...K) {
	g.mu.Lock()
	defer g.mu.Unlock()

	node := g.ensureNode(key)
	node.Kind = kind

	deps := make([]K, 0, len(dependencies))
	for _, dep := range dependencies {
		g.ensureNode(dep)
		deps = append(deps, dep)
	}

	g.edges[key] = deps
	g.updateDegrees()
}

func (g *DependencyGraph[K]) ensureNode(key K) *Node[K] {
	node, exists := g.nodes[key]
	if !exists {
		node = &Node[K]{
			Key:   key,
			Label: fmt.Sprint(key),
		}
		g.nodes[key] = node
		g.order = append(g.order, key)
	}

	return node
}

// updateDegrees recalculates in/out degrees for all nodes
func (g *DependencyGraph[K]) updateDegrees() {
	for _, node := range g.nodes {
		node.InDegree = 0
		node.OutDegree = 0
		node.Dependencies = nil
		node.Dependents = nil
	}

	for _, from := range g.order {
		tos := g.edges[from]
		fromNode := g.nodes[from]
		fromNode.OutDegree = len(tos)
		fromNode.Dependencies = append([]K(nil), tos...)

		for _, to := range tos {
			toNode := g.nodes[to]
			toNode.InDegree++
			toNode.Dependents = append(toNode.Dependents, from)
		}
	}
}

// TopologicalSort returns nodes in dependency order (dependencies first)
func (g *DependencyGraph[K]) TopologicalSort() ([]*Node[K], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Kahn's algorithm on out-degrees: a node is ready once all of its
	// dependencies have been emitted.
	remaining := make(map[K]int, len(g.nodes))
	queue := make([]K, 0)
	for _, key := range g.order {
		remaining[key] = g.nodes[key].OutDegree
		if remaining[key] == 0 {
			queue = append(queue, key)
		}
	}

	result := make([]*Node[K], 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.nodes[current]
		result = append(result, node)

		for _, dependent := range node.Dependents {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, fmt.Errorf("circular dependency detected: graph contains %d nodes but only %d could be sorted",
			len(g.nodes), len(result))
	}

	return result, nil
}

// DetectCycles checks if the graph contains any cycles and reports the first
// one found along with its path.
func (g *DependencyGraph[K]) DetectCycles() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = iota
		visiting
		visited
	)

	state := make(map[K]int, len(g.nodes))
	var stack []K

	var visit func(key K) error
	visit = func(key K) error {
		state[key] = visiting
		stack = append(stack, key)

		for _, dep := range g.edges[key] {
			switch state[dep] {
			case visiting:
				// Cycle runs from the first occurrence of dep to the top of the stack
				for i, k := range stack {
					if k == dep {
						return CircularDependencyError[K]{
							Node: dep,
							Path: append([]K(nil), stack[i:]...),
						}
					}
				}
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[key] = visited
		return nil
	}

	for _, key := range g.order {
		if state[key] == unvisited {
			if err := visit(key); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetDependencies returns the direct dependencies of a node
func (g *DependencyGraph[K]) GetDependencies(key K) []K {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if node, exists := g.nodes[key]; exists {
		return append([]K(nil), node.Dependencies...)
	}

	return nil
}

// GetDependents returns nodes that depend on the given node
func (g *DependencyGraph[K]) GetDependents(key K) []K {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if node, exists := g.nodes[key]; exists {
		return append([]K(nil), node.Dependents...)
	}

	return nil
}
