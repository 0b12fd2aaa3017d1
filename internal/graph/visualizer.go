package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Visualizer provides methods to visualize the dependency graph
type Visualizer[K comparable] struct {
	graph *DependencyGraph[K]
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer[K comparable](graph *DependencyGraph[K]) *Visualizer[K] {
	return &Visualizer[K]{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format
func (v *Visualizer[K]) WriteDOT(w io.Writer) error {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	nodeIDs := make(map[K]string, len(v.graph.order))
	for i, key := range v.graph.order {
		node := v.graph.nodes[key]
		nodeID := fmt.Sprintf("n%d", i)
		nodeIDs[key] = nodeID

		fmt.Fprintf(&b, "  %s [label=%q, fillcolor=%q, style=filled];\n",
			nodeID, v.formatNodeLabel(node), nodeColor(node.Kind))
	}

	for _, from := range v.graph.order {
		for _, to := range v.graph.edges[from] {
			fmt.Fprintf(&b, "  %s -> %s;\n", nodeIDs[from], nodeIDs[to])
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAdjacencyList writes the graph as an adjacency list sorted by label
func (v *Visualizer[K]) WriteAdjacencyList(w io.Writer) error {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	nodes := make([]*Node[K], 0, len(v.graph.order))
	for _, key := range v.graph.order {
		nodes = append(nodes, v.graph.nodes[key])
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Label < nodes[j].Label
	})

	var b strings.Builder
	for _, node := range nodes {
		deps := make([]string, 0, len(node.Dependencies))
		for _, dep := range node.Dependencies {
			deps = append(deps, v.graph.nodes[dep].Label)
		}
		fmt.Fprintf(&b, "%s -> [%s]\n", node.Label, strings.Join(deps, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatNodeLabel creates a label for a node
func (v *Visualizer[K]) formatNodeLabel(node *Node[K]) string {
	if node.Kind == "" {
		return node.Label
	}

	return fmt.Sprintf("%s\n(%s)", node.Label, node.Kind)
}

// nodeColor determines the color for a node based on its provider kind
func nodeColor(kind string) string {
	switch kind {
	case "value":
		return "lightblue"
	case "class", "implicit":
		return "lightgreen"
	case "token":
		return "lightyellow"
	case "factory":
		return "orange"
	case "":
		return "lightgray" // missing provider
	default:
		return "white"
	}
}
