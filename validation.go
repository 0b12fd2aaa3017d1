package syringe

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/junioryono/syringe/internal/graph"
)

// Validate checks the registrations visible from c, and those of every
// scope below c, for dependency cycles. Nothing is constructed. Factories
// are opaque and contribute no edges.
func (c *Container) Validate() error {
	g := c.dependencyGraph()
	if err := g.DetectCycles(); err != nil {
		return err
	}

	c.mu.RLock()
	scopes := make([]*Container, 0, len(c.scopes))
	for _, scope := range c.scopes {
		scopes = append(scopes, scope)
	}
	c.mu.RUnlock()

	for _, scope := range scopes {
		if err := scope.Validate(); err != nil {
			return fmt.Errorf("scope %s: %w", scope.id, err)
		}
	}

	return nil
}

// WriteGraph writes the dependency graph visible from c in Graphviz DOT format.
func (c *Container) WriteGraph(w io.Writer) error {
	return graph.NewVisualizer(c.dependencyGraph()).WriteDOT(w)
}

// WriteAdjacency writes the dependency graph visible from c as one
// "token -> [deps]" line per token, sorted by token.
func (c *Container) WriteAdjacency(w io.Writer) error {
	return graph.NewVisualizer(c.dependencyGraph()).WriteAdjacencyList(w)
}

// ConstructionOrder returns every token reachable from c's visible
// registrations, dependencies before their dependents. It fails with a
// CircularDependencyError if the graph has a cycle.
func (c *Container) ConstructionOrder() ([]Token, error) {
	g := c.dependencyGraph()
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	nodes, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	order := make([]Token, len(nodes))
	for i, node := range nodes {
		order[i] = node.Key
	}

	return order, nil
}

// Dependencies returns the tokens token resolves directly, as seen from c.
// Factories report none.
func (c *Container) Dependencies(token Token) []Token {
	return c.dependencyGraph().GetDependencies(token)
}

// Dependents returns the tokens visible from c that resolve token directly.
func (c *Container) Dependents(token Token) []Token {
	return c.dependencyGraph().GetDependents(token)
}

// dependencyGraph builds the graph of every visible registration and of the
// implicitly constructible types they reach.
func (c *Container) dependencyGraph() *graph.DependencyGraph[Token] {
	g := graph.New[Token]()
	visible := c.registrations()

	queue := make([]Token, 0, len(visible))
	for token := range visible {
		queue = append(queue, token)
	}
	slices.SortFunc(queue, func(a, b Token) int {
		return strings.Compare(a.String(), b.String())
	})

	seen := make(map[Token]bool, len(queue))
	for len(queue) > 0 {
		token := queue[0]
		queue = queue[1:]

		if seen[token] {
			continue
		}
		seen[token] = true

		kind, deps := c.edgesOf(token, visible[token])
		g.AddNode(token, kind, deps...)
		queue = append(queue, deps...)
	}

	return g
}

// edgesOf returns the node kind and dependency tokens of token. Unknown
// named tokens get an empty kind.
func (c *Container) edgesOf(token Token, reg *registration) (string, []Token) {
	if reg == nil {
		if !c.constructible(token) {
			return "", nil
		}
		return "implicit", c.paramsOf(token.Type())
	}

	switch p := reg.provider.(type) {
	case TokenProvider:
		return p.Kind().String(), []Token{p.Token}
	case ClassProvider:
		return p.Kind().String(), c.paramsOf(p.Class)
	default:
		return p.Kind().String(), nil
	}
}

func (c *Container) paramsOf(t reflect.Type) []Token {
	if info, ok := c.options.types.Lookup(t); ok {
		return info.Params
	}
	return nil
}
