package graph_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/junioryono/syringe/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyGraph_AddNode(t *testing.T) {
	t.Run("creates dependency nodes on demand", func(t *testing.T) {
		g := graph.New[string]()
		g.AddNode("a", "class", "b", "c")

		nodes, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Len(t, nodes, 3)
		assert.Equal(t, []string{"b", "c"}, g.GetDependencies("a"))
		assert.Empty(t, g.GetDependencies("b"))
		assert.Equal(t, []string{"a"}, g.GetDependents("b"))
	})

	t.Run("re-adding replaces edges", func(t *testing.T) {
		g := graph.New[string]()
		g.AddNode("a", "class", "b")
		g.AddNode("a", "factory", "c")

		assert.Equal(t, []string{"c"}, g.GetDependencies("a"))
		assert.Empty(t, g.GetDependents("b"))
		assert.Equal(t, []string{"a"}, g.GetDependents("c"))
	})

	t.Run("unknown node", func(t *testing.T) {
		g := graph.New[string]()

		assert.Nil(t, g.GetDependencies("missing"))
		assert.Nil(t, g.GetDependents("missing"))
	})
}

func TestDependencyGraph_TopologicalSort(t *testing.T) {
	t.Run("dependencies come first", func(t *testing.T) {
		g := graph.New[string]()
		g.AddNode("handler", "class", "service", "logger")
		g.AddNode("service", "class", "repo")
		g.AddNode("repo", "value")
		g.AddNode("logger", "value")

		nodes, err := g.TopologicalSort()
		require.NoError(t, err)
		require.Len(t, nodes, 4)

		position := make(map[string]int)
		for i, n := range nodes {
			position[n.Key] = i
		}

		assert.Less(t, position["repo"], position["service"])
		assert.Less(t, position["service"], position["handler"])
		assert.Less(t, position["logger"], position["handler"])
	})

	t.Run("fails on cycle", func(t *testing.T) {
		g := graph.New[string]()
		g.AddNode("a", "class", "b")
		g.AddNode("b", "class", "a")

		_, err := g.TopologicalSort()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "circular dependency")
	})
}

func TestDependencyGraph_DetectCycles(t *testing.T) {
	tests := []struct {
		name     string
		build    func(g *graph.DependencyGraph[string])
		wantPath []string
	}{
		{
			name: "acyclic",
			build: func(g *graph.DependencyGraph[string]) {
				g.AddNode("a", "class", "b")
				g.AddNode("b", "class", "c")
			},
		},
		{
			name: "self loop",
			build: func(g *graph.DependencyGraph[string]) {
				g.AddNode("a", "class", "a")
			},
			wantPath: []string{"a"},
		},
		{
			name: "three node cycle",
			build: func(g *graph.DependencyGraph[string]) {
				g.AddNode("root", "class", "a")
				g.AddNode("a", "class", "b")
				g.AddNode("b", "class", "c")
				g.AddNode("c", "token", "a")
			},
			wantPath: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New[string]()
			tt.build(g)

			err := g.DetectCycles()
			if tt.wantPath == nil {
				assert.NoError(t, err)
				return
			}

			var cycleErr graph.CircularDependencyError[string]
			require.True(t, errors.As(err, &cycleErr))
			assert.Equal(t, tt.wantPath, cycleErr.Path)
			assert.Equal(t, tt.wantPath[0], cycleErr.Node)
		})
	}
}

func TestCircularDependencyError_Error(t *testing.T) {
	err := graph.CircularDependencyError[string]{
		Node: "a",
		Path: []string{"a", "b"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "circular dependency detected")
	assert.Contains(t, msg, "a (cycle)")
	assert.Less(t, strings.Index(msg, "    a\n"), strings.Index(msg, "    b\n"))

	empty := graph.CircularDependencyError[string]{Node: "x"}
	assert.Contains(t, empty.Error(), "x (cycle)")
}

func TestDependencyGraph_ConcurrentOperations(t *testing.T) {
	g := graph.New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if idx == 0 {
				g.AddNode(idx, "value")
				return
			}
			g.AddNode(idx, "class", idx-1)
		}(i)
	}

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.DetectCycles()
			_ = g.GetDependencies(5)
			_ = g.GetDependents(5)
		}()
	}

	wg.Wait()

	assert.NoError(t, g.DetectCycles())

	nodes, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, nodes, 10)
	for i, n := range nodes {
		assert.Equal(t, i, n.Key, fmt.Sprintf("position %d", i))
	}
}

func TestVisualizer(t *testing.T) {
	g := graph.New[string]()
	g.AddNode("service", "class", "repo")
	g.AddNode("repo", "value")

	v := graph.NewVisualizer(g)

	t.Run("dot", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, v.WriteDOT(&buf))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "digraph dependencies {"))
		assert.Contains(t, out, "n0 -> n1;")
		assert.Contains(t, out, "lightgreen")
		assert.Contains(t, out, "lightblue")
	})

	t.Run("adjacency list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, v.WriteAdjacencyList(&buf))

		assert.Equal(t, "repo -> []\nservice -> [repo]\n", buf.String())
	})
}
