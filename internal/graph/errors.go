package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCircularDependency is matched by every CircularDependencyError.
var ErrCircularDependency = errors.New("circular dependency detected")

// CircularDependencyError represents a circular dependency between tokens.
type CircularDependencyError[K comparable] struct {
	Node K
	Path []K
}

func (e CircularDependencyError[K]) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	if len(e.Path) == 0 {
		b.WriteString(fmt.Sprintf("    %v\n", e.Node))
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %v (cycle)\n", e.Node))
	} else {
		for i, node := range e.Path {
			b.WriteString(fmt.Sprintf("    %v\n", node))
			if i < len(e.Path)-1 {
				b.WriteString("      ↓\n")
			}
		}
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %v (cycle)\n", e.Path[0]))
	}

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Register a factory that resolves one side lazily\n")
	b.WriteString("  • Alias one side to a token backed by a value\n")
	b.WriteString("  • Restructure to remove the circular relationship\n")

	return b.String()
}

// Is reports whether target is ErrCircularDependency.
func (e CircularDependencyError[K]) Is(target error) bool {
	return target == ErrCircularDependency
}
