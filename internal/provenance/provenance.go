// Package provenance links tree nodes back to the input they were
// reconstructed from.
package provenance

import (
	"fmt"
	"go/token"

	"github.com/konchunas/rellic/internal/ast"
)

// Kind classifies what an Origin points at.
type Kind int

const (
	_ Kind = iota
	KindStmt
	KindExpr
	KindFunction
	KindType
)

func (k Kind) String() string {
	switch k {
	case KindStmt:
		return "stmt"
	case KindExpr:
		return "expr"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// Origin describes where a node came from. For records Name is the
// debug-info type name used for field reconciliation.
type Origin struct {
	Kind Kind
	Name string
	Pos  token.Position
}

func (o Origin) String() string {
	switch {
	case o.Pos.IsValid() && o.Name != "":
		return fmt.Sprintf("%s %s (%s)", o.Kind, o.Name, o.Pos)
	case o.Pos.IsValid():
		return fmt.Sprintf("%s at %s", o.Kind, o.Pos)
	case o.Name != "":
		return fmt.Sprintf("%s %s", o.Kind, o.Name)
	default:
		return o.Kind.String()
	}
}

// Map is the node to origin store shared by all passes of a run. It is
// filled by the frontend; passes only read it.
type Map struct {
	origins map[ast.Node]Origin
}

func NewMap() *Map {
	return &Map{origins: make(map[ast.Node]Origin)}
}

func (m *Map) Set(n ast.Node, o Origin) {
	m.origins[n] = o
}

// Lookup returns the origin recorded for n.
func (m *Map) Lookup(n ast.Node) (Origin, bool) {
	if m == nil {
		return Origin{}, false
	}
	o, ok := m.origins[n]
	return o, ok
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.origins)
}

// Describe renders the origin of n for log output.
func (m *Map) Describe(n ast.Node) fmt.Stringer {
	o, ok := m.Lookup(n)
	if !ok {
		return Origin{}
	}
	return o
}
