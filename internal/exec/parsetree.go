package exec

import "github.com/naftah-lang/naftah/internal/ast"

// executionMap tracks which parse-tree nodes have already been evaluated
// within one scope. It is lazily allocated since most scopes never need it.
type executionMap struct {
	executed map[uint64]bool
	// nodes keeps the live Node alongside its id so
	// hasAnyExecutedChildOrSubChildOfType can still walk its descendants
	// after the evaluator has moved on.
	nodes map[uint64]ast.Node
}

func newExecutionMap() *executionMap {
	return &executionMap{executed: make(map[uint64]bool), nodes: make(map[uint64]ast.Node)}
}

func (m *executionMap) mark(node ast.Node) {
	m.executed[node.NodeID()] = true
	m.nodes[node.NodeID()] = node
}

func (m *executionMap) isSet(node ast.Node) bool {
	return m.executed[node.NodeID()]
}

// mergeFrom copies every entry of src into m, overwriting any existing
// entry: child entries win over whatever the parent already recorded.
func (m *executionMap) mergeFrom(src *executionMap) {
	if src == nil {
		return
	}
	for id, v := range src.executed {
		m.executed[id] = v
	}
	for id, n := range src.nodes {
		m.nodes[id] = n
	}
}

// MarkExecuted sets the annotation for node to true in this scope's
// lazily-allocated map.
func (s *Scope) MarkExecuted(node ast.Node) {
	if s.tree == nil {
		s.tree = newExecutionMap()
	}
	s.tree.mark(node)
}

// IsExecuted returns the stored flag for node in this scope, or false if
// unset or the map has not been allocated.
func (s *Scope) IsExecuted(node ast.Node) bool {
	if s.tree == nil {
		return false
	}
	return s.tree.isSet(node)
}

// HasAnyExecutedChildOrSubChildOfType reports whether any descendant of
// node (inclusive of node's own direct children, exclusive of node itself)
// of the given kind is marked executed in the annotation map of this scope
// or of any of its ancestors. This is how the evaluator detects whether a
// sub-construct was entered during a recursive walk, e.g. "did any branch
// of this if-statement actually run".
//
// Only this scope and its parent chain are consulted; scopes deeper than
// this one are not. A deeper scope's annotations become visible here only
// after that scope is deregistered and its entries are merged up into its
// parent.
func (s *Scope) HasAnyExecutedChildOrSubChildOfType(node ast.Node, kind ast.NodeKind) bool {
	var matches []uint64
	ast.Walk(node, func(n ast.Node) bool {
		if n.NodeID() != node.NodeID() && n.Kind() == kind {
			matches = append(matches, n.NodeID())
		}
		return true
	})
	if len(matches) == 0 {
		return false
	}
	for cur := s; cur != nil; cur = cur.parent {
		if cur.tree == nil {
			continue
		}
		for _, id := range matches {
			if cur.tree.executed[id] {
				return true
			}
		}
	}
	return false
}

// mergeParseTreeInto copies s's annotation map into parent's: on scope
// deregistration the child's entries overwrite the parent's.
func (s *Scope) mergeParseTreeInto(parent *Scope) {
	if s.tree == nil {
		return
	}
	if parent.tree == nil {
		parent.tree = newExecutionMap()
	}
	parent.tree.mergeFrom(s.tree)
}
