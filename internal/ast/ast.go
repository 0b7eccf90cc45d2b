// Package ast defines the minimal seam the execution context needs against
// the Naftah grammar and generated parse tree. The grammar itself, the full
// node hierarchy, and the parser that produces it live outside this module;
// only node identity and a coarse kind discriminator are needed here, for
// the parse-tree execution annotation map (see internal/exec).
package ast

// Position identifies a location in source, as reported by the lexer.
type Position struct {
	Line   int
	Column int
}

// Node is implemented by every parse-tree node the generated parser
// produces. NodeID must be stable for the lifetime of the node and unique
// within a single parse tree; the parser is responsible for assigning it
// (e.g. a monotonically increasing counter at construction time).
type Node interface {
	NodeID() uint64
	Kind() NodeKind
	Pos() Position
}

// NodeKind coarsely classifies a Node for
// hasAnyExecutedChildOrSubChildOfType queries. The generated grammar defines
// many more concrete node types than this; callers map their concrete type
// onto one of these kinds.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindProgram
	KindBlock
	KindIfStatement
	KindWhileLoop
	KindForLoop
	KindFunctionDecl
	KindFunctionCall
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindAssignment
	KindVariableDecl
	KindIdentifier
	KindQualifiedCall
)

// String renders a NodeKind for diagnostics.
func (k NodeKind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindBlock:
		return "Block"
	case KindIfStatement:
		return "IfStatement"
	case KindWhileLoop:
		return "WhileLoop"
	case KindForLoop:
		return "ForLoop"
	case KindFunctionDecl:
		return "FunctionDecl"
	case KindFunctionCall:
		return "FunctionCall"
	case KindReturnStatement:
		return "ReturnStatement"
	case KindBreakStatement:
		return "BreakStatement"
	case KindContinueStatement:
		return "ContinueStatement"
	case KindAssignment:
		return "Assignment"
	case KindVariableDecl:
		return "VariableDecl"
	case KindIdentifier:
		return "Identifier"
	case KindQualifiedCall:
		return "QualifiedCall"
	default:
		return "Unknown"
	}
}

// Children exposes a node's direct children, when the concrete node type
// supports traversal. Nodes that do not implement it are treated as leaves
// by hasAnyExecutedChildOrSubChildOfType.
type Parent interface {
	Children() []Node
}

// Walk visits node and every descendant reachable through Parent, calling
// visit for each. If visit returns false for a node, that node's
// descendants are skipped; its siblings are still visited.
func Walk(node Node, visit func(Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	if p, ok := node.(Parent); ok {
		for _, child := range p.Children() {
			Walk(child, visit)
		}
	}
}
