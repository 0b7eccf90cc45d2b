package exec

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/errors"
)

// LoopFrame pairs a loop's label with the parse-tree node of the loop
// statement it belongs to.
type LoopFrame struct {
	Label string
	Node  ast.Node
}

// LoopStack is the process-wide LIFO sequence of loop frames: the innermost
// enclosing loop is always on top.
type LoopStack struct {
	frames []LoopFrame
}

// NewLoopStack creates an empty loop stack.
func NewLoopStack() *LoopStack {
	return &LoopStack{}
}

// Push adds a new loop frame.
func (ls *LoopStack) Push(label string, node ast.Node) {
	ls.frames = append(ls.frames, LoopFrame{Label: label, Node: node})
}

// Pop removes and returns the top loop frame. Popping an empty stack is a
// program-structure bug: it means a loop exit ran without a matching entry.
func (ls *LoopStack) Pop() (LoopFrame, error) {
	if len(ls.frames) == 0 {
		return LoopFrame{}, errors.NewEmptyStackPopError("loop")
	}
	top := ls.frames[len(ls.frames)-1]
	ls.frames = ls.frames[:len(ls.frames)-1]
	return top, nil
}

// ContainsLabel reports whether label appears anywhere in the loop stack.
func (ls *LoopStack) ContainsLabel(label string) bool {
	for _, f := range ls.frames {
		if f.Label == label {
			return true
		}
	}
	return false
}

// Labels returns every label currently on the stack, top-first.
func (ls *LoopStack) Labels() []string {
	out := make([]string, len(ls.frames))
	for i, f := range ls.frames {
		out[i] = f.Label
	}
	// top-first: reverse push order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Depth returns the number of loop frames currently on the stack.
func (ls *LoopStack) Depth() int { return len(ls.frames) }

// CurrentLabel returns labelFromSource, the loop's label in the source, if
// it is non-empty, or a synthesized label of the form "<depth>-loop-<uuid>"
// otherwise, so every loop frame can be addressed even when the source
// left it unlabelled.
func CurrentLabel(labelFromSource string, depth int) string {
	if labelFromSource != "" {
		return labelFromSource
	}
	return fmt.Sprintf("%d-loop-%s", depth, uuid.NewString())
}
