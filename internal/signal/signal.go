// Package signal models non-local control transfer (break, continue,
// return, and their labelled variants) as a tagged value returned up the
// evaluator's call chain, rather than as a native exception mechanism:
// ordinary control transfer should never unwind the Go call stack through
// panic/recover.
//
// Details is an immutable value carrying the label and result data a
// labelled break/continue/return needs, rather than a single process-wide
// mutable flag.
package signal

import "github.com/naftah-lang/naftah/internal/errors"

// Kind is the tag of a non-local control transfer.
type Kind int

const (
	// None indicates normal execution; no signal is in flight.
	None Kind = iota
	// Continue indicates a (possibly labelled) continue statement.
	Continue
	// Break indicates a (possibly labelled) break statement.
	Break
	// Return indicates a return statement, carrying the function's result.
	Return
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Continue:
		return "continue"
	case Break:
		return "break"
	case Return:
		return "return"
	default:
		return "unknown"
	}
}

// Details is an immutable record of a non-local control transfer. It is
// returned up the evaluator's call chain; loop and function frames inspect
// it to decide whether to keep unwinding, stop at their own boundary, or
// resume normal execution.
type Details struct {
	kind        Kind
	sourceLabel string
	targetLabel string
	result      any
}

// noneDetails is the well-known "no signal" value every evaluation step
// that completes normally returns.
var noneDetails = Details{kind: None}

// NewNone returns the no-signal value.
func NewNone() Details {
	return noneDetails
}

// NewContinue builds a Continue signal. label is empty for an unlabelled
// continue, naming the loop label it targets otherwise.
func NewContinue(label string) Details {
	return Details{kind: Continue, targetLabel: label}
}

// NewBreak builds a Break signal. label is empty for an unlabelled break,
// naming the loop label it targets otherwise.
func NewBreak(label string) Details {
	return Details{kind: Break, targetLabel: label}
}

// NewReturn builds a Return signal carrying the function's result value.
func NewReturn(result any) Details {
	return Details{kind: Return, result: result}
}

// New builds a Details from an explicit kind. It fails with InvalidSignal
// if kind is not one of the four recognized values, since a signal with no
// discriminated kind is a program-structure bug, not a user-facing
// condition.
func New(kind Kind, sourceLabel, targetLabel string, result any) (Details, error) {
	switch kind {
	case None, Continue, Break, Return:
		return Details{kind: kind, sourceLabel: sourceLabel, targetLabel: targetLabel, result: result}, nil
	default:
		return Details{}, errors.NewInvalidSignalError()
	}
}

// Kind returns the signal's discriminant.
func (d Details) Kind() Kind { return d.kind }

// IsActive reports whether a non-local transfer is in flight.
func (d Details) IsActive() bool { return d.kind != None }

// IsBreak reports whether the signal is a break.
func (d Details) IsBreak() bool { return d.kind == Break }

// IsContinue reports whether the signal is a continue.
func (d Details) IsContinue() bool { return d.kind == Continue }

// IsReturn reports whether the signal is a return.
func (d Details) IsReturn() bool { return d.kind == Return }

// SourceLabel returns the label of the loop the signal originated in, if any.
func (d Details) SourceLabel() string { return d.sourceLabel }

// TargetLabel returns the label a labelled break/continue targets; empty
// means "nearest enclosing loop".
func (d Details) TargetLabel() string { return d.targetLabel }

// Result returns the value carried by a Return signal, or nil otherwise.
func (d Details) Result() any { return d.result }

// TargetsLoop reports whether this signal (a break or continue) should stop
// unwinding at a loop labelled label. An unlabelled signal always targets
// the nearest enclosing loop.
func (d Details) TargetsLoop(label string) bool {
	if !d.IsBreak() && !d.IsContinue() {
		return false
	}
	return d.targetLabel == "" || d.targetLabel == label
}
