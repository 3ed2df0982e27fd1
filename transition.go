package xinclude

import "github.com/jacoelho/xinclude/pkg/xmlevent"

// transition classifies one lookahead step of the merged stream.
type transition uint8

const (
	// transitionPassthrough surfaces the event to the caller unchanged.
	transitionPassthrough transition = iota
	// transitionEnterInclude consumes an include directive and pushes the
	// target document.
	transitionEnterInclude
	// transitionExitContext pops an exhausted included document.
	transitionExitContext
	// transitionDiscardBoundary drops a nested document boundary event.
	transitionDiscardBoundary
)

// String returns the transition name.
func (t transition) String() string {
	switch t {
	case transitionPassthrough:
		return "passthrough"
	case transitionEnterInclude:
		return "enter-include"
	case transitionExitContext:
		return "exit-context"
	case transitionDiscardBoundary:
		return "discard-boundary"
	}
	return "unknown"
}

// classify decides how the engine handles the lookahead result of the
// current context. ok is false when the context is exhausted; depth is the
// context stack depth. The order is load-bearing: include directives are
// recognized at any depth, the root context never filters, exhausted
// nested contexts pop, and nested document boundaries are discarded.
func classify(ev xmlevent.Event, ok bool, depth int) transition {
	switch {
	case ok && isIncludeStart(ev):
		return transitionEnterInclude
	case depth == 1:
		return transitionPassthrough
	case !ok:
		return transitionExitContext
	case ev.Kind == xmlevent.StartDocument || ev.Kind == xmlevent.EndDocument:
		return transitionDiscardBoundary
	default:
		return transitionPassthrough
	}
}
