package xinclude

import "github.com/jacoelho/xinclude/pkg/xmlevent"

// parsingContext pairs an open document with its resolved location. Each
// context exclusively owns its source and the byte stream beneath it.
type parsingContext struct {
	location string
	source   *xmlevent.Source
}

// contextStack tracks the chain of documents opened by include directives.
// The root document sits at the bottom; the innermost include is on top.
// The stack is never empty while the reader is open.
type contextStack struct {
	entries []parsingContext
}

func (s *contextStack) push(ctx parsingContext) {
	s.entries = append(s.entries, ctx)
}

// pop removes and returns the innermost context. Only Close may remove the
// root context; reaching it here is a defect in the transition engine.
func (s *contextStack) pop() parsingContext {
	if len(s.entries) <= 1 {
		panic("xinclude: context stack underflow")
	}
	top := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = parsingContext{}
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

// current returns the innermost context. It is re-derived on every call;
// callers must not retain the pointer across push or pop.
func (s *contextStack) current() *parsingContext {
	if len(s.entries) == 0 {
		panic("xinclude: context stack is empty")
	}
	return &s.entries[len(s.entries)-1]
}

// root returns the context of the root document.
func (s *contextStack) root() *parsingContext {
	if len(s.entries) == 0 {
		panic("xinclude: context stack is empty")
	}
	return &s.entries[0]
}

func (s *contextStack) depth() int {
	return len(s.entries)
}

// drain removes and returns the innermost context without the root guard.
// Used only by Close, which is allowed to empty the stack.
func (s *contextStack) drain() (parsingContext, bool) {
	if len(s.entries) == 0 {
		return parsingContext{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = parsingContext{}
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}
