package xinclude

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	xierrors "github.com/jacoelho/xinclude/errors"
	"github.com/jacoelho/xinclude/internal/source"
	"github.com/jacoelho/xinclude/pkg/xmlevent"
)

var errReaderClosed = errors.New("reader is closed")

// Reader merges a document and everything it transitively includes into a
// single event stream. Include directives never surface: each one is
// consumed whole and replaced by the content of its target, with the
// target's document boundary events discarded. A Reader is not safe for
// concurrent use.
type Reader struct {
	stack      contextStack
	resolver   source.Resolver
	sourceOpts []xmlevent.Options
	logger     log.Logger
	closed     bool
}

func newReader(res source.Resolver, location string, cfg readerConfig) (*Reader, error) {
	r := &Reader{
		resolver:   res,
		sourceOpts: cfg.sourceOpts,
		logger:     cfg.logger,
	}
	if r.logger == nil {
		r.logger = log.NewNopLogger()
	}
	doc, systemID, err := res.Resolve(source.ResolveRequest{Href: location})
	if err != nil {
		return nil, &xierrors.OpenError{Location: location, Err: err}
	}
	src, err := xmlevent.NewSource(doc, r.sourceOpts...)
	if err != nil {
		return nil, &xierrors.OpenError{Location: systemID, Err: err}
	}
	r.stack.push(parsingContext{location: systemID, source: src})
	level.Debug(r.logger).Log("msg", "opened document", "location", systemID)
	return r, nil
}

// HasNext reports whether another event is available. Resolution failures
// triggered by the lookahead surface here.
func (r *Reader) HasNext() (bool, error) {
	_, ok, err := r.peek()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Peek returns the next event of the merged stream without consuming it.
// The boolean result is false at end of stream; the error is reserved for
// genuine failures and never reports exhaustion.
func (r *Reader) Peek() (xmlevent.Event, bool, error) {
	return r.peek()
}

// Next consumes and returns the next event of the merged stream. It
// returns io.EOF once the root document is exhausted.
func (r *Reader) Next() (xmlevent.Event, error) {
	_, ok, err := r.peek()
	if err != nil {
		return xmlevent.Event{}, err
	}
	if !ok {
		return xmlevent.Event{}, io.EOF
	}
	return r.stack.current().source.Next()
}

// NextTag advances to the next StartElement or EndElement of the merged
// stream, consuming whitespace text, comments, processing instructions,
// directives, and the document's StartDocument along the way. Reaching
// EndDocument returns that event; non-whitespace text is an error. Include
// directives encountered while skipping are resolved, never surfaced.
func (r *Reader) NextTag() (xmlevent.Event, error) {
	for {
		ev, ok, err := r.peek()
		if err != nil {
			return xmlevent.Event{}, err
		}
		if !ok {
			return xmlevent.Event{}, io.EOF
		}
		switch ev.Kind {
		case xmlevent.StartElement, xmlevent.EndElement, xmlevent.EndDocument:
			return r.stack.current().source.Next()
		case xmlevent.CharData:
			if !xmlevent.IsWhitespace(ev.Text) {
				return xmlevent.Event{}, fmt.Errorf("next tag in %s: non-whitespace text at offset %d", r.stack.current().location, ev.Offset)
			}
		}
		if _, err := r.stack.current().source.Next(); err != nil {
			return xmlevent.Event{}, err
		}
	}
}

// ElementText returns the text content of the element whose start tag was
// just consumed. It reads from the context that produced the start tag, so
// it must not span an include boundary.
func (r *Reader) ElementText() (string, error) {
	if r.closed {
		return "", errReaderClosed
	}
	return r.stack.current().source.ElementText()
}

// Property reports a property of the root document, regardless of how many
// includes are currently open.
func (r *Reader) Property(name string) (any, bool) {
	if r.closed {
		return nil, false
	}
	return r.stack.root().source.Property(name)
}

// Location returns the resolved location of the context currently being
// read: the innermost include, or the root document outside of any.
func (r *Reader) Location() string {
	if r.closed {
		return ""
	}
	return r.stack.current().location
}

// Close releases every open context, innermost first, and leaves the
// reader unusable. Calling Close more than once is a no-op. The first
// close failure is reported; remaining contexts are still closed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var firstErr error
	for {
		ctx, ok := r.stack.drain()
		if !ok {
			break
		}
		if err := ctx.source.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", ctx.location, err)
		}
	}
	return firstErr
}

// peek drives the lookahead engine: it applies transitions to the current
// context until one produces an event to surface (or the root document is
// exhausted), then reports that lookahead without consuming it. All stack
// mutation happens here and in Close.
func (r *Reader) peek() (xmlevent.Event, bool, error) {
	if r.closed {
		return xmlevent.Event{}, false, errReaderClosed
	}
	for {
		cur := r.stack.current()
		ev, ok, err := cur.source.Peek()
		if err != nil {
			return xmlevent.Event{}, false, fmt.Errorf("read %s: %w", cur.location, err)
		}
		switch classify(ev, ok, r.stack.depth()) {
		case transitionEnterInclude:
			if err := r.enterInclude(ev); err != nil {
				return xmlevent.Event{}, false, err
			}
		case transitionExitContext:
			popped := r.stack.pop()
			if err := popped.source.Close(); err != nil {
				return xmlevent.Event{}, false, fmt.Errorf("close %s: %w", popped.location, err)
			}
			level.Debug(r.logger).Log("msg", "leaving include", "location", popped.location, "depth", r.stack.depth())
		case transitionDiscardBoundary:
			if _, err := cur.source.Next(); err != nil {
				return xmlevent.Event{}, false, err
			}
		default:
			return ev, ok, nil
		}
	}
}

// enterInclude performs the include transition: the directive element is
// consumed whole (its content, including any fallback, is discarded
// unread), its attributes are validated, and the target document is pushed
// as the new innermost context. A failed push leaves the stack unchanged,
// with the directive already consumed.
func (r *Reader) enterInclude(ev xmlevent.Event) error {
	cur := r.stack.current()
	d := parseIncludeDirective(ev)
	if _, err := cur.source.Next(); err != nil {
		return err
	}
	if err := cur.source.Skip(); err != nil {
		return fmt.Errorf("include in %s: %w", cur.location, err)
	}
	if !d.hasHref {
		return &xierrors.MissingHrefError{Location: cur.location, Offset: ev.Offset}
	}
	if d.hasParse && d.parse != ParseXML {
		return &xierrors.UnsupportedParseError{Location: cur.location, Parse: d.parse, Offset: ev.Offset}
	}
	doc, systemID, err := r.resolver.Resolve(source.ResolveRequest{BaseSystemID: cur.location, Href: d.href})
	if err != nil {
		return &xierrors.OpenError{Location: d.href, Err: err}
	}
	src, err := xmlevent.NewSource(doc, r.sourceOpts...)
	if err != nil {
		return &xierrors.OpenError{Location: systemID, Err: err}
	}
	r.stack.push(parsingContext{location: systemID, source: src})
	level.Debug(r.logger).Log("msg", "entering include", "href", d.href, "location", systemID, "depth", r.stack.depth())
	return nil
}
