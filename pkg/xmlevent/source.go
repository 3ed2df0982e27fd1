package xmlevent

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Property names answered by Source.Property.
const (
	PropertyVersion    = "version"
	PropertyEncoding   = "encoding"
	PropertyStandalone = "standalone"
	PropertyOffset     = "offset"
)

var (
	errNilReader = errors.New("nil XML reader")
	errClosed    = errors.New("source is closed")
)

type phase uint8

const (
	phaseStart phase = iota
	phaseBody
	phaseDone
)

// Source streams events for a single XML document. A StartDocument event is
// synthesized before the first decoder token and an EndDocument event when
// the input is exhausted; afterwards the source reports a clean end of
// stream rather than an error.
type Source struct {
	dec    *xml.Decoder
	closer io.Closer

	pending    Event
	hasPending bool

	primed       xml.Token
	primedOffset int64
	hasPrimed    bool

	phase  phase
	closed bool
	empty  bool

	version    string
	encoding   string
	standalone string

	emitComments   bool
	emitPI         bool
	emitDirectives bool
}

// NewSource creates a source for r. The first token is read eagerly so that
// immediately malformed input fails here rather than on the first read. An
// XML declaration is folded into the synthesized StartDocument and exposed
// through Property. If r implements io.Closer, the source owns it: Close
// closes it, and so does a NewSource failure.
func NewSource(r io.Reader, opts ...Options) (*Source, error) {
	if r == nil {
		return nil, errNilReader
	}
	merged := JoinOptions(opts...)

	dec := xml.NewDecoder(r)
	dec.Strict = true
	if merged.strictSet {
		dec.Strict = merged.strict
	}
	if merged.charsetReaderSet {
		dec.CharsetReader = merged.charsetReader
	}
	if merged.entityMapSet {
		dec.Entity = merged.entityMap
	}

	s := &Source{
		dec:            dec,
		emitComments:   true,
		emitPI:         true,
		emitDirectives: true,
	}
	if merged.emitCommentsSet {
		s.emitComments = merged.emitComments
	}
	if merged.emitPISet {
		s.emitPI = merged.emitPI
	}
	if merged.emitDirectivesSet {
		s.emitDirectives = merged.emitDirectives
	}
	if closer, ok := r.(io.Closer); ok {
		s.closer = closer
	}

	if err := s.prime(); err != nil {
		if s.closer != nil {
			_ = s.closer.Close()
		}
		return nil, err
	}
	return s, nil
}

// prime reads the first token. An empty document is legal and yields only
// the synthesized boundary events.
func (s *Source) prime() error {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.empty = true
			return nil
		}
		return fmt.Errorf("read document: %w", err)
	}
	if pi, ok := tok.(xml.ProcInst); ok && pi.Target == "xml" {
		s.version, s.encoding, s.standalone = parseDeclaration(pi.Inst)
		return nil
	}
	s.primed = tok
	s.primedOffset = s.dec.InputOffset()
	s.hasPrimed = true
	return nil
}

// Peek returns the next event without consuming it. The boolean result is
// false at a clean end of stream; the error is reserved for genuine
// failures and never reports exhaustion.
func (s *Source) Peek() (Event, bool, error) {
	if s == nil || s.dec == nil {
		return Event{}, false, errNilReader
	}
	if s.closed {
		return Event{}, false, errClosed
	}
	if s.hasPending {
		return s.pending, true, nil
	}
	ev, ok, err := s.fetch()
	if err != nil || !ok {
		return Event{}, false, err
	}
	s.pending = ev
	s.hasPending = true
	return ev, true, nil
}

// Next consumes and returns the next event. It returns io.EOF once the
// stream is exhausted.
func (s *Source) Next() (Event, error) {
	ev, ok, err := s.Peek()
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, io.EOF
	}
	s.hasPending = false
	return ev, nil
}

// NextTag advances to the next StartElement or EndElement, consuming
// whitespace text, comments, processing instructions, directives, and the
// StartDocument boundary along the way. Reaching EndDocument returns that
// event; non-whitespace text is an error.
func (s *Source) NextTag() (Event, error) {
	for {
		ev, err := s.Next()
		if err != nil {
			return Event{}, err
		}
		switch ev.Kind {
		case StartElement, EndElement, EndDocument:
			return ev, nil
		case CharData:
			if !IsWhitespace(ev.Text) {
				return Event{}, fmt.Errorf("next tag: non-whitespace text at offset %d", ev.Offset)
			}
		}
	}
}

// ElementText returns the concatenated text content up to the enclosing
// element's end tag, which is consumed. It must be called after a
// StartElement has been consumed; encountering a child element is an error.
func (s *Source) ElementText() (string, error) {
	var sb strings.Builder
	for {
		ev, err := s.Next()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case EndElement:
			return sb.String(), nil
		case CharData:
			sb.Write(ev.Text)
		case StartElement:
			return "", fmt.Errorf("element text: start element <%s> at offset %d", ev.Name.Local, ev.Offset)
		case EndDocument:
			return "", fmt.Errorf("element text: unexpected end of document")
		}
	}
}

// Skip consumes events through the end of the current element. It must be
// called after a StartElement has been consumed; nested elements are
// skipped whole.
func (s *Source) Skip() error {
	depth := 1
	for depth > 0 {
		ev, err := s.Next()
		if err != nil {
			return fmt.Errorf("skip element: %w", err)
		}
		switch ev.Kind {
		case StartElement:
			depth++
		case EndElement:
			depth--
		case EndDocument:
			return fmt.Errorf("skip element: unexpected end of document")
		}
	}
	return nil
}

// Property reports document metadata: the declaration's version, encoding,
// and standalone values, and the current input offset.
func (s *Source) Property(name string) (any, bool) {
	if s == nil || s.dec == nil {
		return nil, false
	}
	switch name {
	case PropertyVersion:
		return s.version, true
	case PropertyEncoding:
		return s.encoding, true
	case PropertyStandalone:
		return s.standalone, true
	case PropertyOffset:
		return s.dec.InputOffset(), true
	}
	return nil, false
}

// Close closes the underlying reader when the source owns one. Calling
// Close more than once is a no-op.
func (s *Source) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	return nil
}

func (s *Source) fetch() (Event, bool, error) {
	switch s.phase {
	case phaseStart:
		s.phase = phaseBody
		return Event{Kind: StartDocument}, true, nil
	case phaseBody:
		for {
			var tok xml.Token
			var offset int64
			var err error
			switch {
			case s.hasPrimed:
				tok = s.primed
				offset = s.primedOffset
				s.primed = nil
				s.hasPrimed = false
			case s.empty:
				err = io.EOF
			default:
				tok, err = s.dec.Token()
				offset = s.dec.InputOffset()
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					s.phase = phaseDone
					return Event{Kind: EndDocument, Offset: s.dec.InputOffset()}, true, nil
				}
				return Event{}, false, err
			}
			ev, emit := s.eventFor(tok, offset)
			if !emit {
				continue
			}
			return ev, true, nil
		}
	default:
		return Event{}, false, nil
	}
}

func (s *Source) eventFor(tok xml.Token, offset int64) (Event, bool) {
	switch t := tok.(type) {
	case xml.StartElement:
		return Event{Kind: StartElement, Name: t.Name, Attr: t.Attr, Offset: offset}, true
	case xml.EndElement:
		return Event{Kind: EndElement, Name: t.Name, Offset: offset}, true
	case xml.CharData:
		return Event{Kind: CharData, Text: t, Offset: offset}, true
	case xml.Comment:
		if !s.emitComments {
			return Event{}, false
		}
		return Event{Kind: Comment, Text: t, Offset: offset}, true
	case xml.ProcInst:
		if !s.emitPI {
			return Event{}, false
		}
		return Event{Kind: ProcInst, Target: t.Target, Text: t.Inst, Offset: offset}, true
	case xml.Directive:
		if !s.emitDirectives {
			return Event{}, false
		}
		return Event{Kind: Directive, Text: t, Offset: offset}, true
	}
	return Event{}, false
}

// parseDeclaration extracts the pseudo-attributes of an XML declaration.
func parseDeclaration(inst []byte) (version, encoding, standalone string) {
	rest := string(inst)
	for rest != "" {
		rest = strings.TrimLeft(rest, " \t\r\n")
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			break
		}
		name := strings.TrimRight(rest[:eq], " \t\r\n")
		rest = strings.TrimLeft(rest[eq+1:], " \t\r\n")
		if len(rest) < 2 {
			break
		}
		quote := rest[0]
		if quote != '"' && quote != '\'' {
			break
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			break
		}
		value := rest[1 : 1+end]
		rest = rest[end+2:]
		switch name {
		case "version":
			version = value
		case "encoding":
			encoding = value
		case "standalone":
			standalone = value
		}
	}
	return version, encoding, standalone
}
