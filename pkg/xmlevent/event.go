package xmlevent

import "encoding/xml"

// Kind identifies the type of an XML event.
type Kind uint8

const (
	// StartDocument is emitted once before any document content.
	StartDocument Kind = iota
	// EndDocument is emitted once after all document content.
	EndDocument
	// StartElement marks an element start tag.
	StartElement
	// EndElement marks an element end tag.
	EndElement
	// CharData carries text content, including CDATA sections.
	CharData
	// Comment carries a comment body.
	Comment
	// ProcInst carries a processing instruction.
	ProcInst
	// Directive carries a bare directive such as a DOCTYPE declaration.
	Directive
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case StartDocument:
		return "StartDocument"
	case EndDocument:
		return "EndDocument"
	case StartElement:
		return "StartElement"
	case EndElement:
		return "EndElement"
	case CharData:
		return "CharData"
	case Comment:
		return "Comment"
	case ProcInst:
		return "ProcInst"
	case Directive:
		return "Directive"
	}
	return "Unknown"
}

// Event is a single item of the document stream.
// Text is only valid until the next read call; Name and Attr are stable.
type Event struct {
	Kind   Kind
	Name   xml.Name
	Attr   []xml.Attr
	Text   []byte
	Target string
	Offset int64
}

// Attribute returns the value of the named unqualified attribute.
func (e Event) Attribute(local string) (string, bool) {
	for _, attr := range e.Attr {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// IsWhitespace reports whether text contains only XML whitespace.
func IsWhitespace(text []byte) bool {
	for _, b := range text {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
