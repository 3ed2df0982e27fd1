package xinclude

import "github.com/jacoelho/xinclude/pkg/xmlevent"

// Namespace is the XInclude namespace URI.
const Namespace = "http://www.w3.org/2001/XInclude"

// ParseXML is the only supported value of the parse attribute.
const ParseXML = "xml"

const includeLocal = "include"

// includeDirective holds the recognized attributes of an include element.
// Other attributes and the element's entire content are ignored.
type includeDirective struct {
	href     string
	parse    string
	hasHref  bool
	hasParse bool
}

// isIncludeStart reports whether ev is the start tag of an include
// directive: local name "include" in the XInclude namespace, under any
// prefix.
func isIncludeStart(ev xmlevent.Event) bool {
	return ev.Kind == xmlevent.StartElement &&
		ev.Name.Space == Namespace &&
		ev.Name.Local == includeLocal
}

// parseIncludeDirective extracts href and parse from an include start tag.
// Only unqualified attributes count; the XInclude recommendation defines
// both without a namespace.
func parseIncludeDirective(ev xmlevent.Event) includeDirective {
	var d includeDirective
	for _, attr := range ev.Attr {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case "href":
			d.href = attr.Value
			d.hasHref = true
		case "parse":
			d.parse = attr.Value
			d.hasParse = true
		}
	}
	return d
}
