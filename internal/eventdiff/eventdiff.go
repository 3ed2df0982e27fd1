// Package eventdiff renders event streams as comparable lines and formats
// the differences between two renderings.
package eventdiff

import (
	"encoding/xml"
	"fmt"
	"slices"
	"sort"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jacoelho/xinclude/pkg/xmlevent"
)

// Line renders an event as a single comparable line. Attributes are
// rendered sorted by name so equivalent start tags compare equal.
func Line(ev xmlevent.Event) string {
	switch ev.Kind {
	case xmlevent.StartElement:
		return "StartElement " + qname(ev.Name) + attrs(ev.Attr)
	case xmlevent.EndElement:
		return "EndElement " + qname(ev.Name)
	case xmlevent.CharData:
		return fmt.Sprintf("CharData %q", ev.Text)
	case xmlevent.Comment:
		return fmt.Sprintf("Comment %q", ev.Text)
	case xmlevent.ProcInst:
		return "ProcInst " + ev.Target
	default:
		return ev.Kind.String()
	}
}

// Significant reports whether an event takes part in stream comparison.
// Processing instructions and whitespace-only text are excluded, matching
// the equivalence rules between a document with includes and its inlined
// form.
func Significant(ev xmlevent.Event) bool {
	switch ev.Kind {
	case xmlevent.ProcInst:
		return false
	case xmlevent.CharData:
		return !xmlevent.IsWhitespace(ev.Text)
	}
	return true
}

// Equal reports whether two renderings match line for line.
func Equal(a, b []string) bool {
	return slices.Equal(a, b)
}

// Unified formats a line diff between two renderings, prefixing removed
// lines with "-", added lines with "+", and common lines with two spaces.
func Unified(a, b []string) string {
	dmp := diffpatch.New()
	aChars, bChars, lines := dmp.DiffLinesToChars(joinLines(a), joinLines(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(aChars, bChars, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

func attrs(list []xml.Attr) string {
	if len(list) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(list))
	for _, attr := range list {
		rendered = append(rendered, fmt.Sprintf("%s=%q", qname(attr.Name), attr.Value))
	}
	sort.Strings(rendered)
	return " " + strings.Join(rendered, " ")
}
