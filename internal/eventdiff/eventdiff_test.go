package eventdiff

import (
	"encoding/xml"
	"testing"

	"github.com/jacoelho/xinclude/pkg/xmlevent"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		ev   xmlevent.Event
		want string
	}{
		{
			"start element",
			xmlevent.Event{Kind: xmlevent.StartElement, Name: xml.Name{Local: "item"}},
			"StartElement item",
		},
		{
			"start element with namespace",
			xmlevent.Event{Kind: xmlevent.StartElement, Name: xml.Name{Space: "urn:x", Local: "item"}},
			"StartElement {urn:x}item",
		},
		{
			"attributes sorted",
			xmlevent.Event{
				Kind: xmlevent.StartElement,
				Name: xml.Name{Local: "item"},
				Attr: []xml.Attr{
					{Name: xml.Name{Local: "b"}, Value: "2"},
					{Name: xml.Name{Local: "a"}, Value: "1"},
				},
			},
			`StartElement item a="1" b="2"`,
		},
		{
			"end element",
			xmlevent.Event{Kind: xmlevent.EndElement, Name: xml.Name{Local: "item"}},
			"EndElement item",
		},
		{
			"text",
			xmlevent.Event{Kind: xmlevent.CharData, Text: []byte("a\nb")},
			`CharData "a\nb"`,
		},
		{
			"comment",
			xmlevent.Event{Kind: xmlevent.Comment, Text: []byte(" c ")},
			`Comment " c "`,
		},
		{
			"processing instruction",
			xmlevent.Event{Kind: xmlevent.ProcInst, Target: "style"},
			"ProcInst style",
		},
		{
			"document boundary",
			xmlevent.Event{Kind: xmlevent.StartDocument},
			"StartDocument",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line(tt.ev); got != tt.want {
				t.Fatalf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignificant(t *testing.T) {
	tests := []struct {
		name string
		ev   xmlevent.Event
		want bool
	}{
		{"element", xmlevent.Event{Kind: xmlevent.StartElement}, true},
		{"text", xmlevent.Event{Kind: xmlevent.CharData, Text: []byte("x")}, true},
		{"whitespace text", xmlevent.Event{Kind: xmlevent.CharData, Text: []byte(" \n\t")}, false},
		{"processing instruction", xmlevent.Event{Kind: xmlevent.ProcInst, Target: "p"}, false},
		{"comment", xmlevent.Event{Kind: xmlevent.Comment, Text: []byte("c")}, true},
		{"document boundary", xmlevent.Event{Kind: xmlevent.EndDocument}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Significant(tt.ev); got != tt.want {
				t.Fatalf("Significant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal([]string{"a", "b"}, []string{"a", "b"}) {
		t.Fatal("Equal() = false for identical renderings")
	}
	if Equal([]string{"a"}, []string{"a", "b"}) {
		t.Fatal("Equal() = true for different lengths")
	}
	if Equal([]string{"a"}, []string{"b"}) {
		t.Fatal("Equal() = true for different lines")
	}
	if !Equal(nil, nil) {
		t.Fatal("Equal() = false for empty renderings")
	}
}

func TestUnified(t *testing.T) {
	a := []string{"StartDocument", "StartElement a", "EndElement a", "EndDocument"}
	b := []string{"StartDocument", "StartElement b", "EndElement b", "EndDocument"}

	got := Unified(a, b)
	want := "  StartDocument\n" +
		"- StartElement a\n" +
		"- EndElement a\n" +
		"+ StartElement b\n" +
		"+ EndElement b\n" +
		"  EndDocument\n"
	if got != want {
		t.Fatalf("Unified() =\n%s\nwant\n%s", got, want)
	}
}

func TestUnifiedIdentical(t *testing.T) {
	a := []string{"StartDocument", "EndDocument"}
	got := Unified(a, a)
	want := "  StartDocument\n  EndDocument\n"
	if got != want {
		t.Fatalf("Unified() = %q, want %q", got, want)
	}
}
