package xinclude

import (
	"encoding/xml"
	"testing"

	"github.com/jacoelho/xinclude/pkg/xmlevent"
)

func TestIsIncludeStart(t *testing.T) {
	tests := []struct {
		name string
		ev   xmlevent.Event
		want bool
	}{
		{
			"include element",
			xmlevent.Event{Kind: xmlevent.StartElement, Name: xml.Name{Space: Namespace, Local: "include"}},
			true,
		},
		{
			"wrong namespace",
			xmlevent.Event{Kind: xmlevent.StartElement, Name: xml.Name{Space: "http://example.com/include", Local: "include"}},
			false,
		},
		{
			"no namespace",
			xmlevent.Event{Kind: xmlevent.StartElement, Name: xml.Name{Local: "include"}},
			false,
		},
		{
			"fallback element",
			xmlevent.Event{Kind: xmlevent.StartElement, Name: xml.Name{Space: Namespace, Local: "fallback"}},
			false,
		},
		{
			"end element",
			xmlevent.Event{Kind: xmlevent.EndElement, Name: xml.Name{Space: Namespace, Local: "include"}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isIncludeStart(tt.ev); got != tt.want {
				t.Fatalf("isIncludeStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseIncludeDirective(t *testing.T) {
	tests := []struct {
		name string
		attr []xml.Attr
		want includeDirective
	}{
		{
			"href only",
			[]xml.Attr{{Name: xml.Name{Local: "href"}, Value: "a.xml"}},
			includeDirective{href: "a.xml", hasHref: true},
		},
		{
			"href and parse",
			[]xml.Attr{
				{Name: xml.Name{Local: "href"}, Value: "a.xml"},
				{Name: xml.Name{Local: "parse"}, Value: "xml"},
			},
			includeDirective{href: "a.xml", parse: "xml", hasHref: true, hasParse: true},
		},
		{
			"empty href still counts as present",
			[]xml.Attr{{Name: xml.Name{Local: "href"}, Value: ""}},
			includeDirective{href: "", hasHref: true},
		},
		{
			"qualified attributes are ignored",
			[]xml.Attr{
				{Name: xml.Name{Space: "http://example.com", Local: "href"}, Value: "a.xml"},
				{Name: xml.Name{Space: "xmlns", Local: "xi"}, Value: Namespace},
			},
			includeDirective{},
		},
		{
			"unknown attributes are ignored",
			[]xml.Attr{
				{Name: xml.Name{Local: "xpointer"}, Value: "id(x)"},
				{Name: xml.Name{Local: "href"}, Value: "a.xml"},
			},
			includeDirective{href: "a.xml", hasHref: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := xmlevent.Event{
				Kind: xmlevent.StartElement,
				Name: xml.Name{Space: Namespace, Local: "include"},
				Attr: tt.attr,
			}
			if got := parseIncludeDirective(ev); got != tt.want {
				t.Fatalf("parseIncludeDirective() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
