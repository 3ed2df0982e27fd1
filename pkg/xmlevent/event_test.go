package xmlevent

import (
	"encoding/xml"
	"testing"
)

func TestEventAttribute(t *testing.T) {
	ev := Event{
		Kind: StartElement,
		Name: xml.Name{Local: "item"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: "42"},
			{Name: xml.Name{Space: "http://example.com", Local: "id"}, Value: "qualified"},
		},
	}

	got, ok := ev.Attribute("id")
	if !ok || got != "42" {
		t.Fatalf(`Attribute("id") = %q, %v, want "42", true`, got, ok)
	}
	if _, ok := ev.Attribute("missing"); ok {
		t.Fatal(`Attribute("missing") = true, want false`)
	}
}

func TestIsWhitespace(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{" \t\r\n", true},
		{"a", false},
		{"  x  ", false},
	}
	for _, tt := range tests {
		if got := IsWhitespace([]byte(tt.text)); got != tt.want {
			t.Fatalf("IsWhitespace(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
