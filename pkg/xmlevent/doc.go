// Package xmlevent provides a pull-based event source for a single XML
// document, with one-event lookahead, synthesized document boundaries, and
// StAX-style navigation helpers.
package xmlevent
