package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/jacoelho/xinclude"
	"github.com/jacoelho/xinclude/pkg/xmlevent"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xistream", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "output format: text or json")
	colorMode := fs.String("color", "auto", "colorize text output: auto, always, or never")
	httpMode := fs.Bool("http", false, "treat the argument as an HTTP or HTTPS URL")
	verbose := fs.Bool("v", false, "log include transitions to stderr")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <document.xml>\n\n", os.Args[0]),
			writeln(stderr, "Prints the document's event stream with xi:include directives resolved."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *format != "text" && *format != "json" {
		if err := writef(stderr, "error: unknown format %q\n", *format); err != nil {
			return 1
		}
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one XML file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	path := remaining[0]

	logger := log.NewNopLogger()
	if *verbose {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(stderr))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	open := xinclude.OpenFile
	if *httpMode {
		open = xinclude.OpenURL
	}
	reader, err := open(path, xinclude.WithLogger(logger))
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	var printErr error
	switch *format {
	case "json":
		printErr = printJSON(stdout, reader)
	default:
		printErr = printText(stdout, reader, shouldColor(*colorMode, stdout))
	}
	if printErr != nil {
		_ = reader.Close()
		if writeErr := writef(stderr, "error: %v\n", printErr); writeErr != nil {
			return 1
		}
		return 1
	}

	if err := reader.Close(); err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func printText(out io.Writer, reader *xinclude.Reader, useColor bool) error {
	for {
		ok, err := reader.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		ev, err := reader.Next()
		if err != nil {
			return err
		}
		if err := writeln(out, renderText(ev, useColor)); err != nil {
			return err
		}
	}
}

func renderText(ev xmlevent.Event, useColor bool) string {
	label := ev.Kind.String()
	c := kindColor(ev.Kind)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	label = c.Sprint(label)

	var sb strings.Builder
	sb.WriteString(label)
	switch ev.Kind {
	case xmlevent.StartElement:
		sb.WriteString(" ")
		sb.WriteString(qname(ev))
		for _, attr := range ev.Attr {
			sb.WriteString(fmt.Sprintf(" %s=%q", attr.Name.Local, attr.Value))
		}
	case xmlevent.EndElement:
		sb.WriteString(" ")
		sb.WriteString(qname(ev))
	case xmlevent.CharData, xmlevent.Comment:
		sb.WriteString(fmt.Sprintf(" %q", ev.Text))
	case xmlevent.ProcInst:
		sb.WriteString(" ")
		sb.WriteString(ev.Target)
	}
	return sb.String()
}

func qname(ev xmlevent.Event) string {
	if ev.Name.Space == "" {
		return ev.Name.Local
	}
	return "{" + ev.Name.Space + "}" + ev.Name.Local
}

func kindColor(k xmlevent.Kind) *color.Color {
	switch k {
	case xmlevent.StartElement:
		return color.New(color.FgGreen)
	case xmlevent.EndElement:
		return color.New(color.FgRed)
	case xmlevent.StartDocument, xmlevent.EndDocument:
		return color.New(color.FgCyan)
	case xmlevent.Comment:
		return color.New(color.FgYellow)
	case xmlevent.ProcInst, xmlevent.Directive:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgWhite)
	}
}

func shouldColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type eventJSON struct {
	Kind      string            `json:"kind"`
	Namespace string            `json:"namespace,omitempty"`
	Name      string            `json:"name,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Text      string            `json:"text,omitempty"`
	Target    string            `json:"target,omitempty"`
	Offset    int64             `json:"offset"`
}

func printJSON(out io.Writer, reader *xinclude.Reader) error {
	enc := json.NewEncoder(out)
	for {
		ok, err := reader.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		ev, err := reader.Next()
		if err != nil {
			return err
		}
		rec := eventJSON{
			Kind:      ev.Kind.String(),
			Namespace: ev.Name.Space,
			Name:      ev.Name.Local,
			Text:      string(ev.Text),
			Target:    ev.Target,
			Offset:    ev.Offset,
		}
		if len(ev.Attr) > 0 {
			rec.Attrs = make(map[string]string, len(ev.Attr))
			for _, attr := range ev.Attr {
				rec.Attrs[attr.Name.Local] = attr.Value
			}
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
