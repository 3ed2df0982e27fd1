package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/jacoelho/xinclude"
	"github.com/jacoelho/xinclude/internal/eventdiff"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xicompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	all := fs.Bool("all", false, "compare whitespace and processing instructions too")
	verbose := fs.Bool("v", false, "log include transitions to stderr")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <a.xml> <b.xml>\n\n", os.Args[0]),
			writeln(stderr, "Compares the include-resolved event streams of two XML documents."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 2 {
		if err := writeln(stderr, "error: exactly two XML file arguments are required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	logger := log.NewNopLogger()
	if *verbose {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(stderr))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	left, err := streamLines(remaining[0], *all, logger)
	if err != nil {
		if writeErr := writef(stderr, "error: %s: %v\n", remaining[0], err); writeErr != nil {
			return 1
		}
		return 1
	}
	right, err := streamLines(remaining[1], *all, logger)
	if err != nil {
		if writeErr := writef(stderr, "error: %s: %v\n", remaining[1], err); writeErr != nil {
			return 1
		}
		return 1
	}

	if eventdiff.Equal(left, right) {
		if err := writef(stdout, "event streams match (%d events)\n", len(left)); err != nil {
			return 1
		}
		return 0
	}

	if err := writef(stdout, "--- %s\n+++ %s\n%s", remaining[0], remaining[1], eventdiff.Unified(left, right)); err != nil {
		return 1
	}
	return 1
}

func streamLines(path string, all bool, logger log.Logger) ([]string, error) {
	reader, err := xinclude.OpenFile(path, xinclude.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	var lines []string
	for {
		ok, err := reader.HasNext()
		if err != nil {
			_ = reader.Close()
			return nil, err
		}
		if !ok {
			break
		}
		ev, err := reader.Next()
		if err != nil {
			_ = reader.Close()
			return nil, err
		}
		if all || eventdiff.Significant(ev) {
			lines = append(lines, eventdiff.Line(ev))
		}
	}
	if err := reader.Close(); err != nil {
		return nil, err
	}
	return lines, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
