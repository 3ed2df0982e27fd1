package godog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jacoelho/xinclude"
	xierrors "github.com/jacoelho/xinclude/errors"
	"github.com/jacoelho/xinclude/internal/eventdiff"
)

// testdataRoot returns the absolute path to the testdata directory.
func testdataRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find repo root (no go.mod)")
		}
		dir = parent
	}
}

func TestFeatures(t *testing.T) {
	root := testdataRoot(t)
	featuresDir := filepath.Join(root, "features")
	fixturesDir := filepath.Join(root, "fixtures")

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			initializeScenario(ctx, fixturesDir)
		},
		Options: &godog.Options{
			Format:        "pretty",
			Paths:         []string{featuresDir},
			TestingT:      t,
			StopOnFailure: false,
			Strict:        false,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// scenarioState holds per-scenario state for step definitions.
type scenarioState struct {
	fixturesDir string
	basePath    string // relative path inside fixtures, e.g. "errors"
	lines       []string
	readErr     error
}

// readDocument opens a fixture and collects its merged event stream,
// rendered one line per significant event. Events read before a failure
// are returned alongside the error so steps can report partial streams.
func (s *scenarioState) readDocument(name string) ([]string, error) {
	path := filepath.Join(s.fixturesDir, s.basePath, name)
	reader, err := xinclude.OpenFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for {
		ok, err := reader.HasNext()
		if err != nil {
			_ = reader.Close()
			return lines, err
		}
		if !ok {
			break
		}
		ev, err := reader.Next()
		if err != nil {
			_ = reader.Close()
			return lines, err
		}
		if eventdiff.Significant(ev) {
			lines = append(lines, eventdiff.Line(ev))
		}
	}
	return lines, reader.Close()
}

// docLines splits a docstring into trimmed, non-empty lines.
func docLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func initializeScenario(ctx *godog.ScenarioContext, fixturesDir string) {
	s := &scenarioState{fixturesDir: fixturesDir}

	// ================================================================
	// Given steps
	// ================================================================

	ctx.Step(`^documents located at '([^']*)'$`, func(dir string) error {
		s.basePath = filepath.FromSlash(dir)
		return nil
	})

	// ================================================================
	// When steps
	// ================================================================

	ctx.Step(`^the stream of '([^']*)' is read$`, func(name string) error {
		s.lines, s.readErr = s.readDocument(name)
		return nil
	})

	// ================================================================
	// Then steps
	// ================================================================

	ctx.Step(`^reading succeeds$`, func() error {
		if s.readErr != nil {
			return fmt.Errorf("expected success, got: %v", s.readErr)
		}
		return nil
	})

	ctx.Step(`^reading fails$`, func() error {
		if s.readErr == nil {
			return fmt.Errorf("expected a read error, stream was:\n  %s", strings.Join(s.lines, "\n  "))
		}
		return nil
	})

	ctx.Step(`^reading fails with a missing href error$`, func() error {
		if s.readErr == nil {
			return fmt.Errorf("expected a missing href error, stream was:\n  %s", strings.Join(s.lines, "\n  "))
		}
		if _, ok := xierrors.AsMissingHref(s.readErr); !ok {
			return fmt.Errorf("expected a missing href error, got: %v", s.readErr)
		}
		return nil
	})

	ctx.Step(`^reading fails with an unsupported parse error$`, func() error {
		if s.readErr == nil {
			return fmt.Errorf("expected an unsupported parse error, stream was:\n  %s", strings.Join(s.lines, "\n  "))
		}
		if _, ok := xierrors.AsUnsupportedParse(s.readErr); !ok {
			return fmt.Errorf("expected an unsupported parse error, got: %v", s.readErr)
		}
		return nil
	})

	ctx.Step(`^reading fails with an include open error$`, func() error {
		if s.readErr == nil {
			return fmt.Errorf("expected an include open error, stream was:\n  %s", strings.Join(s.lines, "\n  "))
		}
		if _, ok := xierrors.AsOpen(s.readErr); !ok {
			return fmt.Errorf("expected an include open error, got: %v", s.readErr)
		}
		return nil
	})

	ctx.Step(`^the error mentions '([^']*)'$`, func(text string) error {
		if s.readErr == nil {
			return fmt.Errorf("no read error recorded")
		}
		if !strings.Contains(s.readErr.Error(), text) {
			return fmt.Errorf("error %q does not mention %q", s.readErr, text)
		}
		return nil
	})

	ctx.Step(`^the merged stream is:$`, func(doc *godog.DocString) error {
		if s.readErr != nil {
			return fmt.Errorf("read failed: %v", s.readErr)
		}
		expected := docLines(doc.Content)
		if !eventdiff.Equal(expected, s.lines) {
			return fmt.Errorf("stream mismatch:\n%s", eventdiff.Unified(expected, s.lines))
		}
		return nil
	})

	ctx.Step(`^the stream matches the stream of '([^']*)'$`, func(name string) error {
		if s.readErr != nil {
			return fmt.Errorf("read failed: %v", s.readErr)
		}
		other, err := s.readDocument(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if !eventdiff.Equal(s.lines, other) {
			return fmt.Errorf("streams differ:\n%s", eventdiff.Unified(s.lines, other))
		}
		return nil
	})
}
