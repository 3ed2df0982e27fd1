package xinclude

import (
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/jacoelho/xinclude/internal/source"
)

// Open creates a Reader for the document at location inside fsys.
// References are resolved relative to the including document and must stay
// inside the filesystem root.
func Open(fsys fs.FS, location string, opts ...Option) (*Reader, error) {
	if fsys == nil {
		return nil, fmt.Errorf("open document: nil fs")
	}
	return newReader(source.NewFSResolver(fsys), location, applyOptions(opts))
}

// OpenFile creates a Reader for a file on the host filesystem. References
// use native path semantics, so absolute hrefs and parent-directory
// traversal work.
func OpenFile(path string, opts ...Option) (*Reader, error) {
	cfg := applyOptions(opts)
	fsys := cfg.osFS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return newReader(source.NewOSResolver(fsys), path, cfg)
}

// OpenURL creates a Reader for a document fetched over HTTP or HTTPS.
// References are resolved against the including document's URL.
func OpenURL(rawURL string, opts ...Option) (*Reader, error) {
	cfg := applyOptions(opts)
	return newReader(source.NewHTTPResolver(cfg.httpClient), rawURL, cfg)
}

// OpenWith creates a Reader using a custom resolver.
func OpenWith(r Resolver, location string, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, fmt.Errorf("open document: nil resolver")
	}
	return newReader(r, location, applyOptions(opts))
}
