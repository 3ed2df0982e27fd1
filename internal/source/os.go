package source

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// OSResolver resolves documents with native filesystem path semantics:
// absolute references and parent-directory traversal are allowed. The
// filesystem is pluggable so tests can run against an in-memory fs.
type OSResolver struct {
	fsys afero.Fs
}

// NewOSResolver creates a resolver over fsys, defaulting to the host
// filesystem when fsys is nil.
func NewOSResolver(fsys afero.Fs) *OSResolver {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &OSResolver{fsys: fsys}
}

// Resolve implements Resolver.
func (r *OSResolver) Resolve(req ResolveRequest) (io.ReadCloser, string, error) {
	if r == nil || r.fsys == nil {
		return nil, "", fmt.Errorf("no filesystem configured")
	}
	if req.Href == "" {
		return nil, "", fs.ErrNotExist
	}
	systemID := filepath.FromSlash(req.Href)
	if !filepath.IsAbs(systemID) && req.BaseSystemID != "" {
		systemID = filepath.Join(filepath.Dir(req.BaseSystemID), systemID)
	}
	f, err := r.fsys.Open(systemID)
	if err != nil {
		return nil, "", err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, "", fmt.Errorf("stat %s: %w", systemID, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, "", fmt.Errorf("reference is a directory: %q", systemID)
	}
	return f, systemID, nil
}
