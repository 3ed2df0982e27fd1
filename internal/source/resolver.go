package source

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// ResolveRequest describes a document resolution request. BaseSystemID is
// the canonical location of the referring document and is empty for the
// root document.
type ResolveRequest struct {
	BaseSystemID string
	Href         string
}

// Resolver resolves document references into readers and canonical system
// IDs. The returned system ID becomes the base for references inside the
// resolved document.
type Resolver interface {
	Resolve(req ResolveRequest) (doc io.ReadCloser, systemID string, err error)
}

// FSResolver resolves documents from an fs.FS with strict path validation:
// references must be relative, slash-separated, and stay inside the
// filesystem root.
type FSResolver struct {
	fsys fs.FS
}

// NewFSResolver creates a resolver backed by the provided filesystem.
func NewFSResolver(fsys fs.FS) *FSResolver {
	return &FSResolver{fsys: fsys}
}

// Resolve implements Resolver.
func (r *FSResolver) Resolve(req ResolveRequest) (io.ReadCloser, string, error) {
	if r == nil || r.fsys == nil {
		return nil, "", fmt.Errorf("no filesystem configured")
	}
	if req.Href == "" {
		return nil, "", fs.ErrNotExist
	}
	systemID, err := resolveSystemID(req.BaseSystemID, req.Href)
	if err != nil {
		return nil, "", err
	}
	f, err := r.fsys.Open(systemID)
	if err != nil {
		return nil, "", err
	}
	return f, systemID, nil
}

func resolveSystemID(baseSystemID, href string) (string, error) {
	if strings.Contains(href, "\\") {
		return "", fmt.Errorf("reference contains backslash: %q", href)
	}
	if strings.HasPrefix(href, "/") {
		return "", fmt.Errorf("reference must be relative: %q", href)
	}
	if href == "" {
		return "", fmt.Errorf("reference is empty")
	}
	if baseSystemID != "" && strings.Contains(baseSystemID, "\\") {
		return "", fmt.Errorf("base system ID contains backslash: %q", baseSystemID)
	}
	segments := strings.Split(href, "/")
	if slices.Contains(segments, "") {
		return "", fmt.Errorf("invalid reference segment: %q", href)
	}
	canonical := path.Clean(href)
	if canonical == "." {
		return "", fmt.Errorf("reference is empty")
	}
	baseDir := baseDirSystemID(baseSystemID)
	if baseDir == "" {
		if strings.HasPrefix(canonical, "../") || canonical == ".." {
			return "", fmt.Errorf("reference escapes root: %q", href)
		}
		return canonical, nil
	}
	joined := path.Clean(baseDir + "/" + href)
	if joined == "." {
		return "", fmt.Errorf("reference is empty")
	}
	if strings.HasPrefix(joined, "../") || joined == ".." {
		return "", fmt.Errorf("reference escapes root: %q", href)
	}
	return joined, nil
}

func baseDirSystemID(systemID string) string {
	if systemID == "" {
		return ""
	}
	if strings.Contains(systemID, "\\") {
		return ""
	}
	idx := strings.LastIndex(systemID, "/")
	if idx == -1 {
		return ""
	}
	return systemID[:idx]
}
