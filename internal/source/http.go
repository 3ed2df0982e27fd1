package source

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
)

// HTTPResolver fetches documents over HTTP and HTTPS. References are
// resolved against the base URL per RFC 3986. The resolver imposes no
// timeout of its own; callers control that through the client.
type HTTPResolver struct {
	client *http.Client
}

// NewHTTPResolver creates a resolver using client, defaulting to
// http.DefaultClient when client is nil.
func NewHTTPResolver(client *http.Client) *HTTPResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPResolver{client: client}
}

// Resolve implements Resolver. A 404 response maps to fs.ErrNotExist so
// missing resources are detected uniformly across resolvers.
func (r *HTTPResolver) Resolve(req ResolveRequest) (io.ReadCloser, string, error) {
	if r == nil || r.client == nil {
		return nil, "", fmt.Errorf("no http client configured")
	}
	if req.Href == "" {
		return nil, "", fs.ErrNotExist
	}
	target, err := resolveURL(req.BaseSystemID, req.Href)
	if err != nil {
		return nil, "", err
	}
	resp, err := r.client.Get(target)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", target, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("fetch %s: %w", target, fs.ErrNotExist)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", target, resp.Status)
	}
	return resp.Body, target, nil
}

func resolveURL(base, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", href, err)
	}
	resolved := ref
	if base != "" {
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("parse base %q: %w", base, err)
		}
		resolved = baseURL.ResolveReference(ref)
	}
	if !resolved.IsAbs() {
		return "", fmt.Errorf("reference %q is relative and no base is set", href)
	}
	switch resolved.Scheme {
	case "http", "https":
	default:
		return "", fmt.Errorf("unsupported scheme %q in %s", resolved.Scheme, resolved)
	}
	return resolved.String(), nil
}
