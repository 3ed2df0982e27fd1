package xinclude

import "github.com/jacoelho/xinclude/internal/source"

// ResolveRequest describes a document resolution request.
type ResolveRequest = source.ResolveRequest

// Resolver resolves document references into readers and canonical system IDs.
type Resolver = source.Resolver
