package xmlevent

import "io"

// Options holds source configuration values.
// The zero value means no overrides.
type Options struct {
	charsetReader  func(charset string, input io.Reader) (io.Reader, error)
	entityMap      map[string]string
	strict         bool
	emitComments   bool
	emitPI         bool
	emitDirectives bool

	charsetReaderSet  bool
	entityMapSet      bool
	strictSet         bool
	emitCommentsSet   bool
	emitPISet         bool
	emitDirectivesSet bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if src.charsetReaderSet {
		opts.charsetReader = src.charsetReader
		opts.charsetReaderSet = true
	}
	if src.entityMapSet {
		opts.entityMap = src.entityMap
		opts.entityMapSet = true
	}
	if src.strictSet {
		opts.strict = src.strict
		opts.strictSet = true
	}
	if src.emitCommentsSet {
		opts.emitComments = src.emitComments
		opts.emitCommentsSet = true
	}
	if src.emitPISet {
		opts.emitPI = src.emitPI
		opts.emitPISet = true
	}
	if src.emitDirectivesSet {
		opts.emitDirectives = src.emitDirectives
		opts.emitDirectivesSet = true
	}
}

// WithCharsetReader registers a decoder for non-UTF-8 encodings.
func WithCharsetReader(fn func(charset string, input io.Reader) (io.Reader, error)) Options {
	return Options{charsetReader: fn, charsetReaderSet: true}
}

// WithEntityMap configures custom named entity replacements.
func WithEntityMap(values map[string]string) Options {
	if values == nil {
		return Options{entityMapSet: true}
	}
	copyMap := make(map[string]string, len(values))
	for key, value := range values {
		copyMap[key] = value
	}
	return Options{entityMap: copyMap, entityMapSet: true}
}

// Strict controls well-formedness enforcement in the underlying decoder.
func Strict(value bool) Options {
	return Options{strict: value, strictSet: true}
}

// EmitComments controls whether comment events are emitted.
func EmitComments(value bool) Options {
	return Options{emitComments: value, emitCommentsSet: true}
}

// EmitPI controls whether processing instruction events are emitted.
// The XML declaration is never emitted; it is folded into StartDocument.
func EmitPI(value bool) Options {
	return Options{emitPI: value, emitPISet: true}
}

// EmitDirectives controls whether directive events are emitted.
func EmitDirectives(value bool) Options {
	return Options{emitDirectives: value, emitDirectivesSet: true}
}
