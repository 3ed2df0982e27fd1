package xinclude

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/spf13/afero"

	"github.com/jacoelho/xinclude/pkg/xmlevent"
)

// Option configures a Reader.
type Option interface{ apply(*readerConfig) }

type readerConfig struct {
	logger     log.Logger
	sourceOpts []xmlevent.Options
	httpClient *http.Client
	osFS       afero.Fs
}

type optionFunc func(*readerConfig)

func (f optionFunc) apply(cfg *readerConfig) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithLogger sets the logger used to trace include transitions at debug
// level. The default logger discards everything.
func WithLogger(l log.Logger) Option {
	return optionFunc(func(cfg *readerConfig) {
		cfg.logger = l
	})
}

// WithSourceOptions forwards options to every document source the reader
// opens, the root and all include targets alike.
func WithSourceOptions(opts ...xmlevent.Options) Option {
	return optionFunc(func(cfg *readerConfig) {
		cfg.sourceOpts = append(cfg.sourceOpts, opts...)
	})
}

// WithHTTPClient sets the client used by OpenURL.
func WithHTTPClient(c *http.Client) Option {
	return optionFunc(func(cfg *readerConfig) {
		cfg.httpClient = c
	})
}

// WithFS overrides the filesystem used by OpenFile.
func WithFS(fsys afero.Fs) Option {
	return optionFunc(func(cfg *readerConfig) {
		cfg.osFS = fsys
	})
}

func applyOptions(opts []Option) readerConfig {
	var cfg readerConfig
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
