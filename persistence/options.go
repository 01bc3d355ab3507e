package persistence

import (
	"github.com/hupe1980/lcsgo/codec"
	"github.com/hupe1980/lcsgo/population"
)

type options struct {
	compression Compression
	codec       codec.Codec
	indent      string
	setOptions  []population.Option
}

// Option configures Save, Open and the JSON helpers.
type Option func(*options)

// WithCompression selects the body compression used by Save.
// Open detects the compression from the header.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec selects the codec used by ExportJSON and ImportJSON.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithIndent pretty-prints ExportJSON output with the given indent.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// WithSetOptions configures the set returned by Open and ImportJSON.
// A control strategy passed here is bound after loading, so it does not
// delete rules while the population is restored.
func WithSetOptions(opts ...population.Option) Option {
	return func(o *options) {
		o.setOptions = append(o.setOptions, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: CompressionNone,
		codec:       codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
