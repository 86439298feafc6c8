package record

import (
	"github.com/rs/zerolog"

	"rowcodec/adapter"
	"rowcodec/internal/descriptor"
	"rowcodec/internal/schemafile"
	"rowcodec/scalar"
)

// Config controls how record contracts are built.
type Config struct {
	// TagKey is the struct tag directives are read from.
	TagKey string
	// Adapters resolves `from=` and `try_from=` names.
	Adapters *adapter.Registry
	// Codecs holds custom scalar codecs on top of the built-in table.
	Codecs *scalar.Table
	Logger zerolog.Logger

	schema    *schemafile.File
	schemaErr error
}

// DefaultConfig reads the "row" tag, has no adapters or custom codecs and
// discards log output.
func DefaultConfig() Config {
	return Config{
		TagKey:   descriptor.DefaultTagKey,
		Adapters: adapter.NewRegistry(),
		Codecs:   scalar.NewTable(),
		Logger:   zerolog.Nop(),
	}
}

// Option adjusts a Config.
type Option func(*Config)

func WithTagKey(key string) Option {
	return func(c *Config) { c.TagKey = key }
}

func WithAdapters(r *adapter.Registry) Option {
	return func(c *Config) { c.Adapters = r }
}

func WithCodecs(t *scalar.Table) Option {
	return func(c *Config) { c.Codecs = t }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithSchema applies field overrides from YAML schema data. Parse errors
// surface from the Build call.
func WithSchema(data []byte) Option {
	return func(c *Config) {
		c.schema, c.schemaErr = schemafile.Parse(data)
	}
}

// WithSchemaFile is WithSchema reading from path.
func WithSchemaFile(path string) Option {
	return func(c *Config) {
		c.schema, c.schemaErr = schemafile.LoadFile(path)
	}
}

func newConfig(opts []Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	if c.TagKey == "" {
		c.TagKey = descriptor.DefaultTagKey
	}

	return c
}
