package gen

import "slices"

// Option configures code generation.
type Option func(*Config) error

// Config holds the configuration for graph construction and code
// generation. Use NewConfig with options rather than building it by hand.
type Config struct {
	// Header is the file header comment added to each generated file.
	Header string
	// Package is the output package import path.
	Package string
	// Target is the output directory.
	Target string
	// MaxDepth bounds the route depth. Defaults to DefaultMaxDepth.
	MaxDepth int
	// Namespaces optionally restricts graph construction to the given
	// schema namespaces. Empty means all namespaces.
	Namespaces []string
}

// NewConfig creates a new Config applying the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func defaultConfig() *Config {
	return &Config{MaxDepth: DefaultMaxDepth}
}

func (c *Config) includeNamespace(ns string) bool {
	return len(c.Namespaces) == 0 || slices.Contains(c.Namespaces, ns)
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/msgraph".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithMaxDepth bounds the depth of generated routes. A depth of zero
// produces root-level routes only.
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth < 0 {
			return NewConfigError("MaxDepth", depth, "max depth cannot be negative")
		}
		c.MaxDepth = depth
		return nil
	}
}

// WithNamespaces restricts graph construction to the given schema
// namespaces.
func WithNamespaces(namespaces ...string) Option {
	return func(c *Config) error {
		for _, ns := range namespaces {
			if ns == "" {
				return NewConfigError("Namespaces", namespaces, "namespace cannot be empty")
			}
		}
		c.Namespaces = append(c.Namespaces, namespaces...)
		return nil
	}
}
