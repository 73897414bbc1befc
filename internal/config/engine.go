package config

import "fmt"

// Engine holds the merged configuration of an ordered list of files.
type Engine struct {
	conf *Config
}

// New loads each file with its includes and merges them in order, earlier
// files first. The result is not validated; call Validate before use.
func New(files []string, opts ...Option) (*Engine, error) {
	loader := NewLoader(opts...)

	conf := Empty()
	for _, f := range files {
		fileConf, err := loader.Load(f, Visited{})
		if err != nil {
			return nil, err
		}

		conf, err = Merge(conf, fileConf)
		if err != nil {
			return nil, fmt.Errorf("merge %s: %w", f, err)
		}
	}

	return &Engine{conf: conf}, nil
}

// Before returns the before target.
func (e *Engine) Before() *Target {
	return e.conf.Before
}

// After returns the after target.
func (e *Engine) After() *Target {
	return e.conf.After
}

// Paths returns the paths to compare.
func (e *Engine) Paths() []string {
	return e.conf.Paths
}

// SetPaths replaces the paths, normalizing them first.
func (e *Engine) SetPaths(paths []string) {
	e.conf.Paths = NormalizePaths(paths)
}

// Config returns the merged configuration.
func (e *Engine) Config() *Config {
	return e.conf
}

// Validate checks that both base URLs are set and there is at least one path.
func (e *Engine) Validate() error {
	if e.Before().URL() == "" {
		return &ValidationError{Reason: "undefined 'before' base URL"}
	}
	if e.After().URL() == "" {
		return &ValidationError{Reason: "undefined 'after' base URL"}
	}
	if len(e.Paths()) == 0 {
		return &ValidationError{Reason: "undefined 'paths'"}
	}
	return nil
}
