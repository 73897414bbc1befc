package config

import (
	"errors"
	"path/filepath"

	"github.com/deploymenttheory/go-site-diff/internal/logger"
)

// Visited holds the canonical paths reached in one include chain. The same set
// is shared by every recursive Load of that chain.
type Visited map[string]struct{}

// Loader reads configuration files and resolves their includes.
type Loader struct {
	parse Parser
}

// Option configures a Loader or Engine.
type Option func(*Loader)

// WithParser replaces the file decoder, ParseFile by default.
func WithParser(p Parser) Option {
	return func(l *Loader) {
		l.parse = p
	}
}

// NewLoader creates a Loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{parse: ParseFile}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads file, normalizes it and merges in its includes, each resolved
// relative to the including file's directory. Reaching a path already in
// visited yields a *CircularIncludeError.
func (l *Loader) Load(file string, visited Visited) (*Config, error) {
	if visited == nil {
		visited = Visited{}
	}

	// a/../a.yaml and a.yaml are the same file
	file = filepath.Clean(file)
	if _, seen := visited[file]; seen {
		return nil, &CircularIncludeError{Path: file}
	}

	doc, err := l.readDocument(file)
	if err != nil {
		return nil, err
	}
	visited[file] = struct{}{}

	includes, err := toStrings(doc[KeyIncludes])
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}
	delete(doc, KeyIncludes)

	conf, err := Normalize(doc)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}

	for _, dep := range includes {
		dep = filepath.Join(filepath.Dir(file), dep)
		logger.Debugf("%s includes %s", file, dep)

		included, err := l.Load(dep, visited)
		if err != nil {
			return nil, err
		}

		merged, err := Merge(conf, included)
		if err != nil {
			var conflict *MergeConflictError
			if errors.As(err, &conflict) {
				return nil, &LoadError{File: file, Include: dep, Err: err}
			}
			return nil, err
		}
		conf = merged
	}

	return conf, nil
}

// readDocument parses file and rejects keys outside the whitelist.
func (l *Loader) readDocument(file string) (Document, error) {
	logger.Infof("Reading config file: %s", file)

	raw, err := l.parse(file)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}

	doc := make(Document, len(raw))
	for k, v := range raw {
		doc[k] = v
	}

	for _, k := range sortedKeys(doc) {
		if !IsAllowedKey(k) {
			return nil, &LoadError{File: file, Key: k}
		}
	}
	return doc, nil
}
