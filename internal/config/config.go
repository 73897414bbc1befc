// Package config loads site-diff configuration documents, folds global settings
// into the before and after targets, and merges documents and their includes.
package config

import (
	"fmt"
	"sort"
)

// Document is one raw configuration source, as decoded from YAML or TOML.
type Document map[string]any

// Target holds the settings for one side of the comparison.
type Target struct {
	// Scalars holds single-writer fields, including url. Unset fields are absent.
	Scalars map[string]any
	// Arrays holds concatenated fields such as dom_transform rules.
	Arrays map[string][]any
}

// NewTarget returns an empty target.
func NewTarget() *Target {
	return &Target{
		Scalars: make(map[string]any),
		Arrays:  make(map[string][]any),
	}
}

// URL returns the base URL of the target, or "" when unset.
func (t *Target) URL() string {
	if t == nil {
		return ""
	}
	v, ok := t.Scalars[KeyURL]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Scalar returns a scalar field and whether it is set.
func (t *Target) Scalar(name string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.Scalars[name]
	return v, ok && v != nil
}

// Array returns an array field; absent fields yield nil.
func (t *Target) Array(name string) []any {
	if t == nil {
		return nil
	}
	return t.Arrays[name]
}

// Clone returns a copy that shares no slices or maps with t.
func (t *Target) Clone() *Target {
	c := NewTarget()
	if t == nil {
		return c
	}
	for k, v := range t.Scalars {
		c.Scalars[k] = v
	}
	for k, v := range t.Arrays {
		c.Arrays[k] = append([]any{}, v...)
	}
	return c
}

// Map renders the target as a plain mapping with url, scalar and array fields.
func (t *Target) Map() map[string]any {
	m := make(map[string]any)
	if t == nil {
		return m
	}
	for k, v := range t.Scalars {
		if v != nil {
			m[k] = v
		}
	}
	for k, v := range t.Arrays {
		m[k] = v
	}
	return m
}

// Config is a normalized configuration: the paths to compare and both targets.
// A nil target means the side was never supplied.
type Config struct {
	Paths  []string
	Before *Target
	After  *Target
}

// Empty returns the starting accumulator for merging documents.
func Empty() *Config {
	return &Config{
		Paths:  []string{},
		Before: NewTarget(),
		After:  NewTarget(),
	}
}

// Target returns the named side, "before" or "after".
func (c *Config) Target(name string) *Target {
	switch name {
	case TargetBefore:
		return c.Before
	case TargetAfter:
		return c.After
	}
	return nil
}

func (c *Config) setTarget(name string, t *Target) {
	switch name {
	case TargetBefore:
		c.Before = t
	case TargetAfter:
		c.After = t
	}
}

// Map renders the config in the shape consumed downstream.
func (c *Config) Map() map[string]any {
	paths := append([]string{}, c.Paths...)
	return map[string]any{
		KeyPaths:     paths,
		TargetBefore: c.Before.Map(),
		TargetAfter:  c.After.Map(),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
