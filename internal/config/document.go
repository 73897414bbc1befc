package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Parser reads one configuration source into a Document.
type Parser func(path string) (Document, error)

// ParseFile decodes a configuration file. Files ending in .toml are TOML,
// anything else is YAML. An empty file yields an empty Document.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	doc := Document{}
	if isTOML(path) {
		if err := toml.Unmarshal(data, (*map[string]any)(&doc)); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, (*map[string]any)(&doc)); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// WriteFile encodes doc to path, as TOML when the name ends in .toml and YAML otherwise.
func WriteFile(path string, doc Document) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(map[string]any(doc))
	} else {
		data, err = yaml.Marshal(map[string]any(doc))
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
