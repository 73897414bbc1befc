package config

import "fmt"

// Normalize folds the global fields of doc into both targets and keeps only
// paths, before and after. Global array fields are appended to each target's
// own list; global scalars fill a target only where it left them unset; url
// falls back to <target>_url.
//
// includes is dropped here, so callers must take it out of doc first.
func Normalize(doc Document) (*Config, error) {
	conf := &Config{}

	for _, name := range Targets {
		t, err := targetFromDocument(doc, name)
		if err != nil {
			return nil, err
		}

		for _, field := range arrayFields {
			if t.Arrays[field] == nil {
				t.Arrays[field] = []any{}
			}
			global, ok := doc[field]
			if !ok || global == nil {
				continue
			}
			list, err := toList(global)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			t.Arrays[field] = append(t.Arrays[field], list...)
		}

		for _, field := range scalarFields {
			if _, set := t.Scalar(field); set {
				continue
			}
			if v := doc[field]; v != nil {
				t.Scalars[field] = v
			}
		}

		if _, set := t.Scalar(KeyURL); !set {
			if v := doc[name+"_url"]; v != nil {
				t.Scalars[KeyURL] = v
			}
		}

		conf.setTarget(name, t)
	}

	paths, err := toStrings(doc[KeyPaths])
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", KeyPaths, err)
	}
	conf.Paths = NormalizePaths(paths)

	return conf, nil
}

// targetFromDocument copies the doc[name] sub-mapping into a Target.
func targetFromDocument(doc Document, name string) (*Target, error) {
	t := NewTarget()

	raw := doc[name]
	if raw == nil {
		return t, nil
	}
	var sub map[string]any
	switch m := raw.(type) {
	case map[string]any:
		sub = m
	case Document:
		sub = m
	default:
		return nil, fmt.Errorf("field %q: expected a mapping, got %T", name, raw)
	}

	for k, v := range sub {
		if IsArrayField(k) {
			list, err := toList(v)
			if err != nil {
				return nil, fmt.Errorf("field %q in %q: %w", k, name, err)
			}
			t.Arrays[k] = list
			continue
		}
		if v != nil {
			t.Scalars[k] = v
		}
	}
	return t, nil
}

func toList(v any) ([]any, error) {
	switch list := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return append([]any{}, list...), nil
	case []map[string]any:
		out := make([]any, 0, len(list))
		for _, item := range list {
			out = append(out, item)
		}
		return out, nil
	case []Document:
		out := make([]any, 0, len(list))
		for _, item := range list {
			out = append(out, item)
		}
		return out, nil
	case []string:
		out := make([]any, 0, len(list))
		for _, item := range list {
			out = append(out, item)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", v)
}

func toStrings(v any) ([]string, error) {
	if ss, ok := v.([]string); ok {
		return append([]string{}, ss...), nil
	}
	list, err := toList(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
