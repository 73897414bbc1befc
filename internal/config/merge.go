package config

// Merge combines two normalized configs. Paths are concatenated. For each
// target, array fields are concatenated and a scalar may be set by at most one
// side; when both set it, even to the same value, a *MergeConflictError is
// returned. A nil target in first is replaced by second's target verbatim.
func Merge(first, second *Config) (*Config, error) {
	result := &Config{
		Paths: make([]string, 0, len(first.Paths)+len(second.Paths)),
	}
	result.Paths = append(result.Paths, first.Paths...)
	result.Paths = append(result.Paths, second.Paths...)

	for _, name := range Targets {
		merged, err := mergeTarget(name, first.Target(name), second.Target(name))
		if err != nil {
			return nil, err
		}
		result.setTarget(name, merged)
	}
	return result, nil
}

func mergeTarget(name string, first, second *Target) (*Target, error) {
	if first == nil {
		return second.Clone(), nil
	}

	merged := first.Clone()
	if second == nil {
		return merged, nil
	}

	for _, field := range sortedKeys(second.Arrays) {
		merged.Arrays[field] = append(merged.Arrays[field], second.Arrays[field]...)
	}

	for _, field := range sortedKeys(second.Scalars) {
		b, bSet := second.Scalar(field)
		if !bSet {
			continue
		}
		if a, aSet := merged.Scalar(field); aSet {
			return nil, &MergeConflictError{Target: name, Field: field, First: a, Second: b}
		}
		merged.Scalars[field] = b
	}
	return merged, nil
}
