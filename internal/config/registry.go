package config

// Targets lists the two sides of a comparison in the order they are processed.
var Targets = []string{TargetBefore, TargetAfter}

const (
	TargetBefore = "before"
	TargetAfter  = "after"

	KeyPaths    = "paths"
	KeyIncludes = "includes"
	KeyURL      = "url"
)

// arrayFields are concatenated across documents; scalarFields may be set by at
// most one contributing document.
var (
	arrayFields  = []string{"dom_transform", "sanitization"}
	scalarFields = []string{"selector", "remove_spacing"}
)

var allowedKeys = buildAllowedKeys()

func buildAllowedKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, k := range arrayFields {
		keys[k] = struct{}{}
	}
	for _, k := range scalarFields {
		keys[k] = struct{}{}
	}
	for _, k := range []string{KeyPaths, TargetBefore, TargetAfter, TargetBefore + "_url", TargetAfter + "_url", KeyIncludes} {
		keys[k] = struct{}{}
	}
	return keys
}

// ArrayFields returns the names of the concatenated fields.
func ArrayFields() []string {
	return append([]string(nil), arrayFields...)
}

// ScalarFields returns the names of the single-writer fields.
func ScalarFields() []string {
	return append([]string(nil), scalarFields...)
}

// IsArrayField reports whether name is concatenated on merge.
func IsArrayField(name string) bool {
	for _, f := range arrayFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsAllowedKey reports whether name may appear at the top level of a document.
func IsAllowedKey(name string) bool {
	_, ok := allowedKeys[name]
	return ok
}
