package config

import "fmt"

// LoadError reports a source that could not be read or parsed, an unknown
// top-level key, or a merge conflict between a file and one of its includes.
type LoadError struct {
	File string
	// Key is set when the document contains a key outside the whitelist.
	Key string
	// Include is set when merging File with this included file failed.
	Include string
	Err     error
}

func (e *LoadError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("unknown configuration key (%s): '%s'", e.File, e.Key)
	case e.Include != "":
		return fmt.Sprintf("merge conflict (%s includes %s): %v", e.File, e.Include, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("load config %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("load config %s", e.File)
}

func (e *LoadError) Unwrap() error { return e.Err }

// CircularIncludeError reports a file that was reached twice while resolving includes.
type CircularIncludeError struct {
	Path string
}

func (e *CircularIncludeError) Error() string {
	return fmt.Sprintf("circular dependency: %s", e.Path)
}

// MergeConflictError reports two documents that both set the same scalar field.
type MergeConflictError struct {
	Target string
	Field  string
	First  any
	Second any
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("['%s']['%s'] cannot be cleanly merged (%v vs %v)", e.Target, e.Field, e.First, e.Second)
}

// ValidationError reports a merged configuration that is not usable for diffing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + e.Reason
}
