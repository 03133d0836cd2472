package loader

import "fmt"

// ConfigurationError reports an option map that violates the option
// schema. It is raised before any interpolation or emission happens and
// is always fatal to the invocation. Errors from caller-supplied path
// and transform functions, and from the environment's Emit, are
// propagated unchanged and never wrapped in this type.
type ConfigurationError struct {
	// Key is the offending option name.
	Key string

	// Expected describes the accepted type or shape. Empty when the key
	// itself is unrecognized.
	Expected string
}

func (e *ConfigurationError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("invalid options: unknown option %q", e.Key)
	}
	return fmt.Sprintf("invalid options: option %q must be %s", e.Key, e.Expected)
}
