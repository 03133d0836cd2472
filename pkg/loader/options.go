package loader

import (
	"fmt"
	"regexp"
	"sort"
)

// PathFunc computes a path from the resolved artifact name, the
// resource's own path, and the effective context directory. Its return
// value is used verbatim.
type PathFunc func(name, resourcePath, context string) (string, error)

// TransformFunc rewrites a public-path source expression after it has
// been computed. The result replaces the expression verbatim.
type TransformFunc func(expr string) (string, error)

// PathPolicy is a tagged variant: either a static path string or a
// caller-supplied function. The zero value means "unset" and leaves the
// default behavior in place.
type PathPolicy struct {
	static   string
	isStatic bool
	fn       PathFunc
}

// StaticPath returns a policy that joins or prefixes with a fixed string.
func StaticPath(s string) PathPolicy {
	return PathPolicy{static: s, isStatic: true}
}

// ComputedPath returns a policy backed by a caller-supplied function.
func ComputedPath(fn PathFunc) PathPolicy {
	return PathPolicy{fn: fn}
}

// IsZero reports whether the policy is unset.
func (p PathPolicy) IsZero() bool {
	return !p.isStatic && p.fn == nil
}

// Options is the resolved configuration for a single invocation.
// Pointer-typed booleans distinguish "unset" from an explicit false:
// both EmitFile and ESModule default to true when nil.
type Options struct {
	Context                 string
	Name                    string
	RegExp                  *regexp.Regexp
	OutputPath              PathPolicy
	PublicPath              PathPolicy
	PostTransformPublicPath TransformFunc
	EmitFile                *bool
	ESModule                *bool
}

func (o *Options) emitFile() bool { return o.EmitFile == nil || *o.EmitFile }
func (o *Options) esModule() bool { return o.ESModule == nil || *o.ESModule }

// RawOptions is the untyped option map as supplied by a host. It is
// validated against the option schema before any other work happens.
type RawOptions map[string]any

// optionSchema is the exhaustive set of recognized options. Validation
// is driven by this table rather than by type checks scattered through
// the resolution flow.
var optionSchema = map[string]string{
	"context":                 "a string",
	"name":                    "a string",
	"outputPath":              "a string or a path function",
	"publicPath":              "a string or a path function",
	"postTransformPublicPath": "a transform function",
	"emitFile":                "a boolean",
	"esModule":                "a boolean",
	"regExp":                  "a string or a *regexp.Regexp",
}

// ParseOptions validates a raw option map against the option schema and
// converts it to typed Options. Unknown keys and type mismatches yield
// a *ConfigurationError. Keys are checked in sorted order so the
// reported offender is deterministic.
func ParseOptions(raw RawOptions) (*Options, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := &Options{}
	for _, key := range keys {
		expected, known := optionSchema[key]
		if !known {
			return nil, &ConfigurationError{Key: key}
		}
		value := raw[key]
		switch key {
		case "context":
			s, ok := value.(string)
			if !ok {
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
			opts.Context = s
		case "name":
			s, ok := value.(string)
			if !ok {
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
			opts.Name = s
		case "outputPath":
			policy, ok := asPathPolicy(value)
			if !ok {
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
			opts.OutputPath = policy
		case "publicPath":
			policy, ok := asPathPolicy(value)
			if !ok {
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
			opts.PublicPath = policy
		case "postTransformPublicPath":
			switch fn := value.(type) {
			case TransformFunc:
				opts.PostTransformPublicPath = fn
			case func(string) (string, error):
				opts.PostTransformPublicPath = fn
			default:
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
		case "emitFile":
			b, ok := value.(bool)
			if !ok {
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
			opts.EmitFile = &b
		case "esModule":
			b, ok := value.(bool)
			if !ok {
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
			opts.ESModule = &b
		case "regExp":
			switch re := value.(type) {
			case *regexp.Regexp:
				opts.RegExp = re
			case string:
				compiled, err := regexp.Compile(re)
				if err != nil {
					return nil, &ConfigurationError{Key: key, Expected: fmt.Sprintf("a valid regular expression: %v", err)}
				}
				opts.RegExp = compiled
			default:
				return nil, &ConfigurationError{Key: key, Expected: expected}
			}
		}
	}
	return opts, nil
}

func asPathPolicy(value any) (PathPolicy, bool) {
	switch v := value.(type) {
	case string:
		return StaticPath(v), true
	case PathFunc:
		return ComputedPath(v), true
	case func(string, string, string) (string, error):
		return ComputedPath(v), true
	}
	return PathPolicy{}, false
}
