// Package loader names, emits, and re-exports build artifacts. Given
// raw content bytes and a set of options it computes a content-derived
// filename, decides where the artifact lands in the build output and
// what path string consumers resolve at runtime, registers the bytes
// with the host's emission sink, and returns a one-line module source
// that re-exports the public path.
package loader

import (
	"encoding/json"
	"path"
	"regexp"
	"strings"

	"github.com/grovetools/assetpipe/pkg/emitter"
	"github.com/grovetools/assetpipe/pkg/interpolate"
)

// PublicPathGlobal is the well-known runtime global referenced by the
// default public-path expression. It is emitted verbatim into generated
// source and resolved by the consuming runtime at module-load time,
// never by this package.
const PublicPathGlobal = "__webpack_public_path__"

// DefaultNameTemplate is used when no name template is configured.
const DefaultNameTemplate = "[contenthash].[ext]"

// InterpolateOptions carries the inputs the environment's interpolation
// collaborator substitutes into a name template.
type InterpolateOptions struct {
	Context string
	Content []byte
	RegExp  *regexp.Regexp
}

// InterpolateFunc resolves a name template to a concrete filename.
type InterpolateFunc func(env *Environment, template string, opts InterpolateOptions) (string, error)

// EmitFunc registers content to be written to the build output under
// the given path.
type EmitFunc func(path string, content []byte) error

// Environment is the host-supplied collaborator set for one resource.
type Environment struct {
	// RootContext is the build's root directory, used when options carry
	// no context of their own.
	RootContext string

	// ResourcePath is the path of the resource being processed.
	ResourcePath string

	// Interpolate resolves name templates.
	Interpolate InterpolateFunc

	// Emit registers an artifact with the build output.
	Emit EmitFunc
}

// NewEnvironment wires a ready-to-use environment from the default
// interpolator and an emission sink.
func NewEnvironment(rootContext, resourcePath string, sink emitter.Emitter) *Environment {
	return &Environment{
		RootContext:  rootContext,
		ResourcePath: resourcePath,
		Interpolate: func(env *Environment, template string, opts InterpolateOptions) (string, error) {
			return interpolate.Name(env.ResourcePath, template, interpolate.Options{
				Context: opts.Context,
				Content: opts.Content,
				RegExp:  opts.RegExp,
			})
		},
		Emit: sink.Emit,
	}
}

// Resolution is the full outcome of processing one resource. Source is
// what a host consumes in place of the original module; the remaining
// fields exist so pipelines can record what was produced and where.
type Resolution struct {
	// Name is the interpolated artifact filename.
	Name string

	// OutputPath is where the artifact lands in the build output,
	// always forward-slash separated.
	OutputPath string

	// PublicPath is the source expression that resolves to the
	// artifact's runtime path. It is either a quoted string literal or
	// an expression referencing PublicPathGlobal.
	PublicPath string

	// Source is the generated re-export statement.
	Source string

	// Emitted reports whether the content was registered with the sink.
	Emitted bool
}

// Process validates the raw option map and processes the content,
// returning the generated module source. Validation happens before any
// other work: a schema violation means the interpolator and the sink
// are never touched.
func Process(content []byte, raw RawOptions, env *Environment) (string, error) {
	opts, err := ParseOptions(raw)
	if err != nil {
		return "", err
	}
	return ProcessOptions(content, opts, env)
}

// ProcessOptions is Process for callers that already hold typed Options.
func ProcessOptions(content []byte, opts *Options, env *Environment) (string, error) {
	res, err := Resolve(content, opts, env)
	if err != nil {
		return "", err
	}
	return res.Source, nil
}

// Resolve runs the naming, path-resolution, emission, and source
// generation steps for one resource. The resolution is deterministic
// for identical (content, opts) apart from whatever caller-supplied
// path functions do.
func Resolve(content []byte, opts *Options, env *Environment) (*Resolution, error) {
	context := opts.Context
	if context == "" {
		context = env.RootContext
	}

	template := opts.Name
	if template == "" {
		template = DefaultNameTemplate
	}
	name, err := env.Interpolate(env, template, InterpolateOptions{
		Context: context,
		Content: content,
		RegExp:  opts.RegExp,
	})
	if err != nil {
		return nil, err
	}

	outputPath := name
	if !opts.OutputPath.IsZero() {
		if opts.OutputPath.fn != nil {
			outputPath, err = opts.OutputPath.fn(name, env.ResourcePath, context)
			if err != nil {
				return nil, err
			}
		} else {
			// Forward-slash join regardless of host OS: output paths end
			// up embedded in generated source and must stay portable.
			outputPath = path.Join(opts.OutputPath.static, name)
		}
	}

	publicPath := PublicPathGlobal + " + " + jsonQuote(outputPath)
	if !opts.PublicPath.IsZero() {
		if opts.PublicPath.fn != nil {
			// Trusted to return a valid source expression; not quoted.
			publicPath, err = opts.PublicPath.fn(name, env.ResourcePath, context)
			if err != nil {
				return nil, err
			}
		} else {
			// String mode prefixes the interpolated name, not the
			// customized output path.
			prefix := opts.PublicPath.static
			if !strings.HasSuffix(prefix, "/") {
				prefix += "/"
			}
			publicPath = jsonQuote(prefix + name)
		}
	}
	if opts.PostTransformPublicPath != nil {
		publicPath, err = opts.PostTransformPublicPath(publicPath)
		if err != nil {
			return nil, err
		}
	}

	res := &Resolution{
		Name:       name,
		OutputPath: outputPath,
		PublicPath: publicPath,
	}

	if opts.emitFile() {
		if err := env.Emit(outputPath, content); err != nil {
			return nil, err
		}
		res.Emitted = true
	}

	if opts.esModule() {
		res.Source = "export default " + publicPath + ";"
	} else {
		res.Source = "module.exports = " + publicPath + ";"
	}
	return res, nil
}

func jsonQuote(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
