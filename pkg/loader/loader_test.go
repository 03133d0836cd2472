package loader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/assetpipe/pkg/emitter"
	"github.com/grovetools/assetpipe/pkg/interpolate"
)

var pngContent = []byte("not-really-a-png")

func testEnv(resourcePath string, sink emitter.Emitter) *Environment {
	return NewEnvironment("/project", resourcePath, sink)
}

func TestResolve_Deterministic(t *testing.T) {
	opts := &Options{Name: "[contenthash:16].[ext]"}

	first, err := Resolve(pngContent, opts, testEnv("/project/logo.png", emitter.NewMemory()))
	require.NoError(t, err)
	second, err := Resolve(pngContent, opts, testEnv("/project/logo.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.OutputPath, second.OutputPath)
	assert.Equal(t, first.PublicPath, second.PublicPath)
	assert.Equal(t, first.Source, second.Source)
}

func TestResolve_DefaultPublicPathExpression(t *testing.T) {
	sink := emitter.NewMemory()

	res, err := Resolve(pngContent, &Options{}, testEnv("/project/logo.png", sink))
	require.NoError(t, err)

	wantName := interpolate.ContentHash(pngContent, interpolate.DefaultHashLength) + ".png"
	assert.Equal(t, wantName, res.Name)
	assert.Equal(t, wantName, res.OutputPath)
	assert.Equal(t, fmt.Sprintf(`export default __webpack_public_path__ + %q;`, wantName), res.Source)

	content, ok := sink.Get(wantName)
	require.True(t, ok)
	assert.Equal(t, pngContent, content)
}

func TestResolve_OutputPathStringJoinsForward(t *testing.T) {
	opts := &Options{
		Name:       "[name].[ext]",
		OutputPath: StaticPath("dist"),
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, "abc123.png", res.Name)
	assert.Equal(t, "dist/abc123.png", res.OutputPath)
}

func TestResolve_OutputPathFunctionUsedVerbatim(t *testing.T) {
	var gotName, gotResource, gotContext string
	opts := &Options{
		Name: "[name].[ext]",
		OutputPath: ComputedPath(func(name, resourcePath, context string) (string, error) {
			gotName, gotResource, gotContext = name, resourcePath, context
			return "anything/goes/here", nil
		}),
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/logo.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, "anything/goes/here", res.OutputPath)
	assert.Equal(t, "logo.png", gotName)
	assert.Equal(t, "/project/logo.png", gotResource)
	assert.Equal(t, "/project", gotContext)
}

func TestResolve_PublicPathStringUsesNameNotOutputPath(t *testing.T) {
	opts := &Options{
		Name:       "[name].[ext]",
		OutputPath: StaticPath("assets"),
		PublicPath: StaticPath("https://cdn.example.com"),
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", emitter.NewMemory()))
	require.NoError(t, err)

	// The artifact still lands under assets/, but the public reference
	// is prefix + name with a normalized trailing slash.
	assert.Equal(t, "assets/abc123.png", res.OutputPath)
	assert.Equal(t, `export default "https://cdn.example.com/abc123.png";`, res.Source)
}

func TestResolve_PublicPathTrailingSlashNotDoubled(t *testing.T) {
	opts := &Options{
		Name:       "[name].[ext]",
		PublicPath: StaticPath("/static/"),
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, `export default "/static/abc123.png";`, res.Source)
}

func TestResolve_PublicPathFunctionNotQuoted(t *testing.T) {
	opts := &Options{
		Name: "[name].[ext]",
		PublicPath: ComputedPath(func(name, resourcePath, context string) (string, error) {
			return "baseURL + " + fmt.Sprintf("%q", name), nil
		}),
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, `export default baseURL + "abc123.png";`, res.Source)
}

func TestResolve_CommonJS(t *testing.T) {
	esModule := false
	opts := &Options{
		Name:       "[name].[ext]",
		PublicPath: StaticPath("https://cdn.example.com"),
		ESModule:   &esModule,
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, `module.exports = "https://cdn.example.com/abc123.png";`, res.Source)
}

func TestResolve_PostTransformAppliesToEveryBranch(t *testing.T) {
	upper := func(expr string) (string, error) { return strings.ToUpper(expr), nil }

	cases := []struct {
		label string
		opts  *Options
	}{
		{"default", &Options{Name: "[name].[ext]", PostTransformPublicPath: upper}},
		{"string", &Options{Name: "[name].[ext]", PublicPath: StaticPath("https://cdn.example.com"), PostTransformPublicPath: upper}},
		{"function", &Options{Name: "[name].[ext]", PublicPath: ComputedPath(func(name, _, _ string) (string, error) { return "base + x", nil }), PostTransformPublicPath: upper}},
	}
	for _, tc := range cases {
		res, err := Resolve(pngContent, tc.opts, testEnv("/project/abc123.png", emitter.NewMemory()))
		require.NoError(t, err, tc.label)
		assert.Equal(t, strings.ToUpper(res.PublicPath), res.PublicPath, tc.label)
	}
}

func TestResolve_PostTransformUppercasesQuotedExpression(t *testing.T) {
	opts := &Options{
		Name:                    "[name].[ext]",
		PublicPath:              StaticPath("https://cdn.example.com"),
		PostTransformPublicPath: func(expr string) (string, error) { return strings.ToUpper(expr), nil },
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", emitter.NewMemory()))
	require.NoError(t, err)

	assert.Equal(t, `export default "HTTPS://CDN.EXAMPLE.COM/ABC123.PNG";`, res.Source)
}

func TestResolve_EmitFileFalseSkipsSinkButStillGenerates(t *testing.T) {
	emitFile := false
	sink := emitter.NewMemory()
	opts := &Options{
		Name:     "[name].[ext]",
		EmitFile: &emitFile,
	}

	res, err := Resolve(pngContent, opts, testEnv("/project/abc123.png", sink))
	require.NoError(t, err)

	assert.Zero(t, sink.Len())
	assert.False(t, res.Emitted)
	assert.Equal(t, `export default __webpack_public_path__ + "abc123.png";`, res.Source)
}

func TestResolve_EmitsExactlyOnce(t *testing.T) {
	var calls int
	env := testEnv("/project/abc123.png", emitter.NewMemory())
	env.Emit = func(path string, content []byte) error {
		calls++
		return nil
	}

	_, err := Resolve(pngContent, &Options{Name: "[name].[ext]"}, env)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestResolve_UserCallbackErrorPropagatesUnchanged(t *testing.T) {
	sentinel := errors.New("callback exploded")

	cases := []struct {
		label string
		opts  *Options
	}{
		{"outputPath", &Options{Name: "[name].[ext]", OutputPath: ComputedPath(func(_, _, _ string) (string, error) { return "", sentinel })}},
		{"publicPath", &Options{Name: "[name].[ext]", PublicPath: ComputedPath(func(_, _, _ string) (string, error) { return "", sentinel })}},
		{"postTransformPublicPath", &Options{Name: "[name].[ext]", PostTransformPublicPath: func(string) (string, error) { return "", sentinel }}},
	}
	for _, tc := range cases {
		_, err := Resolve(pngContent, tc.opts, testEnv("/project/abc123.png", emitter.NewMemory()))
		assert.Equal(t, sentinel, err, tc.label)
	}
}

func TestResolve_EmitErrorPropagatesUnchanged(t *testing.T) {
	sentinel := errors.New("disk full")
	env := testEnv("/project/abc123.png", emitter.NewMemory())
	env.Emit = func(string, []byte) error { return sentinel }

	_, err := Resolve(pngContent, &Options{Name: "[name].[ext]"}, env)
	assert.Equal(t, sentinel, err)
}

func TestProcess_UnknownOptionFailsBeforeAnyWork(t *testing.T) {
	var interpolations, emissions int
	env := &Environment{
		RootContext:  "/project",
		ResourcePath: "/project/logo.png",
		Interpolate: func(env *Environment, template string, opts InterpolateOptions) (string, error) {
			interpolations++
			return "x", nil
		},
		Emit: func(string, []byte) error {
			emissions++
			return nil
		},
	}

	_, err := Process(pngContent, RawOptions{"foo": 1}, env)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "foo", cfgErr.Key)
	assert.Zero(t, interpolations)
	assert.Zero(t, emissions)
}

func TestProcess_RawOptionsEndToEnd(t *testing.T) {
	sink := emitter.NewMemory()
	env := testEnv("/project/logo.png", sink)

	source, err := Process(pngContent, RawOptions{
		"name":       "[name].[ext]",
		"outputPath": "img",
		"esModule":   false,
	}, env)
	require.NoError(t, err)

	assert.Equal(t, `module.exports = __webpack_public_path__ + "img/logo.png";`, source)
	_, ok := sink.Get("img/logo.png")
	assert.True(t, ok)
}
