package interpolate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var content = []byte("some file content")

func TestName_BasicPlaceholders(t *testing.T) {
	name, err := Name("assets/img/logo.png", "[name].[ext]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, "logo.png", name)
}

func TestName_Folder(t *testing.T) {
	name, err := Name("assets/img/logo.png", "[folder]-[name].[ext]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, "img-logo.png", name)
}

func TestName_PathRelativeToContext(t *testing.T) {
	name, err := Name("assets/img/icons/logo.png", "[path][name].[ext]", Options{
		Context: "assets",
		Content: content,
	})
	require.NoError(t, err)
	assert.Equal(t, "img/icons/logo.png", name)
}

func TestName_PathEmptyForContextRoot(t *testing.T) {
	name, err := Name("assets/logo.png", "[path][name].[ext]", Options{
		Context: "assets",
		Content: content,
	})
	require.NoError(t, err)
	assert.Equal(t, "logo.png", name)
}

func TestName_ContentHashDefaultLength(t *testing.T) {
	name, err := Name("logo.png", "[contenthash]", Options{Content: content})
	require.NoError(t, err)
	assert.Len(t, name, DefaultHashLength)
	assert.Equal(t, ContentHash(content, DefaultHashLength), name)
}

func TestName_ContentHashExplicitLength(t *testing.T) {
	name, err := Name("logo.png", "[contenthash:8].[ext]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, ContentHash(content, 8)+".png", name)
	assert.Len(t, name, 8+len(".png"))
}

func TestName_HashAliasesContentHash(t *testing.T) {
	aliased, err := Name("logo.png", "[hash:16]", Options{Content: content})
	require.NoError(t, err)
	canonical, err := Name("logo.png", "[contenthash:16]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, canonical, aliased)
}

func TestName_Deterministic(t *testing.T) {
	first, err := Name("assets/logo.png", "[contenthash:16].[ext]", Options{Content: content})
	require.NoError(t, err)
	second, err := Name("assets/logo.png", "[contenthash:16].[ext]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestName_DifferentContentDifferentHash(t *testing.T) {
	first, err := Name("logo.png", "[contenthash]", Options{Content: []byte("a")})
	require.NoError(t, err)
	second, err := Name("logo.png", "[contenthash]", Options{Content: []byte("b")})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestName_UnknownPlaceholderLeftVerbatim(t *testing.T) {
	name, err := Name("logo.png", "[foo]-[name].[ext]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, "[foo]-logo.png", name)
}

func TestName_MissingExtensionFallsBackToBin(t *testing.T) {
	name, err := Name("Makefile", "[name].[ext]", Options{Content: content})
	require.NoError(t, err)
	assert.Equal(t, "Makefile.bin", name)
}

func TestName_RegexpCaptures(t *testing.T) {
	name, err := Name("assets/img/logo.png", "[1]-[name].[ext]", Options{
		Content: content,
		RegExp:  regexp.MustCompile(`assets/(\w+)/`),
	})
	require.NoError(t, err)
	assert.Equal(t, "img-logo.png", name)
}

func TestName_RegexpNoMatch(t *testing.T) {
	_, err := Name("other/logo.png", "[1].[ext]", Options{
		Content: content,
		RegExp:  regexp.MustCompile(`assets/(\w+)/`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not match")
}

func TestName_RegexpCaptureOutOfRange(t *testing.T) {
	_, err := Name("assets/img/logo.png", "[2].[ext]", Options{
		Content: content,
		RegExp:  regexp.MustCompile(`assets/(\w+)/`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture group 2")
}

func TestContentHash_Truncation(t *testing.T) {
	full := ContentHash(content, 0)
	assert.Len(t, full, 64)
	assert.Equal(t, full[:8], ContentHash(content, 8))
	assert.Equal(t, full, ContentHash(content, 200), "oversized length falls back to the full digest")
}
