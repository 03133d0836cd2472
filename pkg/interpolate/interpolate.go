package interpolate

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// DefaultHashLength is the number of hex characters emitted for
// [contenthash] and [hash] when no explicit length is given.
const DefaultHashLength = 32

// Options carries the inputs that placeholder substitution can draw on
// beyond the resource path itself.
type Options struct {
	// Context is the directory that [path] is computed relative to.
	Context string

	// Content is the raw artifact bytes hashed for [contenthash]/[hash].
	Content []byte

	// RegExp, when set, is matched against the slash-normalized resource
	// path and its capture groups become available as [1]..[9].
	RegExp *regexp.Regexp
}

// placeholderRe matches the recognized placeholders. Anything else in
// square brackets is left untouched so templates can carry literal
// bracket text through unchanged.
var placeholderRe = regexp.MustCompile(`\[(?:(contenthash|hash)(?::([0-9]+))?|(name)|(ext)|(path)|(folder)|([1-9]))\]`)

// Name resolves a filename template against a resource path and its
// content. The result is a pure function of its inputs: identical
// (resourcePath, template, options) always produce the identical name.
func Name(resourcePath, template string, opts Options) (string, error) {
	posixPath := filepath.ToSlash(resourcePath)

	ext := strings.TrimPrefix(filepath.Ext(resourcePath), ".")
	if ext == "" {
		ext = "bin"
	}
	base := strings.TrimSuffix(filepath.Base(resourcePath), filepath.Ext(resourcePath))

	var captures []string
	if opts.RegExp != nil {
		captures = opts.RegExp.FindStringSubmatch(posixPath)
		if captures == nil {
			return "", fmt.Errorf("pattern %q did not match resource path %q", opts.RegExp, posixPath)
		}
	}

	var substErr error
	name := placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		if substErr != nil {
			return match
		}
		groups := placeholderRe.FindStringSubmatch(match)
		switch {
		case groups[1] != "":
			length := DefaultHashLength
			if groups[2] != "" {
				length, _ = strconv.Atoi(groups[2])
			}
			return ContentHash(opts.Content, length)
		case groups[3] != "":
			return base
		case groups[4] != "":
			return ext
		case groups[5] != "":
			return relativeDir(opts.Context, resourcePath)
		case groups[6] != "":
			return filepath.Base(filepath.Dir(resourcePath))
		case groups[7] != "":
			n, _ := strconv.Atoi(groups[7])
			if n >= len(captures) {
				substErr = fmt.Errorf("template %q references capture group %d, but pattern %q has only %d", template, n, opts.RegExp, len(captures)-1)
				return match
			}
			return captures[n]
		}
		return match
	})
	if substErr != nil {
		return "", substErr
	}
	return name, nil
}

// ContentHash returns the hex BLAKE3 digest of content truncated to
// length characters. Lengths outside (0, 64] fall back to the full
// 64-character digest.
func ContentHash(content []byte, length int) string {
	sum := blake3.Sum256(content)
	digest := hex.EncodeToString(sum[:])
	if length > 0 && length < len(digest) {
		return digest[:length]
	}
	return digest
}

// relativeDir returns the resource's directory relative to context as a
// clean POSIX path with a trailing slash, or "" when the resource sits
// directly in the context directory. Paths embedded in generated names
// must be forward-slash regardless of host OS.
func relativeDir(context, resourcePath string) string {
	dir := filepath.Dir(resourcePath)
	if context != "" {
		if rel, err := filepath.Rel(context, dir); err == nil {
			dir = rel
		}
	}
	dir = filepath.ToSlash(filepath.Clean(dir))
	dir = strings.TrimPrefix(dir, "./")
	if dir == "." || dir == "" {
		return ""
	}
	return dir + "/"
}
