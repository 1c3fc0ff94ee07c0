package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// nodeIDRegex matches identifiers usable in scene files and edit scripts.
var nodeIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateNodeID validates a node identifier from a scene or script.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Must start with a letter or underscore
//   - Only letters, digits, '_', '.', '-' afterwards
//
// The layout engine itself accepts any comparable identity; these rules only
// apply to the textual formats.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidNodeID, "node id too long (max 128 characters)")
	}

	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "invalid node id: %q", id)
	}

	return nil
}

// sceneExtensions lists the file extensions a scene may be loaded from.
var sceneExtensions = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ValidatePath validates a local file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateScenePath validates a scene file path and its extension.
func ValidateScenePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !sceneExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported scene format %q (want .toml, .yaml, .yml or .json)", ext)
	}

	return nil
}

// ValidateCacheURL validates a cache backend URL.
// Only redis:// , rediss:// and mongodb:// (including mongodb+srv://) are accepted.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "cache URL cannot be empty")
	}

	for _, scheme := range []string{"redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}

	return New(ErrCodeInvalidInput, "cache URL must use redis, rediss or mongodb scheme")
}
