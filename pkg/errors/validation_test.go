package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "root", false},
		{"with digits", "leaf42", false},
		{"underscore start", "_hidden", false},
		{"dotted", "toolbar.button-1", false},

		{"empty", "", true},
		{"digit start", "1leaf", true},
		{"space", "my node", true},
		{"slash", "a/b", true},
		{"too long", "n" + strings.Repeat("x", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("ValidateNodeID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "scenes/window.toml", false},
		{"valid absolute", "/tmp/window.toml", false},
		{"valid with dots", "../shared/scene.yaml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateScenePath(t *testing.T) {
	tests := []struct {
		input    string
		wantCode Code
	}{
		{"scene.toml", ""},
		{"scene.YAML", ""},
		{"scene.yml", ""},
		{"scene.json", ""},
		{"scene.txt", ErrCodeInvalidFormat},
		{"scene", ErrCodeInvalidFormat},
		{"", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateScenePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateScenePath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

func TestValidateCacheURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"rediss://cache.internal:6380", false},
		{"mongodb://localhost:27017/reflow", false},
		{"mongodb+srv://cluster.example.net/reflow", false},
		{"http://localhost", true},
		{"", true},
	}

	for _, tt := range tests {
		if err := ValidateCacheURL(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateCacheURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidScene,
		ErrCodeInvalidScript,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeInvalidNodeID,
		ErrCodeNotFound,
		ErrCodeUnknownNode,
		ErrCodeFileNotFound,
		ErrCodeRootMissing,
		ErrCodeDanglingChild,
		ErrCodePlacementMismatch,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
