package errors

import (
	"testing"
)

func TestValidateEntryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "logo.png", false},
		{"valid with dash", "my-file.txt", false},
		{"valid with underscore", "my_file", false},
		{"valid dotfile", ".gitignore", false},
		{"valid unicode", "héllo.txt", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateEntryName(%q) returned wrong error code: %v", tt.input, err)
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
		{"valid simple", "assets/logo.png", false},
		{"valid nested", "assets/icons/small/dot.png", false},
		{"valid filename only", "README.md", false},
		{"valid with dots", "v1.2.3/data.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
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

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidStrategy,
		ErrCodeInvalidWidth,
		ErrCodeInvalidSubformat,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeSinkFailed,
		ErrCodeScanFailed,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
