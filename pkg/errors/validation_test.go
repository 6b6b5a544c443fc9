package errors

import (
	"strings"
	"testing"
)

func TestValidateKitName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Next.js Starter Kit", false},
		{"valid with punctuation", "VS Code Extension Starter (TS)", false},
		{"valid unicode", "Démarreur Django", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 201), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKitName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKitName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCatalog) {
				t.Errorf("ValidateKitName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidCatalog)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://github.com/vercel/next.js", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"ssh style", "git@github.com:vercel/next.js.git", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default slot", "github-repo-stats-cache", false},
		{"with colon", "kitshelf:stats", false},

		{"empty", "", true},
		{"too long", strings.Repeat("s", 129), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"space", "my slot", true},
		{"control", "slot\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
