// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"sepia", false, true},
		{"DARK", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestBinaryFilePath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path BinaryFilePath
		want bool
	}{
		{"empty means PATH lookup", "", true},
		{"absolute path", "/opt/rust/bin/cargo", true},
		{"relative path", "bin/cargo", true},
		{"whitespace only", "   ", false},
		{"tab only", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("BinaryFilePath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidBinaryFilePath) {
				t.Errorf("error should wrap ErrInvalidBinaryFilePath, got: %v", errs[0])
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"defaults", *DefaultConfig(), true},
		{
			name: "populated",
			cfg: Config{
				CargoPath:  "/opt/rust/bin/cargo",
				RustupPath: "/opt/rust/bin/rustup",
				Jobs:       8,
				UI:         UIConfig{ColorScheme: ColorSchemeDark},
			},
			want: true,
		},
		{
			name: "negative jobs",
			cfg: Config{
				Jobs: -1,
				UI:   UIConfig{ColorScheme: ColorSchemeAuto},
			},
			want: false,
		},
		{
			name: "whitespace cargo path",
			cfg: Config{
				CargoPath: "  ",
				UI:        UIConfig{ColorScheme: ColorSchemeAuto},
			},
			want: false,
		},
		{
			name: "bad color scheme",
			cfg: Config{
				UI: UIConfig{ColorScheme: "sepia"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.cfg.IsValid()
			if isValid != tt.want {
				t.Errorf("IsValid() = %v, want %v (errors: %v)", isValid, tt.want, errs)
			}
			if !tt.want {
				if len(errs) != 1 {
					t.Fatalf("IsValid() returned %d errors, want 1 wrapping error", len(errs))
				}
				if !errors.Is(errs[0], ErrInvalidConfig) {
					t.Errorf("error should wrap ErrInvalidConfig, got: %v", errs[0])
				}
			}
		})
	}
}
