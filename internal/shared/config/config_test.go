package config

import "testing"

func TestNormalizeEnv(t *testing.T) {
	tests := []struct{ in, want string }{
		{"prod", "production"},
		{"Production", "production"},
		{"staging", "staging"},
		{"local", "local"},
		{"development", "dev"},
		{"", "dev"},
		{"garbage", "dev"},
	}
	for _, tt := range tests {
		if got := normalizeEnv(tt.in); got != tt.want {
			t.Errorf("normalizeEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDevLike(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"dev", true},
		{"local", true},
		{"staging", false},
		{"production", false},
	}
	for _, tt := range tests {
		if got := (Config{Env: tt.env}).IsDevLike(); got != tt.want {
			t.Errorf("IsDevLike(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}
