package processor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidmark/internal/pkg/logger"
)

func TestScratch(t *testing.T) {
	dir := t.TempDir()
	s := NewScratch(dir)

	a := s.Path("input", ".mp4")
	b := s.Path("input", ".mp4")
	never := s.Path("logo", ".png")

	if a == b {
		t.Fatal("scratch paths must be unique")
	}
	if filepath.Dir(a) != dir || !strings.HasSuffix(a, ".mp4") {
		t.Errorf("unexpected path %q", a)
	}

	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s.Cleanup(logger.Discard())

	for _, p := range []string{a, b, never} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed, stat err = %v", p, err)
		}
	}
	if len(s.paths) != 0 {
		t.Error("cleanup should forget removed paths")
	}

	// A second cleanup is a no-op.
	s.Cleanup(logger.Discard())
}

func TestExtOf(t *testing.T) {
	tests := []struct {
		in, def, want string
	}{
		{"http://x/a.mp4", ".mp4", ".mp4"},
		{"http://x/a.MOV?X-Amz-Signature=abc", ".mp4", ".mov"},
		{"http://x/logo", ".png", ".png"},
		{"uploads/u1/clip.webm", ".mp4", ".webm"},
		{"http://x.example.com/path", ".mp4", ".mp4"},
		{"https://cdn.example.com", ".mp4", ".mp4"},
		{"https://cdn.example.com?sig=a.b", ".png", ".png"},
		{"https://cdn.example.com/v/clip.MKV#t=1", ".mp4", ".mkv"},
	}

	for _, tt := range tests {
		if got := extOf(tt.in, tt.def); got != tt.want {
			t.Errorf("extOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
