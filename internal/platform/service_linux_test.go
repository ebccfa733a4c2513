//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDocumentsDirLinux(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))

	t.Setenv("XDG_DOCUMENTS_DIR", "")
	dir, err := NewService().DocumentsDir()
	if err != nil {
		t.Fatalf("DocumentsDir: %v", err)
	}
	if dir != filepath.Join(home, "Documents") {
		t.Fatalf("DocumentsDir=%s, want %s", dir, filepath.Join(home, "Documents"))
	}

	custom := filepath.Join(home, "Docs")
	t.Setenv("XDG_DOCUMENTS_DIR", custom)
	if dir, _ := NewService().DocumentsDir(); dir != custom {
		t.Fatalf("DocumentsDir=%s, want %s", dir, custom)
	}

	t.Setenv("XDG_DOCUMENTS_DIR", "relative/docs")
	if dir, _ := NewService().DocumentsDir(); dir != filepath.Join(home, "Documents") {
		t.Fatalf("relative XDG_DOCUMENTS_DIR used: %s", dir)
	}
}

func TestDocumentsDirFromUserDirs(t *testing.T) {
	home := t.TempDir()
	configHome := filepath.Join(home, "config")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DOCUMENTS_DIR", "")

	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	contents := "# written by xdg-user-dirs-update\n" +
		"XDG_DESKTOP_DIR=\"$HOME/Desktop\"\n" +
		"XDG_DOCUMENTS_DIR=\"$HOME/Dokumente\"\n"
	if err := os.WriteFile(filepath.Join(configHome, "user-dirs.dirs"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write user-dirs.dirs: %v", err)
	}

	dir, err := NewService().DocumentsDir()
	if err != nil {
		t.Fatalf("DocumentsDir: %v", err)
	}
	if want := filepath.Join(home, "Dokumente"); dir != want {
		t.Fatalf("DocumentsDir=%s, want %s", dir, want)
	}
}

func TestReadUserDirs(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		want  string
		found bool
	}{
		{name: "home relative", line: `XDG_DOCUMENTS_DIR="$HOME/Docs"`, want: "/home/ada/Docs", found: true},
		{name: "absolute", line: `XDG_DOCUMENTS_DIR="/data/docs/"`, want: "/data/docs", found: true},
		{name: "disabled", line: `XDG_DOCUMENTS_DIR="$HOME/"`},
		{name: "relative", line: `XDG_DOCUMENTS_DIR="docs"`},
		{name: "missing", line: `XDG_MUSIC_DIR="$HOME/Music"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "user-dirs.dirs")
			if err := os.WriteFile(path, []byte(tc.line+"\n"), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			dir, found := readUserDirs(path, "/home/ada")
			if dir != tc.want || found != tc.found {
				t.Fatalf("readUserDirs=(%q, %v), want (%q, %v)", dir, found, tc.want, tc.found)
			}
		})
	}
	if _, found := readUserDirs(filepath.Join(t.TempDir(), "absent"), "/home/ada"); found {
		t.Fatalf("found a documents dir in a missing file")
	}
}
