package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScanLibraryFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.MP3", "a.wav", "c.ogg", "notes.txt", "cover.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.mp3"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tracks, err := ScanLibrary(dir)
	if err != nil {
		t.Fatalf("ScanLibrary: %v", err)
	}
	want := []string{"a.wav", "b.MP3", "c.ogg"}
	if len(tracks) != len(want) {
		t.Fatalf("tracks=%v, want %v", tracks, want)
	}
	for i, track := range tracks {
		if track.Name != want[i] {
			t.Fatalf("tracks[%d]=%s, want %s", i, track.Name, want[i])
		}
		if track.Path != filepath.Join(dir, want[i]) {
			t.Fatalf("tracks[%d].Path=%s", i, track.Path)
		}
	}
}

func TestScanLibraryEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ScanLibrary(dir); !errors.Is(err, ErrNotEnoughTracks) {
		t.Fatalf("err=%v, want ErrNotEnoughTracks", err)
	}
}

func TestScanLibraryMissingDirectory(t *testing.T) {
	_, err := ScanLibrary(filepath.Join(t.TempDir(), "missing"))
	if err == nil || errors.Is(err, ErrNotEnoughTracks) {
		t.Fatalf("err=%v, want read error", err)
	}
}

func TestFileReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.mp3")
	if FileReadable(path) {
		t.Fatalf("missing file reported readable")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileReadable(path) {
		t.Fatalf("existing file reported unreadable")
	}
}
