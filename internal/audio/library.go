package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MinTracks is the smallest library the coordinator accepts.
const MinTracks = 1

// ErrNotEnoughTracks indicates the music directory holds too few tracks.
var ErrNotEnoughTracks = errors.New("not enough audio tracks")

var trackExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
}

// Track is one playable file of the music library.
type Track struct {
	Path string
	Name string
}

// IsTrackFile reports whether name has a supported audio extension.
func IsTrackFile(name string) bool {
	return trackExtensions[strings.ToLower(filepath.Ext(name))]
}

// ScanLibrary lists the audio files directly inside dir in name order.
func ScanLibrary(dir string) ([]Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read music directory %s: %w", dir, err)
	}

	var tracks []Track
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsTrackFile(entry.Name()) {
			continue
		}
		tracks = append(tracks, Track{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
		})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Name < tracks[j].Name })

	if len(tracks) < MinTracks {
		return nil, fmt.Errorf("%w: found %d in %s, need at least %d", ErrNotEnoughTracks, len(tracks), dir, MinTracks)
	}
	return tracks, nil
}

// FileReadable probes whether path can be opened for reading.
func FileReadable(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = file.Close()
	return true
}
