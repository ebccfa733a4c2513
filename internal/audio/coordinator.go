package audio

import (
	"log"
	"math/rand"
	"time"
)

const (
	// MaxVolume is the loudest level the backend accepts.
	MaxVolume = 128
	// DefaultVolume is the level applied at start-up.
	DefaultVolume = MaxVolume / 2

	defaultMaxAttempts = 32
)

// Backend plays decoded audio. Implementations are driven from a single
// goroutine; TrackDone and AlarmPlaying may be backed by state the audio
// thread updates.
type Backend interface {
	PlayTrack(path string) error
	StopTrack()
	TrackDone() bool
	PlayAlarm() error
	AlarmPlaying() bool
	SetVolume(level int)
	Close() error
}

// Options tunes track selection.
type Options struct {
	Rand        *rand.Rand
	MaxAttempts int
	// Accessible probes a track before it is handed to the backend.
	Accessible func(path string) bool
}

// Coordinator owns background music, the alarm and the volume. It is not
// safe for concurrent use; the timer loop is its only caller.
type Coordinator struct {
	backend     Backend
	tracks      []Track
	history     *History
	rng         *rand.Rand
	maxAttempts int
	accessible  func(string) bool

	volume  int
	muted   bool
	playing bool
	current int
}

// NewCoordinator wires backend to the scanned library and applies the
// default volume.
func NewCoordinator(backend Backend, tracks []Track, options Options) *Coordinator {
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = defaultMaxAttempts
	}
	if options.Accessible == nil {
		options.Accessible = FileReadable
	}

	coordinator := &Coordinator{
		backend:     backend,
		tracks:      tracks,
		history:     NewHistory(HistorySize(len(tracks))),
		rng:         options.Rand,
		maxAttempts: options.MaxAttempts,
		accessible:  options.Accessible,
		volume:      DefaultVolume,
		current:     -1,
	}
	coordinator.applyVolume()
	return coordinator
}

// Play starts background music unless it is already running.
func (coordinator *Coordinator) Play() {
	if coordinator.playing {
		return
	}

	failed := make(map[int]bool)
	accessible := func(index int) bool {
		return !failed[index] && coordinator.accessible(coordinator.tracks[index].Path)
	}
	for {
		index, err := SelectNext(coordinator.rng, len(coordinator.tracks), coordinator.history, accessible, coordinator.maxAttempts)
		if err != nil {
			log.Printf("background music unavailable: %v", err)
			return
		}
		track := coordinator.tracks[index]
		if err := coordinator.backend.PlayTrack(track.Path); err != nil {
			log.Printf("failed to play %s: %v", track.Name, err)
			failed[index] = true
			continue
		}
		coordinator.playing = true
		coordinator.current = index
		return
	}
}

// Stop halts background music. Calling it while nothing plays is a no-op.
func (coordinator *Coordinator) Stop() {
	if !coordinator.playing {
		return
	}
	coordinator.backend.StopTrack()
	coordinator.playing = false
	coordinator.current = -1
}

// Alarm stops the music and plays the alarm sound once. A muted
// coordinator stays silent.
func (coordinator *Coordinator) Alarm() {
	coordinator.Stop()
	if coordinator.muted {
		return
	}
	if err := coordinator.backend.PlayAlarm(); err != nil {
		log.Printf("failed to play alarm: %v", err)
	}
}

func (coordinator *Coordinator) AlarmPlaying() bool {
	return coordinator.backend.AlarmPlaying()
}

func (coordinator *Coordinator) Playing() bool {
	return coordinator.playing
}

// Service moves on to a fresh track once the current one has ended.
func (coordinator *Coordinator) Service() {
	if !coordinator.playing || !coordinator.backend.TrackDone() {
		return
	}
	coordinator.Stop()
	coordinator.Play()
}

// ToggleMute silences playback without forgetting the stored level.
func (coordinator *Coordinator) ToggleMute() {
	coordinator.muted = !coordinator.muted
	coordinator.applyVolume()
}

// AdjustVolume changes the stored level by delta.
func (coordinator *Coordinator) AdjustVolume(delta int) {
	coordinator.SetVolume(coordinator.volume + delta)
}

// SetVolume stores level clamped to [0, MaxVolume].
func (coordinator *Coordinator) SetVolume(level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxVolume {
		level = MaxVolume
	}
	coordinator.volume = level
	coordinator.applyVolume()
}

func (coordinator *Coordinator) Volume() int {
	return coordinator.volume
}

// VolumePercent reports the audible level, 0 while muted.
func (coordinator *Coordinator) VolumePercent() int {
	if coordinator.muted {
		return 0
	}
	return coordinator.volume * 100 / MaxVolume
}

func (coordinator *Coordinator) Muted() bool {
	return coordinator.muted
}

// CurrentTrackName returns the file name of the playing track, or "".
func (coordinator *Coordinator) CurrentTrackName() string {
	if !coordinator.playing || coordinator.current < 0 {
		return ""
	}
	return coordinator.tracks[coordinator.current].Name
}

// Close stops playback and releases the backend.
func (coordinator *Coordinator) Close() error {
	coordinator.Stop()
	return coordinator.backend.Close()
}

func (coordinator *Coordinator) applyVolume() {
	if coordinator.muted {
		coordinator.backend.SetVolume(0)
		return
	}
	coordinator.backend.SetVolume(coordinator.volume)
}
