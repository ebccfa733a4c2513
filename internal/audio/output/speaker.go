// Package output plays audio.Backend sounds on the system audio device.
package output

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"studywithme/internal/audio"
)

const (
	outputRate      = beep.SampleRate(44100)
	resampleQuality = 4
)

var _ audio.Backend = (*Speaker)(nil)

// Speaker plays through the system audio device. The alarm is decoded into
// memory once so it can be replayed without touching the disk. Music and
// alarm each pass through their own gain stage set from the same level.
type Speaker struct {
	alarm *beep.Buffer

	music       *beep.Ctrl
	decoder     beep.StreamSeekCloser
	musicGain   *effects.Volume
	alarmGain   *effects.Volume
	trackDone   atomic.Bool
	alarmActive atomic.Bool

	level int
}

// NewSpeaker opens the audio device and loads the alarm at alarmPath.
func NewSpeaker(alarmPath string) (*Speaker, error) {
	if err := speaker.Init(outputRate, outputRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	stream, format, err := openStream(alarmPath)
	if err != nil {
		speaker.Close()
		return nil, fmt.Errorf("load alarm: %w", err)
	}
	defer stream.Close()

	alarm := beep.NewBuffer(beep.Format{SampleRate: outputRate, NumChannels: 2, Precision: 2})
	alarm.Append(resample(format, stream))

	return &Speaker{alarm: alarm, level: audio.DefaultVolume}, nil
}

// PlayTrack replaces the current background track with the file at path.
func (out *Speaker) PlayTrack(path string) error {
	stream, format, err := openStream(path)
	if err != nil {
		return err
	}
	out.StopTrack()

	done := &out.trackDone
	done.Store(false)
	gain := &effects.Volume{Streamer: resample(format, stream), Base: 2}
	ctrl := &beep.Ctrl{Streamer: beep.Seq(gain, beep.Callback(func() { done.Store(true) }))}

	speaker.Lock()
	out.decoder = stream
	out.musicGain = gain
	out.music = ctrl
	applyGain(gain, out.level)
	speaker.Unlock()

	speaker.Play(ctrl)
	return nil
}

// StopTrack detaches the background track from the mixer.
func (out *Speaker) StopTrack() {
	speaker.Lock()
	ctrl, decoder := out.music, out.decoder
	if ctrl != nil {
		ctrl.Streamer = nil
	}
	out.music, out.decoder, out.musicGain = nil, nil, nil
	speaker.Unlock()

	if decoder != nil {
		_ = decoder.Close()
	}
}

func (out *Speaker) TrackDone() bool {
	return out.trackDone.Load()
}

// PlayAlarm plays the buffered alarm once on top of anything else, at the
// current level.
func (out *Speaker) PlayAlarm() error {
	active := &out.alarmActive
	active.Store(true)
	gain := &effects.Volume{Streamer: out.alarm.Streamer(0, out.alarm.Len()), Base: 2}

	speaker.Lock()
	out.alarmGain = gain
	applyGain(gain, out.level)
	speaker.Unlock()

	speaker.Play(beep.Seq(gain, beep.Callback(func() { active.Store(false) })))
	return nil
}

func (out *Speaker) AlarmPlaying() bool {
	return out.alarmActive.Load()
}

// SetVolume maps level in [0, audio.MaxVolume] onto both gain stages.
func (out *Speaker) SetVolume(level int) {
	speaker.Lock()
	out.level = level
	applyGain(out.musicGain, level)
	applyGain(out.alarmGain, level)
	speaker.Unlock()
}

func (out *Speaker) Close() error {
	out.StopTrack()
	speaker.Clear()
	speaker.Close()
	return nil
}

// applyGain must run with the speaker locked when gain is already playing.
func applyGain(gain *effects.Volume, level int) {
	if gain == nil {
		return
	}
	silent, volume := Gain(level)
	gain.Silent = silent
	gain.Volume = volume
}

// Gain converts a level in [0, audio.MaxVolume] to a base-2 volume exponent.
// Level 0 and below is silent.
func Gain(level int) (silent bool, volume float64) {
	if level <= 0 {
		return true, 0
	}
	if level > audio.MaxVolume {
		level = audio.MaxVolume
	}
	return false, math.Log2(float64(level) / audio.MaxVolume)
}

func openStream(path string) (beep.StreamSeekCloser, beep.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(file)
	case ".wav":
		stream, format, err = wav.Decode(file)
	case ".ogg":
		stream, format, err = vorbis.Decode(file)
	default:
		err = fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		_ = file.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}

func resample(format beep.Format, stream beep.Streamer) beep.Streamer {
	if format.SampleRate == outputRate {
		return stream
	}
	return beep.Resample(resampleQuality, format.SampleRate, outputRate, stream)
}
