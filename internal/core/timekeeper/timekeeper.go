package timekeeper

import (
	"errors"
	"sync"
	"time"

	"studywithme/internal/core/model"
)

// ErrQuit indicates the user asked to leave the application.
var ErrQuit = errors.New("quit requested")

// Clock abstracts wall time and the tick sleep.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Audio is the playback state the timer loop coordinates.
type Audio interface {
	Play()
	Stop()
	Alarm()
	AlarmPlaying() bool
	Service()
	ToggleMute()
	AdjustVolume(delta int)
	VolumePercent() int
	Muted() bool
	CurrentTrackName() string
}

// Panel holds the side panel contents of one frame.
type Panel struct {
	Now           time.Time
	Current       int
	Schedule      Schedule
	VolumePercent int
	Muted         bool
	Track         string
	TrackScroll   int
}

// Surface receives exactly one frame per tick, always in the order
// BeginFrame, DrawPie, DrawCountdown, DrawPanel, EndFrame.
type Surface interface {
	BeginFrame()
	DrawPie(fraction float64, kind Kind)
	DrawCountdown(secondsLeft int, kind Kind)
	DrawPanel(panel Panel)
	EndFrame()
}

// Input yields pending commands without blocking.
type Input interface {
	Poll() (Command, bool)
}

// Config contains runtime options for Keeper.
type Config struct {
	TickInterval time.Duration
	ScrollStep   int
	VolumeStep   int
}

// DefaultConfig returns the tick cadence and key steps of the desktop app.
func DefaultConfig() Config {
	return Config{
		TickInterval: 500 * time.Millisecond,
		ScrollStep:   10,
		VolumeStep:   8,
	}
}

// Keeper drives work and break intervals. All methods except the Subscribe
// pair and Close must be called from a single goroutine, which becomes the owner of the audio
// state and the surface frames.
type Keeper struct {
	mu          sync.Mutex
	subscribers []subscriber
	options     Config
	clock       Clock
	audio       Audio
	surface     Surface
	input       Input

	trackScroll int
}

type subscriber struct {
	ch       chan Event
	types    map[EventType]bool
	lossless bool
}

func (sub subscriber) wants(eventType EventType) bool {
	return len(sub.types) == 0 || sub.types[eventType]
}

// New creates a Keeper with the provided collaborators.
func New(audio Audio, surface Surface, input Input, options Config) *Keeper {
	defaults := DefaultConfig()
	if options.TickInterval <= 0 {
		options.TickInterval = defaults.TickInterval
	}
	if options.ScrollStep <= 0 {
		options.ScrollStep = defaults.ScrollStep
	}
	if options.VolumeStep <= 0 {
		options.VolumeStep = defaults.VolumeStep
	}
	return &Keeper{
		options: options,
		clock:   realClock{},
		audio:   audio,
		surface: surface,
		input:   input,
	}
}

// Subscribe registers a new observer channel receiving the listed event
// types, or every type when none are given. Events are dropped for
// observers that fall behind.
func (keeper *Keeper) Subscribe(buffer int, types ...EventType) <-chan Event {
	return keeper.subscribe(buffer, false, types)
}

// SubscribeLossless is Subscribe for observers that must see every event.
// The engine waits for room in the channel, so the receiver has to keep
// reading until Close.
func (keeper *Keeper) SubscribeLossless(buffer int, types ...EventType) <-chan Event {
	return keeper.subscribe(buffer, true, types)
}

func (keeper *Keeper) subscribe(buffer int, lossless bool, types []EventType) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	sub := subscriber{ch: make(chan Event, buffer), lossless: lossless}
	if len(types) > 0 {
		sub.types = make(map[EventType]bool, len(types))
		for _, eventType := range types {
			sub.types[eventType] = true
		}
	}
	keeper.mu.Lock()
	keeper.subscribers = append(keeper.subscribers, sub)
	keeper.mu.Unlock()
	return sub.ch
}

// Close closes all observer channels.
func (keeper *Keeper) Close() {
	keeper.mu.Lock()
	subscribers := keeper.subscribers
	keeper.subscribers = nil
	keeper.mu.Unlock()

	for _, sub := range subscribers {
		close(sub.ch)
	}
}

// RunTimer polls until end is reached, drawing a frame every tick.
// duration is the full length of the interval and only scales the pie.
// current is the highlighted schedule row, -1 for none.
func (keeper *Keeper) RunTimer(end time.Time, kind Kind, duration time.Duration, current int, schedule Schedule) error {
	musicStarted := false
	for {
		musicStarted = keeper.transitionAudio(kind, musicStarted)

		if _, err := keeper.drainInput(); err != nil {
			return err
		}

		tick := ComputeTick(keeper.clock.Now(), end, duration)
		keeper.render(tick, kind, current, schedule)
		keeper.emit(Event{
			Type:      EventProgress,
			Kind:      kind,
			Session:   current,
			Sessions:  len(schedule),
			Remaining: tick.Remaining,
			Progress:  1 - tick.Fraction,
			Muted:     keeper.audio.Muted(),
			At:        tick.Now,
		})

		if tick.Remaining == 0 {
			return nil
		}
		keeper.clock.Sleep(keeper.options.TickInterval)
	}
}

// RunPomodoro runs every work session of config starting at base, with a
// break and an alarm between consecutive sessions.
func (keeper *Keeper) RunPomodoro(config model.Config, base time.Time) error {
	schedule := BuildSchedule(base, config.Work(), config.Break(), config.Sessions)
	keeper.emit(Event{
		Type:     EventRunStarted,
		Schedule: schedule,
		Sessions: len(schedule),
		At:       keeper.clock.Now(),
	})

	for index, interval := range schedule {
		keeper.emitPhase(EventPhaseStarted, KindWork, index, schedule, interval)
		if err := keeper.RunTimer(interval.End, KindWork, config.Work(), index, schedule); err != nil {
			return keeper.abort(err, KindWork, index, schedule)
		}
		keeper.emitPhase(EventPhaseCompleted, KindWork, index, schedule, interval)

		keeper.audio.Stop()
		last := index == len(schedule)-1
		if !last || config.FinalAlarm {
			keeper.alarm(KindWork, index, len(schedule))
		}
		if last {
			break
		}

		pause := Interval{Start: interval.End, End: interval.End.Add(config.Break())}
		keeper.emitPhase(EventPhaseStarted, KindBreak, index, schedule, pause)
		if err := keeper.RunTimer(pause.End, KindBreak, config.Break(), index, schedule); err != nil {
			return keeper.abort(err, KindBreak, index, schedule)
		}
		keeper.emitPhase(EventPhaseCompleted, KindBreak, index, schedule, pause)
		keeper.alarm(KindBreak, index, len(schedule))
	}

	keeper.emit(Event{
		Type:     EventRunCompleted,
		Schedule: schedule,
		Sessions: len(schedule),
		At:       keeper.clock.Now(),
	})
	return nil
}

// Countdown waits for a start time in the future, showing the upcoming
// schedule, and sounds the alarm when it is reached. A base in the past
// returns immediately.
func (keeper *Keeper) Countdown(config model.Config, base time.Time) error {
	wait := base.Sub(keeper.clock.Now())
	if wait <= 0 {
		return nil
	}
	schedule := BuildSchedule(base, config.Work(), config.Break(), config.Sessions)
	if err := keeper.RunTimer(base, KindBreak, wait, -1, schedule); err != nil {
		return err
	}
	keeper.alarm(KindBreak, -1, len(schedule))
	return nil
}

// WaitForConfirm blocks until the user confirms (nil) or quits (ErrQuit).
func (keeper *Keeper) WaitForConfirm() error {
	for {
		confirmed, err := keeper.drainInput()
		if err != nil {
			return err
		}
		if confirmed {
			return nil
		}
		keeper.clock.Sleep(keeper.options.TickInterval)
	}
}

func (keeper *Keeper) transitionAudio(kind Kind, started bool) bool {
	if kind != KindWork {
		if started {
			keeper.audio.Stop()
		}
		return false
	}

	keeper.trackScroll += keeper.options.ScrollStep
	if keeper.audio.AlarmPlaying() {
		keeper.audio.Stop()
		return false
	}
	if !started {
		keeper.audio.Play()
		return true
	}
	keeper.audio.Service()
	return true
}

// drainInput applies every pending command. It stops at the first quit.
func (keeper *Keeper) drainInput() (confirmed bool, err error) {
	for {
		command, ok := keeper.input.Poll()
		if !ok {
			return confirmed, nil
		}
		switch command {
		case CmdQuit:
			return confirmed, ErrQuit
		case CmdConfirm:
			confirmed = true
		case CmdToggleMute:
			keeper.audio.ToggleMute()
		case CmdVolumeDown:
			keeper.audio.AdjustVolume(-keeper.options.VolumeStep)
		case CmdVolumeUp:
			keeper.audio.AdjustVolume(keeper.options.VolumeStep)
		}
	}
}

func (keeper *Keeper) render(tick Tick, kind Kind, current int, schedule Schedule) {
	keeper.surface.BeginFrame()
	keeper.surface.DrawPie(tick.Fraction, kind)
	keeper.surface.DrawCountdown(tick.SecondsLeft, kind)
	keeper.surface.DrawPanel(Panel{
		Now:           tick.Now,
		Current:       current,
		Schedule:      schedule,
		VolumePercent: keeper.audio.VolumePercent(),
		Muted:         keeper.audio.Muted(),
		Track:         keeper.audio.CurrentTrackName(),
		TrackScroll:   keeper.trackScroll,
	})
	keeper.surface.EndFrame()
}

func (keeper *Keeper) alarm(kind Kind, session, sessions int) {
	keeper.audio.Alarm()
	keeper.emit(Event{
		Type:     EventAlarm,
		Kind:     kind,
		Session:  session,
		Sessions: sessions,
		At:       keeper.clock.Now(),
	})
}

func (keeper *Keeper) abort(err error, kind Kind, session int, schedule Schedule) error {
	keeper.emit(Event{
		Type:     EventRunAborted,
		Kind:     kind,
		Session:  session,
		Sessions: len(schedule),
		Schedule: schedule,
		At:       keeper.clock.Now(),
	})
	return err
}

func (keeper *Keeper) emitPhase(eventType EventType, kind Kind, session int, schedule Schedule, interval Interval) {
	keeper.emit(Event{
		Type:     eventType,
		Kind:     kind,
		Session:  session,
		Sessions: len(schedule),
		Interval: interval,
		At:       keeper.clock.Now(),
	})
}

func (keeper *Keeper) emit(event Event) {
	keeper.mu.Lock()
	subscribers := append([]subscriber(nil), keeper.subscribers...)
	keeper.mu.Unlock()

	for _, sub := range subscribers {
		if !sub.wants(event.Type) {
			continue
		}
		if sub.lossless {
			sub.ch <- event
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}
