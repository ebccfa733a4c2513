package main

import (
	"log"
	"time"

	"studywithme/internal/core/model"
	"studywithme/internal/core/timekeeper"
	"studywithme/internal/notify"
	"studywithme/internal/storage"
	"studywithme/internal/ui/tray"
)

type runJournal interface {
	BeginRun(startedAt time.Time, config model.Config) (string, error)
	RecordSession(runID string, seq int, startedAt, finishedAt time.Time) error
	FinishRun(runID string, finishedAt time.Time, status string) error
}

// boundaryEvents are the events the journal and notifications must not miss.
var boundaryEvents = []timekeeper.EventType{
	timekeeper.EventRunStarted,
	timekeeper.EventPhaseStarted,
	timekeeper.EventPhaseCompleted,
	timekeeper.EventRunCompleted,
	timekeeper.EventRunAborted,
}

// observer fans timer events out to desktop notifications, the run journal
// and the tray. Every collaborator is optional. Boundary and progress events
// may be handled on separate goroutines: runID and journal are only touched
// for boundary events, muted only for progress.
type observer struct {
	config   model.Config
	notifier notify.Notifier
	journal  runJournal
	onStatus func(status string)
	onMuted  func(muted bool)

	runID string
	muted bool
}

func (watcher *observer) run(events <-chan timekeeper.Event) {
	for event := range events {
		watcher.handle(event)
	}
}

func (watcher *observer) handle(event timekeeper.Event) {
	watcher.notify(event)
	watcher.record(event)

	if status, ok := tray.StatusFor(event); ok && watcher.onStatus != nil {
		watcher.onStatus(status)
	}
	if event.Type == timekeeper.EventProgress && event.Muted != watcher.muted {
		watcher.muted = event.Muted
		if watcher.onMuted != nil {
			watcher.onMuted(event.Muted)
		}
	}
}

func (watcher *observer) notify(event timekeeper.Event) {
	if !watcher.config.Notifications || watcher.notifier == nil {
		return
	}
	title, body, ok := notify.Message(event)
	if !ok {
		return
	}
	if err := watcher.notifier.Notify(title, body); err != nil {
		log.Printf("notify: %v", err)
	}
}

func (watcher *observer) record(event timekeeper.Event) {
	if watcher.journal == nil {
		return
	}
	switch event.Type {
	case timekeeper.EventRunStarted:
		runID, err := watcher.journal.BeginRun(event.At, watcher.config)
		if err != nil {
			watcher.disableJournal(err)
			return
		}
		watcher.runID = runID
	case timekeeper.EventPhaseCompleted:
		if event.Kind != timekeeper.KindWork || watcher.runID == "" {
			return
		}
		if err := watcher.journal.RecordSession(watcher.runID, event.Session, event.Interval.Start, event.Interval.End); err != nil {
			watcher.disableJournal(err)
		}
	case timekeeper.EventRunCompleted, timekeeper.EventRunAborted:
		if watcher.runID == "" {
			return
		}
		status := storage.RunCompleted
		if event.Type == timekeeper.EventRunAborted {
			status = storage.RunAborted
		}
		if err := watcher.journal.FinishRun(watcher.runID, event.At, status); err != nil {
			watcher.disableJournal(err)
		}
		watcher.runID = ""
	}
}

// disableJournal stops recording after the first failed write.
func (watcher *observer) disableJournal(err error) {
	log.Printf("journal disabled: %v", err)
	watcher.journal = nil
	watcher.runID = ""
}
