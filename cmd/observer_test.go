package main

import (
	"errors"
	"testing"
	"time"

	"studywithme/internal/core/model"
	"studywithme/internal/core/timekeeper"
	"studywithme/internal/storage"
)

type fakeJournal struct {
	begun     int
	sessions  []int
	finished  []string
	beginErr  error
	recordErr error
}

func (journal *fakeJournal) BeginRun(time.Time, model.Config) (string, error) {
	if journal.beginErr != nil {
		return "", journal.beginErr
	}
	journal.begun++
	return "run-1", nil
}

func (journal *fakeJournal) RecordSession(runID string, seq int, _, _ time.Time) error {
	journal.sessions = append(journal.sessions, seq)
	return journal.recordErr
}

func (journal *fakeJournal) FinishRun(runID string, _ time.Time, status string) error {
	journal.finished = append(journal.finished, runID+":"+status)
	return nil
}

type fakeNotifier struct {
	titles []string
}

func (notifier *fakeNotifier) Notify(title, body string) error {
	notifier.titles = append(notifier.titles, title)
	return nil
}

func runEvents(watcher *observer, events ...timekeeper.Event) {
	ch := make(chan timekeeper.Event, len(events))
	for _, event := range events {
		ch <- event
	}
	close(ch)
	watcher.run(ch)
}

func TestObserverJournalsCompletedRun(t *testing.T) {
	journal := &fakeJournal{}
	watcher := &observer{journal: journal}

	runEvents(watcher,
		timekeeper.Event{Type: timekeeper.EventRunStarted, Sessions: 2},
		timekeeper.Event{Type: timekeeper.EventPhaseCompleted, Kind: timekeeper.KindWork, Session: 0},
		timekeeper.Event{Type: timekeeper.EventPhaseCompleted, Kind: timekeeper.KindBreak, Session: 0},
		timekeeper.Event{Type: timekeeper.EventPhaseCompleted, Kind: timekeeper.KindWork, Session: 1},
		timekeeper.Event{Type: timekeeper.EventRunCompleted, Sessions: 2},
	)

	if journal.begun != 1 {
		t.Fatalf("begun=%d, want 1", journal.begun)
	}
	if len(journal.sessions) != 2 || journal.sessions[1] != 1 {
		t.Fatalf("sessions=%v, want [0 1]", journal.sessions)
	}
	if len(journal.finished) != 1 || journal.finished[0] != "run-1:"+storage.RunCompleted {
		t.Fatalf("finished=%v", journal.finished)
	}
	if watcher.runID != "" {
		t.Fatalf("runID=%q after finish", watcher.runID)
	}
}

func TestObserverMarksAbortedRun(t *testing.T) {
	journal := &fakeJournal{}
	watcher := &observer{journal: journal}

	runEvents(watcher,
		timekeeper.Event{Type: timekeeper.EventRunStarted},
		timekeeper.Event{Type: timekeeper.EventRunAborted},
	)

	if len(journal.finished) != 1 || journal.finished[0] != "run-1:"+storage.RunAborted {
		t.Fatalf("finished=%v", journal.finished)
	}
}

func TestObserverSkipsSessionsWithoutRun(t *testing.T) {
	journal := &fakeJournal{beginErr: errors.New("disk full")}
	watcher := &observer{journal: journal}

	runEvents(watcher,
		timekeeper.Event{Type: timekeeper.EventRunStarted},
		timekeeper.Event{Type: timekeeper.EventPhaseCompleted, Kind: timekeeper.KindWork},
		timekeeper.Event{Type: timekeeper.EventRunCompleted},
	)

	if len(journal.sessions) != 0 || len(journal.finished) != 0 {
		t.Fatalf("sessions=%v finished=%v, want nothing recorded", journal.sessions, journal.finished)
	}
}

func TestObserverDisablesJournalAfterFailure(t *testing.T) {
	journal := &fakeJournal{recordErr: errors.New("database is locked")}
	watcher := &observer{journal: journal}

	runEvents(watcher,
		timekeeper.Event{Type: timekeeper.EventRunStarted},
		timekeeper.Event{Type: timekeeper.EventPhaseCompleted, Kind: timekeeper.KindWork, Session: 0},
		timekeeper.Event{Type: timekeeper.EventPhaseCompleted, Kind: timekeeper.KindWork, Session: 1},
		timekeeper.Event{Type: timekeeper.EventRunCompleted},
		timekeeper.Event{Type: timekeeper.EventRunStarted},
	)

	if len(journal.sessions) != 1 || len(journal.finished) != 0 || journal.begun != 1 {
		t.Fatalf("begun=%d sessions=%v finished=%v, want writes to stop after the first failure",
			journal.begun, journal.sessions, journal.finished)
	}
	if watcher.journal != nil {
		t.Fatalf("journal still attached")
	}
}

func TestObserverNotifiesOnlyWhenEnabled(t *testing.T) {
	notifier := &fakeNotifier{}
	started := timekeeper.Event{Type: timekeeper.EventPhaseStarted, Kind: timekeeper.KindBreak}

	runEvents(&observer{notifier: notifier}, started)
	if len(notifier.titles) != 0 {
		t.Fatalf("notified while disabled: %v", notifier.titles)
	}

	runEvents(&observer{notifier: notifier, config: model.Config{Notifications: true}},
		started,
		timekeeper.Event{Type: timekeeper.EventProgress},
	)
	if len(notifier.titles) != 1 || notifier.titles[0] != "BREAK TIME" {
		t.Fatalf("titles=%v, want [BREAK TIME]", notifier.titles)
	}
}

func TestObserverForwardsStatusAndMute(t *testing.T) {
	var statuses []string
	var mutes []bool
	watcher := &observer{
		onStatus: func(status string) { statuses = append(statuses, status) },
		onMuted:  func(muted bool) { mutes = append(mutes, muted) },
	}

	progress := timekeeper.Event{
		Type:      timekeeper.EventProgress,
		Kind:      timekeeper.KindWork,
		Sessions:  3,
		Remaining: 90 * time.Second,
	}
	muted := progress
	muted.Muted = true

	runEvents(watcher, progress, muted, muted, progress)

	if len(statuses) != 4 || statuses[0] != "studying 1/3, 01:30 left" {
		t.Fatalf("statuses=%v", statuses)
	}
	if len(mutes) != 2 || !mutes[0] || mutes[1] {
		t.Fatalf("mutes=%v, want [true false]", mutes)
	}
}
