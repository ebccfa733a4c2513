package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"studywithme/internal/core/timekeeper"
)

// AppName is the title shown on every notification.
const AppName = "Study With Me"

type Notifier interface {
	Notify(title, body string) error
}

type beeepNotifier struct{}

func (beeepNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

func New() Notifier {
	beeep.AppName = AppName
	return beeepNotifier{}
}

// Message returns the notification text for a phase boundary event. ok is
// false for events that should stay silent.
func Message(event timekeeper.Event) (title, body string, ok bool) {
	switch event.Type {
	case timekeeper.EventPhaseStarted:
		switch event.Kind {
		case timekeeper.KindWork:
			body = fmt.Sprintf("Session %d of %d: study until %s",
				event.Session+1, event.Sessions, event.Interval.End.Format("15:04"))
		case timekeeper.KindBreak:
			body = fmt.Sprintf("Break until %s", event.Interval.End.Format("15:04"))
		}
		return event.Kind.Label(), body, true
	case timekeeper.EventRunCompleted:
		return AppName, fmt.Sprintf("All %d sessions done. Press Enter for another round.", event.Sessions), true
	case timekeeper.EventRunAborted:
		return AppName, "Study run stopped", true
	}
	return "", "", false
}
