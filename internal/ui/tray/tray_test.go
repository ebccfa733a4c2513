package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"studywithme/internal/core/timekeeper"
)

type fakeDesktop struct {
	menus []*fyne.Menu
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) { app.menus = append(app.menus, menu) }
func (app *fakeDesktop) SetSystemTrayIcon(fyne.Resource)   {}
func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window)   {}

func (app *fakeDesktop) last() *fyne.Menu {
	return app.menus[len(app.menus)-1]
}

func findItem(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func TestManagerMenu(t *testing.T) {
	app := &fakeDesktop{}
	var muted, up, down, opened, quit int
	manager := New(app, Callbacks{
		OnToggleMute: func() { muted++ },
		OnVolumeUp:   func() { up++ },
		OnVolumeDown: func() { down++ },
		OnOpenFolder: func() { opened++ },
		OnQuit:       func() { quit++ },
	})

	menu := app.last()
	if menu.Items[0].Label != "Status: waiting for start time" || !menu.Items[0].Disabled {
		t.Fatalf("status item=%q disabled=%v", menu.Items[0].Label, menu.Items[0].Disabled)
	}
	for _, label := range []string{"Mute", "Volume up", "Volume down", "Open settings folder", "Quit"} {
		item := findItem(menu, label)
		if item == nil {
			t.Fatalf("menu item %q missing", label)
		}
		item.Action()
	}
	if muted != 1 || up != 1 || down != 1 || opened != 1 || quit != 1 {
		t.Fatalf("callbacks mute=%d up=%d down=%d open=%d quit=%d", muted, up, down, opened, quit)
	}

	manager.SetMuted(true)
	if findItem(app.last(), "Unmute") == nil {
		t.Fatalf("mute item not relabelled")
	}

	published := len(app.menus)
	manager.SetStatus("break, 04:00 left")
	manager.SetStatus("break, 04:00 left")
	if len(app.menus) != published+1 {
		t.Fatalf("menus published=%d, want %d", len(app.menus), published+1)
	}
	if app.last().Items[0].Label != "Status: break, 04:00 left" {
		t.Fatalf("status=%q", app.last().Items[0].Label)
	}
}

func TestManagerWithoutCallbacks(t *testing.T) {
	app := &fakeDesktop{}
	New(app, Callbacks{})
	findItem(app.last(), "Quit").Action()
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		event timekeeper.Event
		want  string
		ok    bool
	}{
		{timekeeper.Event{Type: timekeeper.EventProgress, Kind: timekeeper.KindWork, Session: 1, Sessions: 4, Remaining: 90 * time.Second}, "studying 2/4, 01:30 left", true},
		{timekeeper.Event{Type: timekeeper.EventProgress, Kind: timekeeper.KindBreak, Session: 1, Sessions: 4, Remaining: 4 * time.Minute}, "break, 04:00 left", true},
		{timekeeper.Event{Type: timekeeper.EventProgress, Kind: timekeeper.KindBreak, Session: -1, Remaining: 61 * time.Second}, "starting in 01:01", true},
		{timekeeper.Event{Type: timekeeper.EventRunCompleted}, "all sessions done", true},
		{timekeeper.Event{Type: timekeeper.EventAlarm}, "", false},
	}
	for _, tc := range cases {
		got, ok := StatusFor(tc.event)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("StatusFor(%v)=(%q, %v), want (%q, %v)", tc.event.Type, got, ok, tc.want, tc.ok)
		}
	}
}
