package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Study With Me"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleMute func()
	OnVolumeUp   func()
	OnVolumeDown func()
	OnOpenFolder func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	muteItem    *fyne.MenuItem
	callbacks   Callbacks
	muted       bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "waiting for start time",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.muteItem = fyne.NewMenuItem("Mute", func() {
		invoke(manager.callbacks.OnToggleMute)
	})

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetMuted flips the mute item label.
func (manager *Manager) SetMuted(muted bool) {
	if muted == manager.muted {
		return
	}
	manager.muted = muted
	if muted {
		manager.muteItem.Label = "Unmute"
	} else {
		manager.muteItem.Label = "Mute"
	}
	manager.refreshMenu()
}

// Status returns the current status label.
func (manager *Manager) Status() string {
	return manager.statusLabel
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.muteItem,
		fyne.NewMenuItem("Volume up", func() {
			invoke(manager.callbacks.OnVolumeUp)
		}),
		fyne.NewMenuItem("Volume down", func() {
			invoke(manager.callbacks.OnVolumeDown)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open settings folder", func() {
			invoke(manager.callbacks.OnOpenFolder)
		}),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	))
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
