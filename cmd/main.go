package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"studywithme/internal/audio"
	"studywithme/internal/audio/output"
	"studywithme/internal/core/model"
	"studywithme/internal/core/timekeeper"
	"studywithme/internal/notify"
	"studywithme/internal/platform"
	"studywithme/internal/storage"
	"studywithme/internal/ui"
	"studywithme/internal/ui/terminal"
	"studywithme/internal/ui/tray"
	"studywithme/internal/ui/window"
	"studywithme/resources"
)

const (
	appName      = "StudyWithMe"
	appID        = "com.studywithme.app"
	shutdownWait = 3 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return 1
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	resourceDir, err := platform.ResourceDir(service)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	if err := platform.EnsureDir(resourceDir); err != nil {
		log.Printf("%v", err)
		return 1
	}

	config, err := storage.LoadSettings(resourceDir)
	if err != nil {
		log.Printf("load settings: %v", err)
		return 1
	}
	if err := config.Validate(); err != nil {
		log.Printf("settings: %v", err)
		return 1
	}
	for _, dir := range []string{config.AssetDirectory, config.MusicDirectory} {
		if err := platform.EnsureDir(dir); err != nil {
			log.Printf("%v", err)
			return 1
		}
	}

	tracks, err := audio.ScanLibrary(config.MusicDirectory)
	if err != nil {
		log.Printf("music library: %v", err)
		return 1
	}
	backend, err := output.NewSpeaker(config.AlarmSound)
	if err != nil {
		log.Printf("audio: %v", err)
		return 1
	}
	coordinator := audio.NewCoordinator(backend, tracks, audio.Options{Accessible: audio.FileReadable})
	defer func() {
		if err := coordinator.Close(); err != nil {
			log.Printf("close audio: %v", err)
		}
	}()

	queue := timekeeper.NewCommandQueue(32)
	watcher := &observer{config: config}
	if config.Notifications {
		watcher.notifier = notify.New()
	}

	var display ui.Display
	switch config.Display {
	case model.DisplayTerminal:
		display = terminal.New(queue)
	default:
		display = newWindowDisplay(config, queue, watcher, guard, func() {
			if err := service.OpenPath(resourceDir); err != nil {
				log.Printf("open folder: %v", err)
			}
		})
	}

	journal, err := storage.OpenJournal(filepath.Join(resourceDir, storage.JournalFileName))
	if err != nil {
		log.Printf("journal disabled: %v", err)
	} else {
		defer func() {
			_ = journal.Close()
		}()
		watcher.journal = journal
		if done, err := journal.CompletedOn(time.Now()); err == nil && done > 0 {
			log.Printf("%d work sessions completed today", done)
		}
	}

	if config.LidControl {
		inhibitor, err := service.InhibitSleep("Study With Me timer is running")
		if err != nil {
			log.Printf("keep awake: %v", err)
		} else {
			defer func() {
				if err := inhibitor.Release(); err != nil {
					log.Printf("release keep awake: %v", err)
				}
			}()
		}
	}

	keeper := timekeeper.New(coordinator, display, queue, timekeeper.DefaultConfig())
	var observers sync.WaitGroup
	for _, events := range []<-chan timekeeper.Event{
		keeper.SubscribeLossless(16, boundaryEvents...),
		keeper.Subscribe(8, timekeeper.EventProgress),
	} {
		observers.Add(1)
		go func() {
			defer observers.Done()
			watcher.run(events)
		}()
	}

	engineDone := make(chan error, 1)
	go func() {
		engineDone <- keeper.Loop(display, config, ui.CompletionMessage)
		display.Quit()
	}()

	if err := display.Run(); err != nil {
		log.Printf("display: %v", err)
	}

	var engineErr error
	select {
	case engineErr = <-engineDone:
	default:
		display.RequestQuit()
		select {
		case engineErr = <-engineDone:
		case <-time.After(shutdownWait):
			log.Printf("timer loop still running after %s", shutdownWait)
			return 1
		}
	}

	keeper.Close()
	observers.Wait()

	if engineErr != nil && !errors.Is(engineErr, timekeeper.ErrQuit) {
		log.Printf("timer: %v", engineErr)
		return 1
	}
	return 0
}

// newWindowDisplay builds the fyne window and, where the driver supports it,
// a tray menu mirroring the timer status. A second launch raises the window.
func newWindowDisplay(config model.Config, queue *timekeeper.CommandQueue, watcher *observer, guard *platform.InstanceGuard, openFolder func()) ui.Display {
	fyneApp := app.NewWithID(appID)
	activeIcon := resources.MustLogo(resources.LogoActive)
	mutedIcon := resources.MustLogo(resources.LogoMuted)
	fyneApp.SetIcon(activeIcon)

	study := window.New(fyneApp, window.Config{Width: config.Width, Height: config.Height}, queue)
	go func() {
		for range guard.Raised() {
			study.Raise()
		}
	}()

	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return study
	}

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnToggleMute: func() { queue.Push(timekeeper.CmdToggleMute) },
		OnVolumeUp:   func() { queue.Push(timekeeper.CmdVolumeUp) },
		OnVolumeDown: func() { queue.Push(timekeeper.CmdVolumeDown) },
		OnOpenFolder: openFolder,
		OnQuit:       study.RequestQuit,
	})
	desktopApp.SetSystemTrayIcon(activeIcon)

	watcher.onStatus = func(status string) {
		fyne.Do(func() {
			trayManager.SetStatus(status)
		})
	}
	watcher.onMuted = func(muted bool) {
		fyne.Do(func() {
			trayManager.SetMuted(muted)
			if muted {
				desktopApp.SetSystemTrayIcon(mutedIcon)
				return
			}
			desktopApp.SetSystemTrayIcon(activeIcon)
		})
	}
	return study
}
