//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"runtime"

	"golang.org/x/sys/windows"
)

const (
	esContinuous     = 0x80000000
	esSystemRequired = 0x00000001
)

func (service *platformService) DocumentsDir() (string, error) {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_Documents, 0)
	if err == nil && dir != "" {
		return dir, nil
	}
	return homeDocuments()
}

func (service *platformService) OpenPath(path string) error {
	if err := exec.Command("explorer", path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

type executionStateInhibitor struct {
	release chan struct{}
	done    chan struct{}
}

// InhibitSleep pins a goroutine to an OS thread and keeps the system
// execution state raised on it until Release.
func (service *platformService) InhibitSleep(reason string) (Inhibitor, error) {
	setState := windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")
	if err := setState.Find(); err != nil {
		return nil, fmt.Errorf("inhibit sleep: %w", err)
	}

	inhibitor := &executionStateInhibitor{
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
	started := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(inhibitor.done)

		result, _, callErr := setState.Call(uintptr(esContinuous | esSystemRequired))
		if result == 0 {
			started <- fmt.Errorf("inhibit sleep: %w", callErr)
			return
		}
		started <- nil
		<-inhibitor.release
		setState.Call(uintptr(esContinuous))
	}()

	if err := <-started; err != nil {
		return nil, err
	}
	return inhibitor, nil
}

func (inhibitor *executionStateInhibitor) Release() error {
	select {
	case <-inhibitor.release:
	default:
		close(inhibitor.release)
	}
	<-inhibitor.done
	return nil
}
