//go:build darwin

package platform

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
)

func (service *platformService) DocumentsDir() (string, error) {
	return homeDocuments()
}

func (service *platformService) OpenPath(path string) error {
	if err := exec.Command("open", path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

type pmsetInhibitor struct {
	active bool
}

// InhibitSleep disables system sleep, including on lid close, through pmset.
// It does nothing when sleep is already disabled so that the user's own
// setting is never reverted on release.
func (service *platformService) InhibitSleep(reason string) (Inhibitor, error) {
	output, err := exec.Command("pmset", "-g").Output()
	if err != nil {
		return nil, fmt.Errorf("query power settings: %w", err)
	}
	if sleepDisabled(string(output)) {
		return noopInhibitor{}, nil
	}

	log.Printf("disabling sleep: %s", reason)
	if err := exec.Command("sudo", "pmset", "-a", "disablesleep", "1").Run(); err != nil {
		return nil, fmt.Errorf("disable sleep: %w", err)
	}
	return &pmsetInhibitor{active: true}, nil
}

func (inhibitor *pmsetInhibitor) Release() error {
	if !inhibitor.active {
		return nil
	}
	inhibitor.active = false
	if err := exec.Command("sudo", "pmset", "-a", "disablesleep", "0").Run(); err != nil {
		return fmt.Errorf("enable sleep: %w", err)
	}
	return nil
}

func sleepDisabled(pmsetOutput string) bool {
	for _, line := range strings.Split(pmsetOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "SleepDisabled" {
			return fields[1] == "1"
		}
	}
	return false
}
