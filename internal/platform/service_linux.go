//go:build linux

package platform

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DocumentsDir resolves the XDG documents folder: the environment first,
// then user-dirs.dirs, then ~/Documents.
func (service *platformService) DocumentsDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if !filepath.IsAbs(configHome) {
			configHome = filepath.Join(home, ".config")
		}
		if dir, ok := readUserDirs(filepath.Join(configHome, "user-dirs.dirs"), home); ok {
			return dir, nil
		}
	}
	return homeDocuments()
}

// readUserDirs extracts XDG_DOCUMENTS_DIR from a user-dirs.dirs file, whose
// values are "$HOME/relative" or absolute paths.
func readUserDirs(path, home string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		value, found := strings.CutPrefix(line, "XDG_DOCUMENTS_DIR=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch {
		case value == "$HOME", value == "$HOME/":
			// xdg-user-dirs uses $HOME to mean the folder is disabled.
			return "", false
		case strings.HasPrefix(value, "$HOME/"):
			return filepath.Join(home, strings.TrimPrefix(value, "$HOME/")), true
		case filepath.IsAbs(value):
			return filepath.Clean(value), true
		}
		return "", false
	}
	return "", false
}

func (service *platformService) OpenPath(path string) error {
	if err := exec.Command("xdg-open", path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

type systemdInhibitor struct {
	cmd *exec.Cmd
}

// InhibitSleep holds a systemd-inhibit lock on sleep and the lid switch for
// as long as the helper process lives.
func (service *platformService) InhibitSleep(reason string) (Inhibitor, error) {
	path, err := exec.LookPath("systemd-inhibit")
	if err != nil {
		return nil, fmt.Errorf("inhibit sleep: %w", err)
	}
	cmd := exec.Command(path,
		"--what=sleep:handle-lid-switch",
		"--who=study-with-me",
		"--why="+reason,
		"--mode=block",
		"sleep", "infinity",
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("inhibit sleep: %w", err)
	}
	return &systemdInhibitor{cmd: cmd}, nil
}

func (inhibitor *systemdInhibitor) Release() error {
	if inhibitor.cmd == nil || inhibitor.cmd.Process == nil {
		return nil
	}
	if err := inhibitor.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("release sleep inhibitor: %w", err)
	}
	_ = inhibitor.cmd.Wait()
	inhibitor.cmd = nil
	return nil
}
