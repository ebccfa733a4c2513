package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the folder created inside the user's Documents directory.
const AppDirName = "Study-with-me"

// Service defines OS-specific helpers needed by the application.
type Service interface {
	DocumentsDir() (string, error)
	OpenPath(path string) error
	InhibitSleep(reason string) (Inhibitor, error)
}

// Inhibitor keeps the machine awake until Release is called.
type Inhibitor interface {
	Release() error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// ResourceDir returns <Documents>/Study-with-me/resource.
func ResourceDir(service Service) (string, error) {
	documentsDir, err := service.DocumentsDir()
	if err != nil {
		return "", fmt.Errorf("resolve documents dir: %w", err)
	}
	return filepath.Join(documentsDir, AppDirName, "resource"), nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if path == "" {
		return fmt.Errorf("ensure dir: path is empty")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("ensure dir %s: %w", path, err)
	}
	return nil
}

func homeDocuments() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Documents"), nil
}

type noopInhibitor struct{}

func (noopInhibitor) Release() error { return nil }
