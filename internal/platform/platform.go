package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory, lock and launcher name used on every OS.
const AppName = "Tempo"

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	AppDir() (string, error)
	EnableAutostart(execPath string) error
	DisableAutostart() error
}

type platformService struct {
	appName string
	baseDir func() (string, error)
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{appName: AppName, baseDir: os.UserConfigDir}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := service.baseDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// AppDir returns <config dir>/Tempo. Settings and the default data
// directory both live there.
func (service *platformService) AppDir() (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, service.appName), nil
}

// SyncAutostart makes the OS launcher match the launch-at-login setting.
func SyncAutostart(service Service, enabled bool) error {
	if !enabled {
		return service.DisableAutostart()
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return service.EnableAutostart(execPath)
}

func launcherSlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = AppName
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
