//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"path/filepath"
)

// ErrAutostartUnsupported is returned where no launcher integration exists.
var ErrAutostartUnsupported = errors.New("autostart unsupported on this platform")

func (service *platformService) EnableAutostart(execPath string) error {
	return ErrAutostartUnsupported
}

func (service *platformService) DisableAutostart() error {
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
