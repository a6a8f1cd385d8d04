package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// AppName is the application name used for directories and identification
const AppName = "shelfr"

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/inovacc/shelfr/internal/application.Version=..."
var Version = "0.1.0"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the shelfr configuration directory path.
// Linux: ~/.config/shelfr (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\shelfr (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
	}

	appDir = filepath.Join(baseDir, AppName)
}
