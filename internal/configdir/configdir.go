package configdir

import (
	"os"
	"path/filepath"
)

const defaultConfigDir = "/etc/idlewatch"

// ConfigDir resolves the system configuration directory respecting overrides
func ConfigDir() string {
	if env := os.Getenv("IDLEWATCH_CONFIG_DIR"); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
	}
	return defaultConfigDir
}

// StateDir resolves the per-user state directory (credential store, passphrase)
func StateDir() string {
	if env := os.Getenv("IDLEWATCH_STATE_DIR"); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".idlewatch")
	}
	return filepath.Join(os.TempDir(), "idlewatch")
}
