package journal

import (
	"path/filepath"

	"codeberg.org/mutker/ipmictl/internal/errors"
)

const (
	// File system permissions and paths
	defaultDirPerm = 0o755
	backupDirName  = "backups"
)

// Config selects where the journal lives. A disabled journal records nothing.
type Config struct {
	DBPath  string
	Enabled bool
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate DBPath if the journal is enabled
	if c.Enabled && c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	return nil
}

func (c Config) backupDir() string {
	return filepath.Join(filepath.Dir(c.DBPath), backupDirName)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
