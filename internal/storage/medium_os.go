//go:build !memfs

package storage

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ffutop/persistance/internal/config"
)

// filesystem binds the host directory cfg.Root as the flash filesystem.
// With FormatOnFail a missing root is created, like formatting on a failed mount.
func filesystem(cfg config.StorageConfig) (string, afero.Fs) {
	osfs := afero.NewOsFs()
	if cfg.FormatOnFail {
		if err := osfs.MkdirAll(cfg.Root, 0755); err != nil {
			slog.Warn("Failed to format filesystem root", "root", cfg.Root, "err", err)
		}
	}
	return "osfs", afero.NewBasePathFs(osfs, cfg.Root)
}
