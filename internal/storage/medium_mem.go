//go:build memfs

package storage

import (
	"github.com/spf13/afero"

	"github.com/ffutop/persistance/internal/config"
)

// filesystem binds a RAM filesystem. Nothing survives the process.
func filesystem(cfg config.StorageConfig) (string, afero.Fs) {
	return "memfs", afero.NewMemMapFs()
}
