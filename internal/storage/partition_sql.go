//go:build nvs && sqlite && !memfs

package storage

import (
	_ "modernc.org/sqlite"

	"github.com/ffutop/persistance/internal/config"
	"github.com/ffutop/persistance/internal/nvs"
)

func partition(cfg config.StorageConfig) (string, nvs.Partition, error) {
	p, err := nvs.OpenSQLPartition("sqlite", cfg.DSN)
	if err != nil {
		return "sqlite", nil, err
	}
	return "sqlite", p, nil
}
