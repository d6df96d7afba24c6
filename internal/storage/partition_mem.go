//go:build nvs && memfs

package storage

import (
	"github.com/ffutop/persistance/internal/config"
	"github.com/ffutop/persistance/internal/nvs"
)

func partition(cfg config.StorageConfig) (string, nvs.Partition, error) {
	return "memory", nvs.NewMemoryPartition(), nil
}
