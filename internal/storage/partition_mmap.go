//go:build nvs && !sqlite && !memfs

package storage

import (
	"github.com/ffutop/persistance/internal/config"
	"github.com/ffutop/persistance/internal/nvs"
)

func partition(cfg config.StorageConfig) (string, nvs.Partition, error) {
	p, err := nvs.OpenMmapPartition(cfg.Partition, cfg.PartitionSize)
	if err != nil {
		return "mmap", nil, err
	}
	return "mmap", p, nil
}
