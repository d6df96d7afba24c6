// Copyright (c) 2025-2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config defines the global configuration structure.
// The storage variant itself is fixed at build time; this only locates the medium.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig locates the persistence medium
type StorageConfig struct {
	Root          string `mapstructure:"root"`           // Filesystem mount directory
	FormatOnFail  bool   `mapstructure:"format_on_fail"` // Create Root when it does not exist
	Partition     string `mapstructure:"partition"`      // NVS partition image file
	PartitionSize int    `mapstructure:"partition_size"` // NVS partition size in bytes
	DSN           string `mapstructure:"dsn"`            // NVS SQL data source (sqlite builds)
}

// LogConfig defines logging configuration
type LogConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	File   string       `mapstructure:"file"`   // Log file path
	Serial SerialConfig `mapstructure:"serial"` // Optional serial console for diagnostics
}

// SerialConfig defines the diagnostic serial console
type SerialConfig struct {
	Device   string        `mapstructure:"device"` // e.g. "/dev/ttyUSB0"; empty disables the console
	BaudRate int           `mapstructure:"baud_rate"`
	DataBits int           `mapstructure:"data_bits"`
	Parity   string        `mapstructure:"parity"`
	StopBits int           `mapstructure:"stop_bits"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// New returns a viper instance with defaults set and the config file located.
func New(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/persistance/")
		v.AddConfigPath("$HOME/.persistance")
		v.AddConfigPath(".")
	}

	// Set defaults
	v.SetDefault("storage.root", "./data")
	v.SetDefault("storage.format_on_fail", true)
	v.SetDefault("storage.partition", "./nvs.bin")
	v.SetDefault("storage.partition_size", 0x5000)
	v.SetDefault("storage.dsn", "./nvs.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.serial.baud_rate", 115200)
	v.SetDefault("log.serial.data_bits", 8)
	v.SetDefault("log.serial.parity", "N")
	v.SetDefault("log.serial.stop_bits", 1)

	return v
}

// LoadConfig loads configuration from file
func LoadConfig(configFile string) (*Config, error) {
	return Load(New(configFile))
}

// Load reads the config file known to v, if any, and unmarshals it.
// A missing file in the search paths is not an error; defaults apply.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	fixupSerial(&config.Log.Serial)
	return &config, nil
}

func fixupSerial(s *SerialConfig) {
	s.Parity = strings.ToUpper(s.Parity)
	if s.Timeout == 0 {
		s.Timeout = 500 * time.Millisecond
	}
}
