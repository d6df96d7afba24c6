// Copyright (c) 2025-2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ffutop/persistance/internal/config"
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"root":           "storage.root",
	"partition":      "storage.partition",
	"partition_size": "storage.partition_size",
	"dsn":            "storage.dsn",
	"log_level":      "log.level",
	"log_file":       "log.file",
	"console":        "log.serial.device",
}

// parseFlags parses args and returns a viper instance with the flags bound,
// plus the remaining positional arguments.
func parseFlags(args []string) (*viper.Viper, []string, error) {
	fs := pflag.NewFlagSet("persistance", pflag.ContinueOnError)
	configFile := fs.StringP("config", "c", "", "Configuration file path.")
	fs.StringP("root", "r", "", "Filesystem mount directory.")
	fs.String("partition", "", "NVS partition image file.")
	fs.Int("partition_size", 0, "NVS partition size in bytes.")
	fs.String("dsn", "", "NVS SQL data source (sqlite builds).")
	fs.StringP("log_level", "v", "", "Log verbosity level (debug, info, warn, error).")
	fs.StringP("log_file", "L", "", "Log file name ('-' for logging to STDOUT only).")
	fs.String("console", "", "Serial device that also receives diagnostics.")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: persistance [flags] <command> [args]\n\n%s\nFlags:\n%s", usage, fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := config.New(*configFile)
	for flag, key := range flagKeys {
		// only flags set on the command line override the file
		if f := fs.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}
	return v, fs.Args(), nil
}
