// Copyright (c) 2025-2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ffutop/persistance/internal/config"
	"github.com/ffutop/persistance/internal/console"
	"github.com/ffutop/persistance/internal/model"
	"github.com/ffutop/persistance/internal/persistence"
	"github.com/ffutop/persistance/internal/storage"
)

const usage = `Commands:
  save <path> <settings-json>  store device settings at path
  load <path>                  print the device settings stored at path
  boot <path>                  increment and store the boot counter at path
  remove <path>                delete the value at path (nvs builds)
  remove-all <path>            clear the namespace path (nvs builds)
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	v, rest, err := parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	// Load Configuration
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	closeLogger := setupLogger(cfg.Log)
	defer closeLogger()

	slog.Debug("Opening storage", "variant", storage.Variant)
	store := storage.New(cfg.Storage)
	defer store.Close()

	if err := execute(store, rest, out); err != nil {
		slog.Error("Command failed", "err", err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}

var errUsage = errors.New("invalid usage")

// execute runs one command against store.
func execute(store storage.Storage, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}
	cmd, path := args[0], args[1]

	switch cmd {
	case "save":
		if len(args) != 3 {
			return errUsage
		}
		settings := &model.DeviceSettings{}
		if err := settings.Deserialize(args[2]); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
		if err := persistence.NewWithStorage(settings, store).SaveData(path); err != nil {
			return err
		}
		slog.Info("Settings saved", "path", path, "device", settings.Name)
		return nil

	case "load":
		settings := &model.DeviceSettings{}
		text, err := persistence.NewWithStorage(settings, store).LoadData(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil

	case "boot":
		counter := &model.BootCounter{}
		p := persistence.NewWithStorage(counter, store)
		if _, err := p.LoadData(path); err != nil && !errors.Is(err, storage.ErrEmpty) {
			return err
		}
		counter.Increment()
		if err := p.SaveData(path); err != nil {
			return err
		}
		fmt.Fprintln(out, counter.Count)
		return nil

	case "remove", "remove-all":
		r, ok := store.(storage.Remover)
		if !ok {
			return fmt.Errorf("%s: not supported by %s storage", cmd, storage.Variant)
		}
		if cmd == "remove" {
			return r.Remove(path)
		}
		return r.RemoveAll(path)

	default:
		return errUsage
	}
}

// setupLogger installs the default slog logger and returns a func releasing its outputs.
func setupLogger(cfg config.LogConfig) func() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var w io.Writer = os.Stdout
	var closers []io.Closer
	if cfg.File != "" && cfg.File != "-" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Failed to open log file, falling back to stdout: %v\n", err)
		} else {
			w = f
			closers = append(closers, f)
		}
	}
	if cfg.Serial.Device != "" {
		c := console.New(cfg.Serial)
		if err := c.Connect(); err != nil {
			fmt.Printf("Failed to open serial console, logging without it: %v\n", err)
		} else {
			w = io.MultiWriter(w, c)
			closers = append(closers, c)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
	return func() {
		for _, c := range closers {
			c.Close()
		}
	}
}
