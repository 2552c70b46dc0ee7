// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/blinklabs-io/gotorrent/internal/config"
	"github.com/spf13/pflag"
)

type GlobalFlags struct {
	Flagset    *pflag.FlagSet
	ConfigFile string
	LogLevel   string
}

func NewGlobalFlags(name string) *GlobalFlags {
	f := &GlobalFlags{
		Flagset: pflag.NewFlagSet(name, pflag.ContinueOnError),
	}
	// Everything after the subcommand name belongs to the subcommand
	f.Flagset.SetInterspersed(false)
	f.Flagset.StringVar(
		&f.ConfigFile,
		"config",
		"",
		"path to YAML config file (default: per-user config if it exists)",
	)
	f.Flagset.StringVar(
		&f.LogLevel,
		"log-level",
		"",
		"log level (debug, info, warn, error). this overrides the config file",
	)
	return f
}

func (f *GlobalFlags) Parse(args []string) error {
	if err := f.Flagset.Parse(args); err != nil {
		return fmt.Errorf("failed to parse command args: %w", err)
	}
	return nil
}

// Config loads the config file named by --config, or the per-user config if
// one exists, and applies flag overrides
func (f *GlobalFlags) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	configFile := f.ConfigFile
	if configFile == "" {
		defaultPath := config.DefaultConfigPath()
		if defaultPath != "" {
			if _, err := os.Stat(defaultPath); err == nil {
				configFile = defaultPath
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}
	if configFile != "" {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger returns a text logger writing to w at the configured level
func NewLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	), nil
}
