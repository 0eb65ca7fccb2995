// Zaparoo Stages
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Stages.
//
// Zaparoo Stages is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Stages is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Stages.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/zaparoo-stages/pkg/config"
	"github.com/ZaparooProject/zaparoo-stages/pkg/helpers"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	Version *bool
	Debug   *bool
	Config  *string
}

// SetupFlags defines the global flags. Subcommands parse their own.
func SetupFlags() *Flags {
	return &Flags{
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: flag.Bool(
			"debug",
			false,
			"enable debug logging regardless of config",
		),
		Config: flag.String(
			"config",
			"",
			"path to config file (overrides "+config.CfgEnv+")",
		),
	}
}

// Pre runs flag parsing and actions any immediate flags that don't
// require the environment to be set up.
func (f *Flags) Pre(out io.Writer) (exit bool) {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "Usage: stages [flags] <command> [args]\n\n")
		_, _ = fmt.Fprint(flag.CommandLine.Output(), commandUsage)
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Zaparoo Stages v%s\n", config.AppVersion)
		return true
	}
	return false
}

// Setup creates the app directories, loads the user config and starts
// logging. Debug logging is on if either the flag or the config says so.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	dirs helpers.AppDirs,
	defaults config.Values,
	flags *Flags,
	writers []io.Writer,
) (*config.Instance, error) {
	for _, dir := range []string{dirs.ConfigDir, dirs.DataDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if flags != nil && flags.Config != nil && *flags.Config != "" {
		if err := os.Setenv(config.CfgEnv, *flags.Config); err != nil {
			return nil, fmt.Errorf("failed to set config path: %w", err)
		}
	}

	cfg, err := config.NewConfig(dirs.ConfigDir, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	debug := cfg.DebugLogging() || (flags != nil && flags.Debug != nil && *flags.Debug)
	err = helpers.InitLogging(dirs.DataDir, debug, writers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	log.Info().Msgf("version: %s", config.AppVersion)
	log.Debug().Msgf("config path: %s", cfg.Path())
	log.Debug().Msgf("data dir: %s", dirs.DataDir)

	return cfg, nil
}
