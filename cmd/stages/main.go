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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-stages/pkg/cli"
	"github.com/ZaparooProject/zaparoo-stages/pkg/config"
	"github.com/ZaparooProject/zaparoo-stages/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags()
	if flags.Pre(os.Stdout) {
		return nil
	}

	var logWriters []io.Writer
	if *flags.Debug {
		logWriters = []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	}
	dirs := helpers.DefaultAppDirs()

	cfg, err := cli.Setup(dirs, config.BaseDefaults, flags, logWriters)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	// ctrl-c cancels a pending library lock wait
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Cfg:    cfg,
		Stdout: os.Stdout,
		Dirs:   dirs,
	}
	err = app.Run(ctx, flag.Args())
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		return err //nolint:wrapcheck // already wrapped by the command
	}
	return nil
}
