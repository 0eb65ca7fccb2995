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
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-stages/pkg/config"
	"github.com/ZaparooProject/zaparoo-stages/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-stages/pkg/library"
	"github.com/ZaparooProject/zaparoo-stages/pkg/stages"
	"github.com/ZaparooProject/zaparoo-stages/pkg/vanilla"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const commandUsage = `Commands:
  detect <zip>            print the stage found in an archive
  extract <zip> <outDir>  extract the stage file and screenshot
  install <zip|dir>       add an archive, or every zip in a dir, to the library
  list [stage]            list installed mods, optionally for one stage
  remove <id>             remove an installed mod
  vanilla                 copy vanilla costume files into the asset tree
  stages                  list supported stages
`

const noStageMsg = "no stage found"

var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// App runs subcommands against a loaded config. Fs is used for archive and
// vanilla file access; the library index itself is always on disk.
type App struct {
	Cfg    *config.Instance
	Fs     afero.Fs
	Stdout io.Writer
	Dirs   helpers.AppDirs
}

// Run dispatches args[0] as a subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n\n%s", ErrUsage, commandUsage)
	}
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}

	cmd, rest := args[0], args[1:]
	log.Debug().Str("command", cmd).Strs("args", rest).Msg("running command")

	switch cmd {
	case "detect":
		return a.detect(rest)
	case "extract":
		return a.extract(rest)
	case "install":
		return a.install(ctx, rest)
	case "list":
		return a.list(ctx, rest)
	case "remove":
		return a.remove(ctx, rest)
	case "vanilla":
		return a.vanilla(rest)
	case "stages":
		return a.printJSON(stages.All())
	default:
		return fmt.Errorf("%w: %s\n\n%s", ErrUnknownCommand, cmd, commandUsage)
	}
}

func requireArgs(cmd string, args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("%w: stages %s %s", ErrUsage, cmd, usage)
	}
	return nil
}

func (a *App) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, _ = fmt.Fprintln(a.Stdout, string(data))
	return nil
}

func (a *App) detect(args []string) error {
	if err := requireArgs("detect", args, 1, "<zip>"); err != nil {
		return err
	}

	det, err := stages.NewDetector(a.Fs).Detect(args[0])
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	if det == nil {
		_, _ = fmt.Fprintln(a.Stdout, noStageMsg)
		return nil
	}
	return a.printJSON(det)
}

func (a *App) extract(args []string) error {
	if err := requireArgs("extract", args, 2, "<zip> <outDir>"); err != nil {
		return err
	}

	d := stages.NewDetector(a.Fs)
	det, err := d.Detect(args[0])
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	if det == nil {
		return fmt.Errorf("%w: %s", library.ErrNoStage, args[0])
	}

	res, err := d.Extract(args[0], det, args[1])
	if err != nil {
		return fmt.Errorf("failed to extract stage: %w", err)
	}

	_, _ = fmt.Fprintf(a.Stdout, "%s: %s\n", det.StageName, res.StagePath)
	if res.ScreenshotPath != "" {
		_, _ = fmt.Fprintf(a.Stdout, "screenshot: %s\n", res.ScreenshotPath)
	}
	return nil
}

func (a *App) openLibrary(ctx context.Context) (*library.Library, error) {
	lib, err := library.Open(ctx, a.Cfg.LibraryDbFile(a.Dirs.DataDir), library.Options{
		Fs:       a.Fs,
		Root:     a.Cfg.LibraryRoot(a.Dirs.DataDir),
		LockPath: filepath.Join(a.Dirs.DataDir, config.LockFile),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func closeLibrary(lib *library.Library) {
	if err := lib.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing library")
	}
}

func (a *App) install(ctx context.Context, args []string) error {
	if err := requireArgs("install", args, 1, "<zip|dir>"); err != nil {
		return err
	}

	lib, err := a.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer closeLibrary(lib)

	isDir, err := afero.IsDir(a.Fs, args[0])
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", args[0], err)
	}
	if !isDir {
		entry, err := lib.Install(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to install %s: %w", args[0], err)
		}
		return a.printJSON(entry)
	}

	return a.installDir(ctx, lib, args[0])
}

// installDir installs every zip directly inside dir. Archives without a
// stage are logged and skipped.
func (a *App) installDir(ctx context.Context, lib *library.Library, dir string) error {
	files, err := afero.ReadDir(a.Fs, dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	entries := make([]*library.Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !helpers.IsZip(f.Name()) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		entry, err := lib.Install(ctx, path)
		if errors.Is(err, library.ErrNoStage) {
			log.Info().Str("archive", path).Msg("skipping archive with no stage")
			continue
		} else if err != nil {
			return fmt.Errorf("failed to install %s: %w", path, err)
		}
		entries = append(entries, entry)
	}
	return a.printJSON(entries)
}

// resolveStage accepts a stage code or a display name.
func resolveStage(s string) (string, error) {
	if d, ok := stages.Lookup(s); ok {
		return d.ID, nil
	}
	if id, ok := stages.IDFromDisplayName(s); ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s", library.ErrUnknownStage, s)
}

func (a *App) list(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: stages list [stage]", ErrUsage)
	}

	stageID := ""
	if len(args) == 1 {
		id, err := resolveStage(args[0])
		if err != nil {
			return err
		}
		stageID = id
	}

	lib, err := a.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer closeLibrary(lib)

	entries, err := lib.List(ctx, stageID)
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}
	if entries == nil {
		entries = make([]library.Entry, 0)
	}
	return a.printJSON(entries)
}

func (a *App) remove(ctx context.Context, args []string) error {
	if err := requireArgs("remove", args, 1, "<id>"); err != nil {
		return err
	}

	lib, err := a.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer closeLibrary(lib)

	if err := lib.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}
	_, _ = fmt.Fprintf(a.Stdout, "removed %s\n", args[0])
	return nil
}

func (a *App) vanilla(args []string) error {
	buildDir, assetDir := a.Cfg.VanillaDirs()

	fs := flag.NewFlagSet("vanilla", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&buildDir, "build", buildDir, "directory holding the game's Pl*.dat files")
	fs.StringVar(&assetDir, "assets", assetDir, "vanilla asset tree to copy into")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: stages vanilla [-build dir] [-assets dir]", ErrUsage)
	}

	report, err := vanilla.NewCopier(a.Fs).Prepare(buildDir, assetDir)
	if err != nil {
		return fmt.Errorf("failed to prepare vanilla assets: %w", err)
	}

	for _, c := range report.Copied {
		_, _ = fmt.Fprintf(a.Stdout, "copied: %s -> %s/%s/\n", c.File, c.Character, c.Costume)
	}
	for _, msg := range report.Errors {
		_, _ = fmt.Fprintf(a.Stdout, "error: %s\n", msg)
	}
	_, _ = fmt.Fprintf(a.Stdout, "copied %d files, skipped %d existing\n", len(report.Copied), report.Skipped)
	return nil
}
