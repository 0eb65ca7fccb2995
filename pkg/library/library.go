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

// Package library keeps installed stage mods in a tree of per-stage
// folders with a SQLite index. The layout is
// <root>/<stage folder>/<mod slug>/ holding the stage file and an optional
// screenshot.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ZaparooProject/zaparoo-stages/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-stages/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-stages/pkg/stages"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	ErrNullSQL      = errors.New("library database is not connected")
	ErrNoStage      = errors.New("no stage found in archive")
	ErrNotFound     = errors.New("library entry not found")
	ErrUnknownStage = errors.New("unknown stage")
)

const (
	sqliteConnParams = "?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000"
	lockRetryDelay   = 100 * time.Millisecond
	maxSlugAttempts  = 1000
)

// Entry is one installed stage mod.
type Entry struct {
	InstalledAt    time.Time `json:"installedAt"`
	ID             string    `json:"id"`
	StageID        string    `json:"stageId"`
	StageName      string    `json:"stageName"`
	Folder         string    `json:"folder"`
	Slug           string    `json:"slug"`
	ArchiveName    string    `json:"archiveName"`
	ArchiveMD5     string    `json:"archiveMd5"`
	StageFile      string    `json:"stageFile"`
	StagePath      string    `json:"stagePath"`
	ScreenshotPath string    `json:"screenshotPath,omitempty"`
}

// Dir returns the folder the entry's files live in, relative to the
// library root.
func (e *Entry) Dir() string {
	return filepath.Join(e.Folder, e.Slug)
}

// Options configures a Library. Fs and Clock default to the OS filesystem
// and the real clock. LockPath is a file on the OS filesystem locked
// during installs and removals so separate processes don't race on the
// same tree; it is skipped when empty.
type Options struct {
	Fs       afero.Fs
	Clock    clockwork.Clock
	Root     string
	LockPath string
}

type Library struct {
	sql      *sql.DB
	fs       afero.Fs
	clock    clockwork.Clock
	detector *stages.Detector
	lock     *flock.Flock
	root     string
	mu       syncutil.Mutex
}

//nolint:gocritic // options copied on construction
func newLibrary(opts Options) *Library {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	l := &Library{
		fs:       opts.Fs,
		clock:    opts.Clock,
		detector: stages.NewDetector(opts.Fs),
		root:     opts.Root,
	}
	if opts.LockPath != "" {
		l.lock = flock.New(opts.LockPath)
	}
	return l
}

// Open opens the library index at dbPath, creating and migrating it as
// needed.
//
//nolint:gocritic // options copied on construction
func Open(ctx context.Context, dbPath string, opts Options) (*Library, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), 0o750)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}

	sqlInstance, err := sql.Open("sqlite3", dbPath+sqliteConnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return OpenWithDB(ctx, sqlInstance, opts)
}

// OpenWithDB uses an already open database. The library owns it and
// closes it on Close.
//
//nolint:gocritic // options copied on construction
func OpenWithDB(ctx context.Context, db *sql.DB, opts Options) (*Library, error) {
	if db == nil {
		return nil, ErrNullSQL
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run library migrations: %w", err)
	}

	l := newLibrary(opts)
	l.sql = db
	return l, nil
}

func (l *Library) Root() string {
	return l.root
}

func (l *Library) Close() error {
	if l.sql == nil {
		return nil
	}
	err := l.sql.Close()
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// acquire takes the in-process mutex and, if configured, the lock file.
func (l *Library) acquire(ctx context.Context) (func(), error) {
	l.mu.Lock()
	if l.lock == nil {
		return l.mu.Unlock, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.lock.Path()), 0o750); err != nil {
		l.mu.Unlock()
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	locked, err := l.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		l.mu.Unlock()
		if err == nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("failed to lock library: %w", err)
	}

	return func() {
		if err := l.lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("failed to unlock library")
		}
		l.mu.Unlock()
	}, nil
}

// Install detects the stage in an archive and extracts it into the
// library. Installing an archive that is already in the library returns
// the existing entry.
func (l *Library) Install(ctx context.Context, archivePath string) (*Entry, error) {
	if l.sql == nil {
		return nil, ErrNullSQL
	}

	det, err := l.detector.Detect(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect stage: %w", err)
	}
	if det == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoStage, archivePath)
	}

	hash, err := helpers.GetMd5Hash(l.fs, archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash archive: %w", err)
	}

	unlock, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := sqlFindByMD5(ctx, l.sql, hash)
	if err == nil {
		log.Info().
			Str("archive", archivePath).
			Str("id", existing.ID).
			Msg("archive already installed")
		return &existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	archiveName := helpers.ArchiveName(archivePath)
	slug, err := l.uniqueSlug(ctx, det.Folder, Slugify(archiveName))
	if err != nil {
		return nil, err
	}

	outDir := filepath.Join(l.root, det.Folder, slug)
	res, err := l.detector.Extract(archivePath, det, outDir)
	if err != nil {
		l.cleanup(outDir)
		return nil, fmt.Errorf("failed to extract stage: %w", err)
	}

	entry := Entry{
		ID:             uuid.New().String(),
		StageID:        det.StageID,
		StageName:      det.StageName,
		Folder:         det.Folder,
		Slug:           slug,
		ArchiveName:    archiveName,
		ArchiveMD5:     hash,
		StageFile:      det.StageFile,
		StagePath:      res.StagePath,
		ScreenshotPath: res.ScreenshotPath,
		InstalledAt:    l.clock.Now().UTC().Truncate(time.Second),
	}

	if err := sqlInsertEntry(ctx, l.sql, entry); err != nil {
		l.cleanup(outDir)
		return nil, err
	}

	log.Info().
		Str("id", entry.ID).
		Str("stage", entry.StageID).
		Str("dir", outDir).
		Msg("installed stage mod")
	return &entry, nil
}

func (l *Library) cleanup(dir string) {
	if err := l.fs.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("failed to clean up partial install")
	}
}

// uniqueSlug returns slug, or slug with a numeric suffix, that isn't used
// by another entry or an existing folder in the stage's directory.
func (l *Library) uniqueSlug(ctx context.Context, folder, slug string) (string, error) {
	candidate := slug
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := sqlSlugTaken(ctx, l.sql, folder, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			exists, err := afero.Exists(l.fs, filepath.Join(l.root, folder, candidate))
			if err != nil {
				return "", fmt.Errorf("failed to check folder: %w", err)
			}
			if !exists {
				return candidate, nil
			}
		}
		candidate = slug + "-" + strconv.Itoa(i)
	}
	return "", fmt.Errorf("no free folder name for %s in %s", slug, folder)
}

// List returns installed entries oldest first. An empty stageID lists
// every entry.
func (l *Library) List(ctx context.Context, stageID string) ([]Entry, error) {
	if l.sql == nil {
		return nil, ErrNullSQL
	}
	if stageID != "" {
		if _, ok := stages.Lookup(stageID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStage, stageID)
		}
	}
	return sqlListEntries(ctx, l.sql, stageID)
}

func (l *Library) Get(ctx context.Context, id string) (*Entry, error) {
	if l.sql == nil {
		return nil, ErrNullSQL
	}
	e, err := sqlGetEntry(ctx, l.sql, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Remove deletes an entry's folder and its index row.
func (l *Library) Remove(ctx context.Context, id string) error {
	if l.sql == nil {
		return ErrNullSQL
	}

	unlock, err := l.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	e, err := sqlGetEntry(ctx, l.sql, id)
	if err != nil {
		return err
	}

	dir := filepath.Join(l.root, e.Dir())
	if err := l.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}

	if err := sqlDeleteEntry(ctx, l.sql, id); err != nil {
		return err
	}

	log.Info().Str("id", id).Str("dir", dir).Msg("removed stage mod")
	return nil
}
