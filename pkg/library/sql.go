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

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-stages/pkg/stages"
	"github.com/rs/zerolog/log"
)

// Queries go here to keep the Library methods about files and locking.

const entryColumns = `ID, StageID, Folder, Slug, ArchiveName, ArchiveMD5,
	StageFile, StagePath, ScreenshotPath, InstalledAt`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var installedAt int64
	err := row.Scan(
		&e.ID,
		&e.StageID,
		&e.Folder,
		&e.Slug,
		&e.ArchiveName,
		&e.ArchiveMD5,
		&e.StageFile,
		&e.StagePath,
		&e.ScreenshotPath,
		&installedAt,
	)
	if err != nil {
		return Entry{}, err //nolint:wrapcheck // wrapped by callers
	}
	e.InstalledAt = time.Unix(installedAt, 0).UTC()
	if desc, ok := stages.Lookup(e.StageID); ok {
		e.StageName = desc.Name
	}
	return e, nil
}

func closeStmt(stmt *sql.Stmt) {
	if err := stmt.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close sql statement")
	}
}

//nolint:gocritic // struct passed for DB insertion
func sqlInsertEntry(ctx context.Context, db *sql.DB, e Entry) error {
	stmt, err := db.PrepareContext(ctx, `
		insert into StageMods(`+entryColumns+`)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert statement: %w", err)
	}
	defer closeStmt(stmt)

	_, err = stmt.ExecContext(ctx,
		e.ID,
		e.StageID,
		e.Folder,
		e.Slug,
		e.ArchiveName,
		e.ArchiveMD5,
		e.StageFile,
		e.StagePath,
		e.ScreenshotPath,
		e.InstalledAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to execute entry insert: %w", err)
	}
	return nil
}

func sqlGetEntry(ctx context.Context, db *sql.DB, id string) (Entry, error) {
	row := db.QueryRowContext(ctx, `
		select `+entryColumns+`
		from StageMods
		where ID = ?;
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	} else if err != nil {
		return Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func sqlFindByMD5(ctx context.Context, db *sql.DB, md5 string) (Entry, error) {
	row := db.QueryRowContext(ctx, `
		select `+entryColumns+`
		from StageMods
		where ArchiveMD5 = ?;
	`, md5)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	} else if err != nil {
		return Entry{}, fmt.Errorf("failed to find entry by hash: %w", err)
	}
	return e, nil
}

func sqlSlugTaken(ctx context.Context, db *sql.DB, folder, slug string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `
		select count(*)
		from StageMods
		where Folder = ? and Slug = ?;
	`, folder, slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// sqlListEntries returns entries oldest first. An empty stageID lists all.
func sqlListEntries(ctx context.Context, db *sql.DB, stageID string) ([]Entry, error) {
	q := `select ` + entryColumns + ` from StageMods`
	var args []any
	if stageID != "" {
		q += ` where StageID = ?`
		args = append(args, stageID)
	}
	q += ` order by InstalledAt asc, DBID asc;`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	list := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return list, nil
}

func sqlDeleteEntry(ctx context.Context, db *sql.DB, id string) error {
	stmt, err := db.PrepareContext(ctx, `delete from StageMods where ID = ?;`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry delete statement: %w", err)
	}
	defer closeStmt(stmt)

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to execute entry delete: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
