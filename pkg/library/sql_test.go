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
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	testsqlmock "github.com/ZaparooProject/zaparoo-stages/pkg/testing/sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryColumnNames = []string{
	"ID", "StageID", "Folder", "Slug", "ArchiveName", "ArchiveMD5",
	"StageFile", "StagePath", "ScreenshotPath", "InstalledAt",
}

func testEntry() Entry {
	return Entry{
		ID:             "test-uuid",
		StageID:        "GrNBa",
		StageName:      "Battlefield",
		Folder:         "battlefield",
		Slug:           "cool_bf",
		ArchiveName:    "Cool BF",
		ArchiveMD5:     "d41d8cd98f00b204e9800998ecf8427e",
		StageFile:      "GrNBa.dat",
		StagePath:      "/lib/battlefield/cool_bf/GrNBa.dat",
		ScreenshotPath: "/lib/battlefield/cool_bf/screenshot.png",
		InstalledAt:    time.Unix(1760443200, 0).UTC(),
	}
}

func entryRow(e *Entry) []driver.Value {
	return []driver.Value{
		e.ID, e.StageID, e.Folder, e.Slug, e.ArchiveName, e.ArchiveMD5,
		e.StageFile, e.StagePath, e.ScreenshotPath, e.InstalledAt.Unix(),
	}
}

func TestSqlInsertEntry_Success(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	e := testEntry()
	mock.ExpectPrepare(`insert into StageMods`).
		ExpectExec().
		WithArgs(
			e.ID, e.StageID, e.Folder, e.Slug, e.ArchiveName, e.ArchiveMD5,
			e.StageFile, e.StagePath, e.ScreenshotPath, e.InstalledAt.Unix(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = sqlInsertEntry(context.Background(), db, e)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlInsertEntry_DatabaseError(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPrepare(`insert into StageMods`).
		ExpectExec().
		WillReturnError(sqlmock.ErrCancelled)

	err = sqlInsertEntry(context.Background(), db, testEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute entry insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlGetEntry_Success(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	e := testEntry()
	mock.ExpectQuery(`from StageMods\s+where ID = \?`).
		WithArgs(e.ID).
		WillReturnRows(sqlmock.NewRows(entryColumnNames).AddRow(entryRow(&e)...))

	got, err := sqlGetEntry(context.Background(), db, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlGetEntry_NotFound(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`from StageMods\s+where ID = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(entryColumnNames))

	_, err = sqlGetEntry(context.Background(), db, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlFindByMD5_QueryError(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`from StageMods\s+where ArchiveMD5 = \?`).
		WithArgs("abc").
		WillReturnError(errors.New("disk I/O error"))

	_, err = sqlFindByMD5(context.Background(), db, "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to find entry by hash")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlSlugTaken(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`select count\(\*\)\s+from StageMods`).
		WithArgs("battlefield", "cool_bf").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`select count\(\*\)\s+from StageMods`).
		WithArgs("battlefield", "other").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := sqlSlugTaken(context.Background(), db, "battlefield", "cool_bf")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = sqlSlugTaken(context.Background(), db, "battlefield", "other")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlListEntries_FilterByStage(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	e := testEntry()
	mock.ExpectQuery(`from StageMods where StageID = \? order by InstalledAt`).
		WithArgs("GrNBa").
		WillReturnRows(sqlmock.NewRows(entryColumnNames).AddRow(entryRow(&e)...))

	list, err := sqlListEntries(context.Background(), db, "GrNBa")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Battlefield", list[0].StageName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlListEntries_All(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`from StageMods order by InstalledAt`).
		WillReturnRows(sqlmock.NewRows(entryColumnNames))

	list, err := sqlListEntries(context.Background(), db, "")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlDeleteEntry(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPrepare(`delete from StageMods where ID = \?`).
		ExpectExec().
		WithArgs("test-uuid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(`delete from StageMods where ID = \?`).
		ExpectExec().
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, sqlDeleteEntry(context.Background(), db, "test-uuid"))
	require.ErrorIs(t, sqlDeleteEntry(context.Background(), db, "missing"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
