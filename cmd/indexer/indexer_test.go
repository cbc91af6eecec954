package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/index"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/storage"
)

const pairsCSV = "prompt,completion\n" +
	"how many users,SELECT COUNT(*) FROM users\n" +
	"list orders,SELECT * FROM orders\n"

func writeExamples(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pairs.csv")
	require.NoError(t, os.WriteFile(path, []byte(pairsCSV), 0o644))

	return path
}

func testConfig() *config.Config {
	return &config.Config{ExamplesQuestionColumn: "prompt", ExamplesQueryColumn: "completion"}
}

func TestBuildIndexWritesBlob(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "idx.gob")

	err := BuildIndex(context.Background(), testConfig(), llm.NewHashEmbedder(16), config.BuildFlags{
		Path: writeExamples(t),
		Out:  out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	ix, err := index.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, ix.Len())
	assert.Equal(t, 16, ix.Dim())
}

func TestBuildIndexMissingFile(t *testing.T) {
	err := BuildIndex(context.Background(), testConfig(), llm.NewHashEmbedder(16), config.BuildFlags{
		Path: filepath.Join(t.TempDir(), "missing.csv"),
		Out:  filepath.Join(t.TempDir(), "idx.gob"),
	})
	assert.Error(t, err)
}

func TestBuildIndexS3NeedsConfig(t *testing.T) {
	err := BuildIndex(context.Background(), testConfig(), llm.NewHashEmbedder(16), config.BuildFlags{
		Path:  writeExamples(t),
		Out:   "idx.gob",
		UseS3: true,
	})
	assert.Error(t, err)
}

func TestExportExamples(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE EXTENSION IF NOT EXISTS vector")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS sql_examples .*vector\(16\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sql_examples")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sql_examples")).
		WithArgs(0, "how many users", "SELECT COUNT(*) FROM users", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sql_examples")).
		WithArgs(1, "list orders", "SELECT * FROM orders", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sql_examples")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err = ExportExamples(context.Background(), testConfig(), llm.NewHashEmbedder(16), storage.NewClientWithDB(db), config.ExportFlags{
		Path:  writeExamples(t),
		Clear: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportExamplesEmptyFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	err = ExportExamples(context.Background(), testConfig(), llm.NewHashEmbedder(16), storage.NewClientWithDB(db), config.ExportFlags{Path: path})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
