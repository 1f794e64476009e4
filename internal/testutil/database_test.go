package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresConnForTest() (*sql.DB, error) {
	db, err := sql.Open("postgres", PostgresTestDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newMySQLConnForTest() (*sql.DB, error) {
	db, err := sql.Open("mysql", MySQLTestDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func TestGetMigrationsPath(t *testing.T) {
	tests := []struct {
		name      string
		dbType    string
		wantPanic bool
	}{
		{name: "find postgresql migrations", dbType: "postgresql"},
		{name: "find mysql migrations", dbType: "mysql"},
		{name: "non-existent database type", dbType: "nonexistent", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantPanic {
				assert.Panics(t, func() { getMigrationsPath(tt.dbType) })
				return
			}

			got := getMigrationsPath(tt.dbType)
			assert.NotEmpty(t, got)
			assert.Contains(t, got, tt.dbType)

			_, statErr := os.Stat(got)
			assert.NoError(t, statErr, "migrations path should exist")
		})
	}
}

func TestGetMigrationsPathFromDifferentWorkingDir(t *testing.T) {
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	subDir := filepath.Join(originalWd, "testdata")
	//nolint:gosec // 0755 is appropriate for test directories
	err = os.MkdirAll(subDir, 0755)
	require.NoError(t, err)
	defer func() {
		_ = os.RemoveAll(subDir)
	}()

	err = os.Chdir(subDir)
	require.NoError(t, err)

	path := getMigrationsPath("postgresql")
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "postgresql")
}

func TestSetupPostgresDB(t *testing.T) {
	db, err := newPostgresConnForTest()
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	_ = db.Close()

	testDB := SetupPostgresDB(t)
	defer TeardownDB(t, testDB)

	require.NoError(t, testDB.Ping())

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM index_nodes").Scan(&count))
	assert.Equal(t, 0, count, "database should be clean after setup")
}

func TestSetupMySQLDB(t *testing.T) {
	db, err := newMySQLConnForTest()
	if err != nil {
		t.Skipf("mysql not available: %v", err)
	}
	_ = db.Close()

	testDB := SetupMySQLDB(t)
	defer TeardownDB(t, testDB)

	require.NoError(t, testDB.Ping())

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM blobs").Scan(&count))
	assert.Equal(t, 0, count, "database should be clean after setup")
}

func TestTeardownDBWithNilDB(t *testing.T) {
	assert.NotPanics(t, func() {
		TeardownDB(t, nil)
	})
}

func TestCleanupPostgresDB(t *testing.T) {
	db, err := newPostgresConnForTest()
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	_ = db.Close()

	testDB := SetupPostgresDB(t)
	defer TeardownDB(t, testDB)

	_, execErr := testDB.Exec(
		`INSERT INTO index_nodes (address, nonce, ciphertext) VALUES ($1, $2, $3)`,
		[]byte("addr-cleanup-test"), []byte("nonce"), []byte("ciphertext"),
	)
	require.NoError(t, execErr)

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM index_nodes").Scan(&count))
	assert.Equal(t, 1, count)

	CleanupPostgresDB(t, testDB)

	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM index_nodes").Scan(&count))
	assert.Equal(t, 0, count, "cleanup should remove all data")
}

func TestCleanupMySQLDB(t *testing.T) {
	db, err := newMySQLConnForTest()
	if err != nil {
		t.Skipf("mysql not available: %v", err)
	}
	_ = db.Close()

	testDB := SetupMySQLDB(t)
	defer TeardownDB(t, testDB)

	_, execErr := testDB.Exec(
		`INSERT INTO blobs (file_id, nonce, file_key, storage_path) VALUES (?, ?, ?, ?)`,
		"file-cleanup-test", []byte("nonce"), []byte("key"), "path/to/blob",
	)
	require.NoError(t, execErr)

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM blobs").Scan(&count))
	assert.Equal(t, 1, count)

	CleanupMySQLDB(t, testDB)

	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM blobs").Scan(&count))
	assert.Equal(t, 0, count, "cleanup should remove all data")
}
