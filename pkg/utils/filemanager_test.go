package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		format string
		params map[string]string
		want   string
	}{
		{"SalesResults.txt", nil, "SalesResults.txt"},
		{"Sales_{timestamp}.txt", nil, "Sales_20240115_143022.txt"},
		{"{date}/{time}-{uuid}.txt", nil, "20240115/143022-run-1.txt"},
		{"{store}_{date}.txt", map[string]string{"store": "north"}, "north_20240115.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandFileName(tt.format, "run-1", now, tt.params), tt.format)
	}
}

func TestNewRunID_IsUUID(t *testing.T) {
	_, err := uuid.Parse(NewRunID())
	assert.NoError(t, err)
}

func TestNewRunID_Unique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}

func TestSiblingName(t *testing.T) {
	assert.Equal(t, "SalesResults.xlsx", SiblingName("SalesResults.txt", ".xlsx"))
	assert.Equal(t, "out/report.xml", SiblingName("out/report", ".xml"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "catalogue", Stem(filepath.Join("data", "catalogue.json")))
	assert.Equal(t, "sales.2024", Stem("sales.2024.csv"))
	assert.Equal(t, "README", Stem("README"))
}

func TestFileManager_WriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	fm := NewFileManager(dir)
	require.NoError(t, fm.EnsureDirectories())

	path, err := fm.WriteFile("a.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "hello\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.txt"), path)
	assert.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestFileManager_WriteFileErrors(t *testing.T) {
	fm := NewFileManager(t.TempDir())

	boom := errors.New("boom")
	_, err := fm.WriteFile("b.txt", func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	missing := NewFileManager(filepath.Join(t.TempDir(), "missing"))
	_, err = missing.WriteFile("c.txt", func(io.Writer) error { return nil })
	assert.Error(t, err)
}
