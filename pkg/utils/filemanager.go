// =============================================================================
// Sales Calculator - File Manager Utility
// =============================================================================
//
// This module provides the file handling used when writing result artifacts:
//   - Output directory management
//   - Output file naming with placeholders
//   - Artifact creation with write-error propagation
//
// NAMING PLACEHOLDERS:
//   {uuid}      - The run ID
//   {timestamp} - Run timestamp (YYYYMMDD_HHMMSS)
//   {date}      - Run date (YYYYMMDD)
//   {time}      - Run time (HHMMSS)
//   {catalogue} - Price catalogue file name without extension
//   {sales}     - Sales data file name without extension
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager writes artifacts into one output directory.
type FileManager struct {
	// OutputDir is the directory where artifacts are placed.
	OutputDir string
}

// NewFileManager creates a FileManager for outputDir.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{OutputDir: outputDir}
}

// EnsureDirectories creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// Path returns the full path of an artifact name.
func (fm *FileManager) Path(name string) string {
	return filepath.Join(fm.OutputDir, name)
}

// WriteFile creates the named artifact and hands it to write. The file is
// always closed; a close error is reported when write succeeded.
//
// RETURNS:
//   - The path of the written file.
//   - An error if the file cannot be created, written or closed.
func (fm *FileManager) WriteFile(name string, write func(io.Writer) error) (path string, err error) {
	path = fm.Path(name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(file); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// ExpandFileName replaces the placeholders in format. Extra params are
// available as {key}.
//
// EXAMPLE:
//   format: "SalesResults_{timestamp}.txt"
//   output: "SalesResults_20240115_143022.txt"
func ExpandFileName(format, runID string, now time.Time, params map[string]string) string {
	pairs := []string{
		"{uuid}", runID,
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(format)
}

// SiblingName swaps the extension of name, keeping the base.
// SiblingName("SalesResults.txt", ".xlsx") == "SalesResults.xlsx".
func SiblingName(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// Stem returns the file name of path without directory or extension.
func Stem(path string) string {
	return SiblingName(filepath.Base(path), "")
}
