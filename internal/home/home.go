package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the strata home directory.
	DefaultDirName = ".strata"

	// DataDirName is the subdirectory for extracted document data.
	DataDirName = "data"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// DatabaseFileName is the structure database file name.
	DatabaseFileName = "structure.db"
)

// Dir represents the strata home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.strata).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DataPath returns the path to the data directory.
func (d *Dir) DataPath() string {
	return filepath.Join(d.path, DataDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DatabasePath returns the path to the structure database.
func (d *Dir) DatabasePath() string {
	return filepath.Join(d.DataPath(), DatabaseFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.DataPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// PageImagesDir returns the directory for rasterized page images of a document.
func (d *Dir) PageImagesDir(docID string) string {
	return filepath.Join(d.path, "page_images", docID)
}

// PageImagePath returns the path to a specific rasterized page.
// Page numbers are 1-indexed.
func (d *Dir) PageImagePath(docID string, pageNum int) string {
	return filepath.Join(d.PageImagesDir(docID), fmt.Sprintf("page_%04d.png", pageNum))
}

// EnsurePageImagesDir creates the page image cache directory for a document.
func (d *Dir) EnsurePageImagesDir(docID string) error {
	return os.MkdirAll(d.PageImagesDir(docID), 0o755)
}

// OriginalsDir returns the directory for original PDF files of a document.
func (d *Dir) OriginalsDir(docID string) string {
	return filepath.Join(d.DataPath(), docID, "originals")
}

// EnsureOriginalsDir creates the originals directory for a document's PDFs.
func (d *Dir) EnsureOriginalsDir(docID string) error {
	return os.MkdirAll(d.OriginalsDir(docID), 0o755)
}
