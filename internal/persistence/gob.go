package persistence

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SaveGob encodes the given object using gob and saves it to the specified filePath.
// It creates necessary directories if they don't exist. The file is written to a temporary
// sibling first and renamed into place, so readers never observe a partial file.
func SaveGob(filePath string, object interface{}) (err error) {
	// Ensure the directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := file.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	encoder := gob.NewEncoder(file)
	if encodeErr := encoder.Encode(object); encodeErr != nil {
		_ = file.Close()
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, encodeErr)
	}
	if closeErr := file.Close(); closeErr != nil {
		return fmt.Errorf("failed to close file %s: %w", tmpPath, closeErr)
	}
	if renameErr := os.Rename(tmpPath, filePath); renameErr != nil {
		return fmt.Errorf("failed to move %s into place: %w", filePath, renameErr)
	}
	return nil
}

// LoadGob decodes a gob-encoded file from filePath into the provided object pointer.
// The object must be a pointer to the type that was originally encoded.
// If the file does not exist, it returns os.ErrNotExist, allowing callers to handle
// fresh starts gracefully.
func LoadGob(filePath string, objectPointer interface{}) (err error) {
	file, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.ErrNotExist // Return specific error for non-existent file
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file %s: %w", filePath, closeErr)
		}
	}()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
