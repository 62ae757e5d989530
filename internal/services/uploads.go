package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReceiptFilename builds a unique stored name for an uploaded file:
// field name, millisecond timestamp, random suffix, original extension.
// Concurrent uploads cannot collide on it.
func ReceiptFilename(field, originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
}

// SaveUpload streams an uploaded file into the upload directory under the
// given stored name. Empty files are rejected and nothing is left on disk.
func SaveUpload(basePath, storedName string, body io.Reader) error {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return err
	}
	target := filepath.Join(basePath, storedName)
	file, err := os.Create(target)
	if err != nil {
		return err
	}
	size, err := io.Copy(file, body)
	_ = file.Close()
	if err != nil {
		_ = os.Remove(target)
		return err
	}
	if size == 0 {
		_ = os.Remove(target)
		return ErrBadRequest("Uploaded file is empty")
	}
	return nil
}

// UploadURL derives the public URL for a stored filename. Only the filename
// is persisted on the expense row; the URL is rebuilt on every read.
func UploadURL(storedName string) string {
	return "/uploads/" + storedName
}
