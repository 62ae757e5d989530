package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReceiptFilename(t *testing.T) {
	name := ReceiptFilename("receipt", "invoice March.PDF")
	if !strings.HasPrefix(name, "receipt-") {
		t.Fatalf("missing field prefix: %q", name)
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("extension not preserved lowercase: %q", name)
	}
	other := ReceiptFilename("receipt", "invoice March.PDF")
	if name == other {
		t.Fatal("two generated names collided")
	}
}

func TestReceiptFilenameWithoutExtension(t *testing.T) {
	name := ReceiptFilename("receipt", "scan")
	if strings.Contains(name, ".") {
		t.Fatalf("unexpected extension in %q", name)
	}
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	if err := SaveUpload(dir, "receipt-1.png", strings.NewReader("pngdata")); err != nil {
		t.Fatalf("save: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(dir, "receipt-1.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "pngdata" {
		t.Fatalf("content = %q", content)
	}
}

func TestSaveUploadRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	err := SaveUpload(dir, "receipt-empty.png", strings.NewReader(""))
	if err == nil {
		t.Fatal("empty upload accepted")
	}
	serr, ok := err.(ServiceError)
	if !ok || serr.Status != 400 {
		t.Fatalf("expected a 400 service error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "receipt-empty.png")); !os.IsNotExist(statErr) {
		t.Fatal("empty file left on disk")
	}
}

func TestUploadURL(t *testing.T) {
	if got := UploadURL("receipt-1.png"); got != "/uploads/receipt-1.png" {
		t.Fatalf("UploadURL = %q", got)
	}
}
