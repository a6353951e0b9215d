package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akinalp/akis/pkg"
)

// formFile, bellek içi bir multipart form kurup dosya parçasını döner —
// handler'ın r.FormFile ile aldığıyla aynı tipler.
func formFile(t *testing.T, filename, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("failed to read form file: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return file, header
}

func TestUploadSave(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, 1024*1024)

	file, header := formFile(t, "photo.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))

	url, err := svc.Save(file, header)
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if !strings.HasPrefix(url, "/api/uploads/") {
		t.Fatalf("unexpected url: %q", url)
	}
	if !strings.HasSuffix(url, "_photo.jpg") {
		t.Fatalf("expected original filename preserved: %q", url)
	}

	// Dosya gerçekten diskte ve içerik aynı
	diskName := strings.TrimPrefix(url, "/api/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, diskName))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != "fake-jpeg-bytes" {
		t.Fatalf("saved content mismatch: %q", data)
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc := NewUploadService(t.TempDir(), 1024*1024)

	file, header := formFile(t, "evil.sh", "application/x-sh", []byte("#!/bin/sh"))

	if _, err := svc.Save(file, header); !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for disallowed type, got %v", err)
	}
}

func TestUploadRejectsTooLarge(t *testing.T) {
	svc := NewUploadService(t.TempDir(), 10) // 10 byte limit

	file, header := formFile(t, "big.png", "image/png", bytes.Repeat([]byte("x"), 100))

	if _, err := svc.Save(file, header); !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for oversized file, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"", "file"},
		{".", "file"},
	}
	for i, c := range cases {
		if got := sanitizeFilename(c.in); got != c.want {
			t.Fatalf("case %d: sanitize(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}
