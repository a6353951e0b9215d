package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/akis/pkg"
	"github.com/google/uuid"
)

// UploadService, post medya dosyalarının (resim/video) diske kaydı.
// DB kaydı tutulmaz — dosyanın public URL'i posts satırına yazılır.
type UploadService interface {
	Save(file multipart.File, header *multipart.FileHeader) (url string, err error)
}

type uploadService struct {
	uploadDir string
	maxSize   int64
}

// NewUploadService, constructor.
func NewUploadService(uploadDir string, maxSize int64) UploadService {
	return &uploadService{
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

// allowedMimeTypes, yüklemeye izin verilen medya türleri.
// Post medyası sadece resim ve video — keyfi dosya tipi kabul edilmez.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
}

// Save, dosyayı doğrular, diske kaydeder ve public URL döner.
//
// Disk adı {uuid}_{original} formatındadır — çakışma olmaz ve kullanıcıdan
// gelen isim tek başına path olarak kullanılmaz.
func (s *uploadService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	// Boyut kontrolü
	if header.Size > s.maxSize {
		return "", fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	// MIME type kontrolü
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// Sadece base MIME type'ı al (charset vb. parametre olabilir)
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])

	if !allowedMimeTypes[mimeBase] {
		return "", fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	safeFilename := sanitizeFilename(header.Filename)
	diskFilename := uuid.New().String() + "_" + safeFilename

	destPath := filepath.Join(s.uploadDir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		// Yarım yazılmış dosyayı temizle
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/api/uploads/" + diskFilename, nil
}

// sanitizeFilename, dosya adını güvenli hale getirir.
// Path traversal'ı önler (../../etc/passwd gibi) ve path separator'ları temizler.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
