package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Extensions accepted for post attachments
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// ImageStore persists uploaded post images on local disk. Only the
// sanitized filename is handed back to be stored on the post row.
type ImageStore struct {
	dir      string
	maxBytes int64
}

func NewImageStore(dir string, maxBytes int64) *ImageStore {
	return &ImageStore{dir: dir, maxBytes: maxBytes}
}

// Save writes the uploaded file and returns the stored filename.
// A disallowed extension or an oversize file returns ("", nil): the post
// is still created, just without an image. Only actual I/O problems
// surface as errors.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !allowedImageExtension(header.Filename) {
		return "", nil
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return "", nil
	}

	filename := SanitizeFilename(header.Filename)
	if filename == "" {
		return "", nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return filename, nil
}

// Dir returns the storage directory, used to serve the files statically.
func (s *ImageStore) Dir() string {
	return s.dir
}

func allowedImageExtension(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename reduces a client-supplied filename to a safe storage
// key: path components are dropped, anything outside [A-Za-z0-9._-]
// becomes "_", and leading dots are stripped so the result can never
// climb out of the storage dir or hide as a dotfile.
func SanitizeFilename(name string) string {
	// Client may send Windows-style paths, Base only splits on "/"
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")

	if name == "" || name == "_" {
		return ""
	}
	return name
}
