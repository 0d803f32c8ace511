// Package storage persists uploaded images on local disk. The rest of
// the system only ever sees the relative path, never the bytes.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/asharbutt0314/foodexpress/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EnsureUploadDir creates the upload directory if it does not exist.
func EnsureUploadDir() error {
	return os.MkdirAll(config.UploadDir, 0o755)
}

// SaveUpload stores the named multipart file field and returns the
// public "/uploads/..." path, or "" when the field is absent.
func SaveUpload(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// No file in the request is not an error for optional uploads.
		return "", nil
	}
	if err := EnsureUploadDir(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s", uuid.NewString(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(config.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// ListUploads returns the filenames currently in the upload directory.
func ListUploads() ([]string, error) {
	entries, err := os.ReadDir(config.UploadDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
