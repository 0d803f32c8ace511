package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/storage"

	"github.com/gin-gonic/gin"
)

// GetImage serves one uploaded image by filename.
func GetImage(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	c.File(filepath.Join(config.UploadDir, name))
}

// ListImages enumerates the uploaded images with their public URLs.
func ListImages(c *gin.Context) {
	names, err := storage.ListUploads()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list images"})
		return
	}
	images := make([]gin.H, 0, len(names))
	for _, name := range names {
		images = append(images, gin.H{
			"filename": name,
			"url":      "/uploads/" + name,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(images), "images": images})
}
