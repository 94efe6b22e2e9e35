package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	msgImageNotFound  = "Image not found"
	msgUploadRequired = "File and productId required"
	msgUploadFailed   = "Upload failed"
)

// ImageStore is what the image endpoints need from blob storage. The images
// package provides the Azure implementation; tests substitute fakes.
type ImageStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	GetByProductID(ctx context.Context, id int) ([]byte, string, error)
	Upload(ctx context.Context, id int, filename string, data []byte) (string, error)
}

type ImageHandler struct {
	store ImageStore
}

func NewImageHandler(store ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// POST /upload
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, msgUploadRequired)
		return
	}
	defer file.Close()

	id, err := strconv.Atoi(c.PostForm("productId"))
	if err != nil {
		c.String(http.StatusBadRequest, msgUploadRequired)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusInternalServerError, msgUploadFailed)
		return
	}

	name, err := h.store.Upload(c.Request.Context(), id, header.Filename, data)
	if err != nil {
		c.String(http.StatusInternalServerError, msgUploadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "uploaded", "filename": name})
}

// GET /:id/image
func (h *ImageHandler) GetImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, msgImageNotFound)
		return
	}

	data, name, err := h.store.GetByProductID(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, msgImageNotFound)
		return
	}
	c.Data(http.StatusOK, imageMIMEType(name), data)
}

// GET /images/:filename serves legacy exact-name lookups, for catalog
// entries whose image field still holds a path.
func (h *ImageHandler) GetLegacyImage(c *gin.Context) {
	name := c.Param("filename")
	data, err := h.store.Get(c.Request.Context(), name)
	if err != nil {
		c.String(http.StatusNotFound, msgImageNotFound)
		return
	}
	c.Data(http.StatusOK, imageMIMEType(name), data)
}

// imageMIMEType infers the content type from the blob name's extension.
// Unknown extensions fall back to image/jpeg, the catalog's default format.
func imageMIMEType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "image/jpeg"
}
