package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-service/internal/images"
)

// fakeImageStore records the last upload and serves a single canned image.
type fakeImageStore struct {
	data     []byte
	blobName string

	uploadedID   int
	uploadedName string
	uploadErr    error
}

func (f *fakeImageStore) Get(_ context.Context, name string) ([]byte, error) {
	if name != f.blobName {
		return nil, images.ErrNotFound
	}
	return f.data, nil
}

func (f *fakeImageStore) GetByProductID(_ context.Context, id int) ([]byte, string, error) {
	if f.blobName == "" || id != f.uploadedID {
		return nil, "", images.ErrNotFound
	}
	return f.data, f.blobName, nil
}

func (f *fakeImageStore) Upload(_ context.Context, id int, filename string, data []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedID = id
	f.uploadedName = filename
	f.blobName = "7.png"
	f.data = data
	return f.blobName, nil
}

func newImageRouter(store ImageStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewImageHandler(store)
	router.POST("/upload", h.UploadImage)
	router.GET("/:id/image", h.GetImage)
	router.GET("/images/:filename", h.GetLegacyImage)
	return router
}

func multipartUpload(t *testing.T, productID, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if productID != "" {
		require.NoError(t, writer.WriteField("productId", productID))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadThenFetchImage(t *testing.T) {
	store := &fakeImageStore{}
	router := newImageRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartUpload(t, "7", "photo.png", []byte("png-bytes")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"uploaded","filename":"7.png"}`, w.Body.String())
	assert.Equal(t, 7, store.uploadedID)
	assert.Equal(t, "photo.png", store.uploadedName)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/7/image", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte("png-bytes"), w.Body.Bytes())
}

func TestUploadMissingParts(t *testing.T) {
	router := newImageRouter(&fakeImageStore{})

	tests := []struct {
		name      string
		productID string
		filename  string
	}{
		{name: "no file", productID: "7"},
		{name: "no productId", filename: "photo.png"},
		{name: "non-numeric productId", productID: "seven", filename: "photo.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartUpload(t, tc.productID, tc.filename, []byte("x")))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "File and productId required", w.Body.String())
		})
	}
}

func TestUploadBackendFailure(t *testing.T) {
	store := &fakeImageStore{uploadErr: errors.New("storage unreachable")}
	router := newImageRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartUpload(t, "7", "photo.png", []byte("x")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Upload failed", w.Body.String())
}

func TestGetImageAbsent(t *testing.T) {
	router := newImageRouter(&fakeImageStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/9/image", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Image not found", w.Body.String())
}

func TestLegacyImageLookup(t *testing.T) {
	store := &fakeImageStore{blobName: "laptop_x1.jpg", data: []byte("jpeg-bytes")}
	router := newImageRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/laptop_x1.jpg", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte("jpeg-bytes"), w.Body.Bytes())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/unknown.jpg", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
