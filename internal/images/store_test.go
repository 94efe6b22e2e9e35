package images

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBlob is an in-memory blobClient. ensureFailures makes the next N
// container creations fail, mimicking a transient outage.
type fakeBlob struct {
	blobs map[string][]byte

	ensureFailures int
	listErr        error
	downloadErr    error
	uploadErr      error
	deleteErr      error

	ensured int
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{blobs: make(map[string][]byte)}
}

func (f *fakeBlob) EnsureContainer(_ context.Context) error {
	f.ensured++
	if f.ensureFailures > 0 {
		f.ensureFailures--
		return errors.New("container create failed")
	}
	return nil
}

func (f *fakeBlob) List(_ context.Context, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var names []string
	for name := range f.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeBlob) Download(_ context.Context, name string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	data, ok := f.blobs[name]
	if !ok {
		return nil, errors.New("blob does not exist")
	}
	return data, nil
}

func (f *fakeBlob) Upload(_ context.Context, name string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.blobs[name] = data
	return nil
}

func (f *fakeBlob) Delete(_ context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.blobs, name)
	return nil
}

func TestUploadNamesBlobAfterProductID(t *testing.T) {
	blob := newFakeBlob()
	store := newStoreWithClient(blob)

	name, err := store.Upload(context.Background(), 7, "photo.png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "7.png", name)
	assert.Equal(t, []byte("png-bytes"), blob.blobs["7.png"])
}

func TestUploadDefaultsExtensionToJpg(t *testing.T) {
	blob := newFakeBlob()
	store := newStoreWithClient(blob)

	name, err := store.Upload(context.Background(), 7, "photo", []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "7.jpg", name)
}

func TestUploadReplacesExistingImage(t *testing.T) {
	blob := newFakeBlob()
	store := newStoreWithClient(blob)
	ctx := context.Background()

	_, err := store.Upload(ctx, 7, "photo.png", []byte("old"))
	require.NoError(t, err)

	name, err := store.Upload(ctx, 7, "photo.gif", []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, "7.gif", name)

	_, ok := blob.blobs["7.png"]
	assert.False(t, ok, "previous extension must be deleted")

	_, err = store.Get(ctx, "7.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByProductIDMatchesPrefixOnly(t *testing.T) {
	blob := newFakeBlob()
	blob.blobs["10.png"] = []byte("ten")
	blob.blobs["1.png"] = []byte("one")
	store := newStoreWithClient(blob)

	data, name, err := store.GetByProductID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "1.png", name, `prefix "1." must not match "10.png"`)
	assert.Equal(t, []byte("one"), data)
}

func TestGetByProductIDAbsent(t *testing.T) {
	store := newStoreWithClient(newFakeBlob())

	_, _, err := store.GetByProductID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlobFailuresAreDowngraded(t *testing.T) {
	ctx := context.Background()

	t.Run("list failure on upload", func(t *testing.T) {
		blob := newFakeBlob()
		blob.listErr = errors.New("network down")
		store := newStoreWithClient(blob)

		_, err := store.Upload(ctx, 7, "photo.png", []byte("x"))
		assert.ErrorIs(t, err, ErrUploadFailed)
	})

	t.Run("download failure on read", func(t *testing.T) {
		blob := newFakeBlob()
		blob.blobs["7.png"] = []byte("x")
		blob.downloadErr = errors.New("auth expired")
		store := newStoreWithClient(blob)

		_, _, err := store.GetByProductID(ctx, 7)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete failure on replace", func(t *testing.T) {
		blob := newFakeBlob()
		blob.blobs["7.png"] = []byte("x")
		blob.deleteErr = errors.New("forbidden")
		store := newStoreWithClient(blob)

		_, err := store.Upload(ctx, 7, "photo.gif", []byte("y"))
		assert.ErrorIs(t, err, ErrUploadFailed)
	})
}

func TestContainerCreateRetriedAfterFailure(t *testing.T) {
	blob := newFakeBlob()
	blob.ensureFailures = 1
	store := newStoreWithClient(blob)
	ctx := context.Background()

	_, err := store.Upload(ctx, 7, "photo.png", []byte("png-bytes"))
	require.ErrorIs(t, err, ErrUploadFailed)

	// Once the outage clears the next request must succeed; the first
	// failure is not latched.
	name, err := store.Upload(ctx, 7, "photo.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "7.png", name)
	assert.Equal(t, 2, blob.ensured)

	_, _, err = store.GetByProductID(ctx, 7)
	assert.NoError(t, err)
}

func TestContainerCreatedOnceOnFirstUse(t *testing.T) {
	blob := newFakeBlob()
	store := newStoreWithClient(blob)
	ctx := context.Background()

	_, _ = store.Upload(ctx, 1, "a.png", []byte("x"))
	_, _, _ = store.GetByProductID(ctx, 1)
	_, _ = store.Get(ctx, "1.png")

	assert.Equal(t, 1, blob.ensured)
}

func TestUnconfiguredStoreFailsGenerically(t *testing.T) {
	store := NewStore("", "product-images")
	ctx := context.Background()

	_, err := store.Get(ctx, "anything.jpg")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = store.GetByProductID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Upload(ctx, 1, "a.png", []byte("x"))
	assert.ErrorIs(t, err, ErrUploadFailed)
}
