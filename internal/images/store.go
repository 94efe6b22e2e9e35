// Package images serves product images out of blob storage, independent of
// which product repository is active.
package images

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"sync"
)

var (
	// ErrNotFound is returned for every failed read, whatever the cause.
	ErrNotFound = errors.New("image not found")
	// ErrUploadFailed is returned for every failed upload, whatever the cause.
	ErrUploadFailed = errors.New("image upload failed")
)

// blobClient is the slice of the blob API the store needs. Tests substitute
// an in-memory implementation.
type blobClient interface {
	EnsureContainer(ctx context.Context) error
	List(ctx context.Context, prefix string) ([]string, error)
	Download(ctx context.Context, name string) ([]byte, error)
	Upload(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// Store addresses product images two ways: legacy exact blob names, and the
// current "{productId}.{ext}" scheme where a product's image is whichever
// blob carries its id prefix. Blob failures are logged and downgraded to
// generic outcomes; callers never see the root cause.
type Store struct {
	client blobClient

	mu      sync.Mutex
	ensured bool
}

// NewStore builds a store over the container named by the connection string.
// With no connection string (or an unusable one) the store still constructs,
// but every operation fails generically: the image endpoints degrade rather
// than block startup, and product CRUD keeps working.
func NewStore(connectionString, container string) *Store {
	if connectionString == "" {
		log.Println("blob storage not configured, image endpoints disabled")
		return &Store{}
	}
	client, err := newAzureBlobClient(connectionString, container)
	if err != nil {
		log.Println("blob storage client init failed:", err)
		return &Store{}
	}
	return &Store{client: client}
}

func newStoreWithClient(client blobClient) *Store {
	return &Store{client: client}
}

// Get fetches a blob by its exact name (legacy image paths).
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, ErrNotFound
	}
	data, err := s.client.Download(ctx, name)
	if err != nil {
		log.Printf("image download %q failed: %v", name, err)
		return nil, ErrNotFound
	}
	return data, nil
}

// GetByProductID returns the bytes and blob name of the product's image:
// the first blob whose name starts with "{id}.". When several extensions
// exist for the same id, which one wins is undefined.
func (s *Store) GetByProductID(ctx context.Context, id int) ([]byte, string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, "", ErrNotFound
	}
	names, err := s.client.List(ctx, strconv.Itoa(id)+".")
	if err != nil {
		log.Printf("image list for product %d failed: %v", id, err)
		return nil, "", ErrNotFound
	}
	if len(names) == 0 {
		return nil, "", ErrNotFound
	}
	data, err := s.client.Download(ctx, names[0])
	if err != nil {
		log.Printf("image download %q failed: %v", names[0], err)
		return nil, "", ErrNotFound
	}
	return data, names[0], nil
}

// Upload stores the product's image under "{id}{ext}", deleting any blobs
// already carrying that id prefix first. The extension comes from the
// uploaded filename, defaulting to .jpg.
func (s *Store) Upload(ctx context.Context, id int, filename string, data []byte) (string, error) {
	if err := s.ensure(ctx); err != nil {
		return "", ErrUploadFailed
	}

	existing, err := s.client.List(ctx, strconv.Itoa(id)+".")
	if err != nil {
		log.Printf("image list for product %d failed: %v", id, err)
		return "", ErrUploadFailed
	}
	for _, name := range existing {
		if err := s.client.Delete(ctx, name); err != nil {
			log.Printf("image delete %q failed: %v", name, err)
			return "", ErrUploadFailed
		}
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := strconv.Itoa(id) + ext
	if err := s.client.Upload(ctx, name, data); err != nil {
		log.Printf("image upload %q failed: %v", name, err)
		return "", ErrUploadFailed
	}
	return name, nil
}

// ensure creates the container on first use. Only success is latched; a
// failed attempt is retried on the next request, so a transient blob outage
// does not disable the image endpoints for the rest of the process.
func (s *Store) ensure(ctx context.Context) error {
	if s.client == nil {
		return errors.New("blob storage unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured {
		return nil
	}
	if err := s.client.EnsureContainer(ctx); err != nil {
		log.Println("blob container create failed:", err)
		return err
	}
	s.ensured = true
	return nil
}
