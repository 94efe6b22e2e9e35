package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"product-service/internal/models"
)

// shadowIDField carries the numeric product id inside Cosmos documents.
// Cosmos requires a string "id", so the integer lives in this second field
// where ORDER BY can still compare it numerically.
const shadowIDField = "productId"

// CosmosConfig describes the partitioned container a CosmosRepository
// operates on. Every document the repository touches lives under the single
// logical partition PartitionField = PartitionValue.
type CosmosConfig struct {
	Endpoint       string
	Database       string
	Container      string
	PartitionField string
	PartitionValue string
}

// CosmosRepository stores products in a partitioned Cosmos DB container.
// The container's native string key and the partition assignment are
// internal; documents are translated to and from the application model at
// the repository boundary.
type CosmosRepository struct {
	container      *azcosmos.ContainerClient
	partitionField string
	partitionValue string
}

// NewCosmosRepository connects to the given account and makes sure the
// database and partitioned container exist. Creation is idempotent: a 409
// from either create call means another instance got there first.
func NewCosmosRepository(ctx context.Context, cfg CosmosConfig, cred azcore.TokenCredential) (*CosmosRepository, error) {
	client, err := azcosmos.NewClient(cfg.Endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create cosmos client: %w", err)
	}

	if _, err := client.CreateDatabase(ctx, azcosmos.DatabaseProperties{ID: cfg.Database}, nil); err != nil && !hasStatus(err, http.StatusConflict) {
		return nil, fmt.Errorf("create database %q: %w", cfg.Database, err)
	}
	database, err := client.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", cfg.Database, err)
	}

	properties := azcosmos.ContainerProperties{
		ID: cfg.Container,
		PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
			Paths: []string{"/" + cfg.PartitionField},
		},
	}
	if _, err := database.CreateContainer(ctx, properties, nil); err != nil && !hasStatus(err, http.StatusConflict) {
		return nil, fmt.Errorf("create container %q: %w", cfg.Container, err)
	}
	container, err := database.NewContainer(cfg.Container)
	if err != nil {
		return nil, fmt.Errorf("open container %q: %w", cfg.Container, err)
	}

	return &CosmosRepository{
		container:      container,
		partitionField: cfg.PartitionField,
		partitionValue: cfg.PartitionValue,
	}, nil
}

func (r *CosmosRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)

	pager := r.container.NewQueryItemsPager("SELECT * FROM c", r.partitionKey(), nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query products: %w", err)
		}
		for _, raw := range page.Items {
			product, err := r.decode(raw)
			if err != nil {
				return nil, err
			}
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *CosmosRepository) GetOne(ctx context.Context, id int) (*models.Product, error) {
	response, err := r.container.ReadItem(ctx, r.partitionKey(), strconv.Itoa(id), nil)
	if hasStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read product %d: %w", id, err)
	}

	product, err := r.decode(response.Value)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CosmosRepository) Add(ctx context.Context, product models.Product) (*models.Product, error) {
	next, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	product.ID = next

	raw, err := r.encode(product)
	if err != nil {
		return nil, err
	}
	if _, err := r.container.CreateItem(ctx, r.partitionKey(), raw, nil); err != nil {
		return nil, fmt.Errorf("create product %d: %w", product.ID, err)
	}
	return &product, nil
}

func (r *CosmosRepository) Update(ctx context.Context, product models.Product) (*models.Product, error) {
	// Existence check and upsert are two round-trips with no isolation: a
	// delete landing in between resurrects the id. Accepted limitation.
	existing, err := r.GetOne(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	raw, err := r.encode(product)
	if err != nil {
		return nil, err
	}
	if _, err := r.container.UpsertItem(ctx, r.partitionKey(), raw, nil); err != nil {
		return nil, fmt.Errorf("upsert product %d: %w", product.ID, err)
	}
	return &product, nil
}

func (r *CosmosRepository) Delete(ctx context.Context, id int) (bool, error) {
	_, err := r.container.DeleteItem(ctx, r.partitionKey(), strconv.Itoa(id), nil)
	if hasStatus(err, http.StatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	return true, nil
}

func (r *CosmosRepository) Count(ctx context.Context) (int64, error) {
	pager := r.container.NewQueryItemsPager("SELECT VALUE COUNT(1) FROM c", r.partitionKey(), nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("count products: %w", err)
		}
		if len(page.Items) > 0 {
			var count int64
			if err := json.Unmarshal(page.Items[0], &count); err != nil {
				return 0, fmt.Errorf("decode count: %w", err)
			}
			return count, nil
		}
	}
	return 0, nil
}

func (r *CosmosRepository) SeedMany(ctx context.Context, products []models.Product) error {
	for _, product := range products {
		raw, err := r.encode(product)
		if err != nil {
			return err
		}
		if _, err := r.container.CreateItem(ctx, r.partitionKey(), raw, nil); err != nil {
			return fmt.Errorf("seed product %d: %w", product.ID, err)
		}
	}
	return nil
}

// nextID finds the highest assigned id in the partition and returns the
// successor, or 1 when the partition is empty. Read-then-write by design.
func (r *CosmosRepository) nextID(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT TOP 1 * FROM c ORDER BY c.%s DESC", shadowIDField)
	pager := r.container.NewQueryItemsPager(query, r.partitionKey(), nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("query max id: %w", err)
		}
		if len(page.Items) > 0 {
			last, err := r.decode(page.Items[0])
			if err != nil {
				return 0, err
			}
			return last.ID + 1, nil
		}
	}
	return 1, nil
}

func (r *CosmosRepository) partitionKey() azcosmos.PartitionKey {
	return azcosmos.NewPartitionKeyString(r.partitionValue)
}

// toStorage translates a product into its stored document form: the numeric
// id is copied into the shadow field, the native "id" becomes its string
// form, and the partition assignment is injected.
func (r *CosmosRepository) toStorage(product models.Product) (map[string]any, error) {
	raw, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("marshal product %d: %w", product.ID, err)
	}
	doc := make(map[string]any)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal product %d: %w", product.ID, err)
	}

	doc[shadowIDField] = product.ID
	doc["id"] = strconv.Itoa(product.ID)
	doc[r.partitionField] = r.partitionValue
	return doc, nil
}

// fromStorage undoes toStorage: Cosmos system fields (underscore-prefixed)
// are dropped, the integer id is restored from the shadow field, and the
// shadow and partition fields are removed.
func (r *CosmosRepository) fromStorage(doc map[string]any) (models.Product, error) {
	for field := range doc {
		if strings.HasPrefix(field, "_") {
			delete(doc, field)
		}
	}
	if shadow, ok := doc[shadowIDField]; ok {
		doc["id"] = shadow
	}
	delete(doc, shadowIDField)
	delete(doc, r.partitionField)

	raw, err := json.Marshal(doc)
	if err != nil {
		return models.Product{}, fmt.Errorf("marshal document: %w", err)
	}
	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return models.Product{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return product, nil
}

func (r *CosmosRepository) encode(product models.Product) ([]byte, error) {
	doc, err := r.toStorage(product)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document %d: %w", product.ID, err)
	}
	return raw, nil
}

func (r *CosmosRepository) decode(raw []byte) (models.Product, error) {
	doc := make(map[string]any)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Product{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return r.fromStorage(doc)
}

// hasStatus reports whether err is an Azure response error with the given
// HTTP status code.
func hasStatus(err error, status int) bool {
	var responseErr *azcore.ResponseError
	return errors.As(err, &responseErr) && responseErr.StatusCode == status
}
