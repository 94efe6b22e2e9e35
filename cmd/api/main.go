package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"product-service/internal/config"
	"product-service/internal/database"
	"product-service/internal/images"
	"product-service/internal/repository"
	"product-service/internal/routes"
	"product-service/internal/seed"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run carries the whole lifecycle so deferred cleanups fire on every exit
// path; log.Fatal in main would skip them.
func run() error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	repo, cleanup, err := buildRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage backend init failed: %w", err)
	}
	defer cleanup()

	store := images.NewStore(cfg.BlobConnStr, cfg.BlobContainer)

	if err := seed.EnsureSeeded(ctx, repo); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	router := gin.Default()
	router.Use(cors.Default())
	routes.RegisterRoutes(router, repo, store, cfg.Version)

	log.Println("🚀 Server running on port", cfg.Port)
	return router.Run(":" + cfg.Port)
}

// buildRepository constructs the configured backend. The underlying client
// handles are created once here and live for the whole process.
func buildRepository(ctx context.Context, cfg *config.Config) (repository.ProductRepository, func(), error) {
	switch cfg.DBBackend {
	case config.BackendMongo:
		client, err := database.Connect(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		collection := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Println("mongo disconnect failed:", err)
			}
		}
		return repository.NewMongoRepository(collection), cleanup, nil

	case config.BackendCosmos:
		credential, err := newCredential(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("cosmos credential: %w", err)
		}
		repo, err := repository.NewCosmosRepository(ctx, repository.CosmosConfig{
			Endpoint:       cfg.CosmosEndpoint,
			Database:       cfg.CosmosDB,
			Container:      cfg.CosmosContainer,
			PartitionField: cfg.CosmosPartitionKey,
			PartitionValue: cfg.CosmosPartitionValue,
		}, credential)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown database backend %q", cfg.DBBackend)
}

func newCredential(cfg *config.Config) (azcore.TokenCredential, error) {
	if cfg.UseWorkloadIdentity {
		return azidentity.NewWorkloadIdentityCredential(nil)
	}
	return azidentity.NewDefaultAzureCredential(nil)
}
