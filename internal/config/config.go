package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Recognized values for DB_BACKEND.
const (
	BackendMongo  = "mongo"
	BackendCosmos = "cosmos"
)

type Config struct {
	DBBackend string

	MongoURI        string
	MongoDB         string
	MongoCollection string

	CosmosEndpoint       string
	CosmosDB             string
	CosmosContainer      string
	CosmosPartitionKey   string
	CosmosPartitionValue string
	UseWorkloadIdentity  bool

	BlobConnStr   string
	BlobContainer string

	Port    string
	Version string
}

func LoadConfig() *Config {
	// .env only exists in local development; deployed environments inject
	// real environment variables.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		}
	}

	return &Config{
		DBBackend: getEnv("DB_BACKEND", BackendMongo),

		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "productdb"),
		MongoCollection: getEnv("MONGO_COLLECTION", "products"),

		CosmosEndpoint:       getEnv("COSMOS_ENDPOINT", ""),
		CosmosDB:             getEnv("COSMOS_DB", "productdb"),
		CosmosContainer:      getEnv("COSMOS_CONTAINER", "products"),
		CosmosPartitionKey:   getEnv("COSMOS_PARTITION_KEY", "storeId"),
		CosmosPartitionValue: getEnv("COSMOS_PARTITION_VALUE", "pets"),
		UseWorkloadIdentity:  getEnv("USE_WORKLOAD_IDENTITY", "") == "true",

		BlobConnStr:   getEnv("BLOB_CONN_STR", ""),
		BlobContainer: getEnv("BLOB_CONTAINER", "product-images"),

		Port:    getEnv("PORT", "3002"),
		Version: getEnv("APP_VERSION", "0.1.0"),
	}
}

// Validate rejects configurations the service cannot start with. Backend
// failures at runtime are per-request concerns; these are not.
func (c *Config) Validate() error {
	switch c.DBBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when DB_BACKEND=%s", BackendMongo)
		}
	case BackendCosmos:
		if c.CosmosEndpoint == "" {
			return fmt.Errorf("COSMOS_ENDPOINT is required when DB_BACKEND=%s", BackendCosmos)
		}
		if c.CosmosPartitionKey == "" {
			return fmt.Errorf("COSMOS_PARTITION_KEY is required when DB_BACKEND=%s", BackendCosmos)
		}
	default:
		return fmt.Errorf("unknown DB_BACKEND %q", c.DBBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
