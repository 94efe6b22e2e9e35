package routes

import (
	"github.com/gin-gonic/gin"

	"product-service/internal/handlers"
	"product-service/internal/repository"
)

func RegisterRoutes(router *gin.Engine, repo repository.ProductRepository, store handlers.ImageStore, version string) {
	h := handlers.NewProductHandler(repo)
	img := handlers.NewImageHandler(store)

	router.GET("/health", handlers.Health(version))
	router.HEAD("/health", handlers.Health(version))

	router.GET("/", h.GetProducts)
	router.POST("/", h.CreateProduct)
	router.PUT("/", h.UpdateProduct)
	router.GET("/:id", h.GetProduct)
	router.DELETE("/:id", h.DeleteProduct)

	router.POST("/upload", img.UploadImage)
	router.GET("/:id/image", img.GetImage)
	router.GET("/images/:filename", img.GetLegacyImage)
}
