package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"product-service/internal/models"
	"product-service/internal/repository"
)

// Error bodies are plain text; the store-front and store-admin clients
// match on these exact strings.
const (
	msgNotFound     = "Product not found"
	msgInvalidInput = "Invalid input"
)

type ProductHandler struct {
	repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// GET /
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}

	product, err := h.repo.GetOne(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to fetch product")
		return
	}
	if product == nil {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.String(http.StatusBadRequest, msgInvalidInput)
		return
	}

	created, err := h.repo.Add(c.Request.Context(), product)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to create product")
		return
	}
	c.JSON(http.StatusOK, created)
}

// PUT /
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.String(http.StatusBadRequest, msgInvalidInput)
		return
	}
	if product.ID == 0 {
		c.String(http.StatusBadRequest, msgInvalidInput)
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), product)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to update product")
		return
	}
	if updated == nil {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to delete product")
		return
	}
	if !deleted {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// Health answers GET/HEAD /health with the running version.
func Health(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	}
}
