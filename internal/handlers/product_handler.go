package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/services"
)

// ProductHandler serves the subcategories nested under a category.
type ProductHandler struct {
	productService services.ProductServicer
	auditService   services.AuditServicer
}

func NewProductHandler(productService services.ProductServicer, auditService services.AuditServicer) *ProductHandler {
	return &ProductHandler{productService: productService, auditService: auditService}
}

type ProductQuery struct {
	Category string `form:"category" binding:"required,max=100"`
}

type CreateProductRequest struct {
	Category string `json:"category" binding:"required,max=100" example:"FOOD"`
	Product  string `json:"product" binding:"required,max=100" example:"Lunch"`
}

// GetCategoryProducts lists the subcategories of a category
// @Summary     List subcategories
// @Tags        products
// @Produce     json
// @Param       userId   path  int    true "User ID"
// @Param       category query string true "Category name (case-insensitive)"
// @Success     200 {array}  models.Product
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users/{userId}/products [get]
func (h *ProductHandler) GetCategoryProducts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ProductQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	products, err := h.productService.GetCategoryProducts(userID, q.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct adds a subcategory. An existing one is returned with 200.
// @Summary     Create a subcategory
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       userId  path int                  true "User ID"
// @Param       request body CreateProductRequest true "Subcategory"
// @Success     201 {object} models.Product "Created"
// @Success     200 {object} models.Product "Already existed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users/{userId}/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, created, err := h.productService.CreateProduct(userID, req.Category, req.Product)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"product": product})
		return
	}

	h.auditService.Log(userID, "CREATE", "product", product.ID, c.ClientIP(),
		map[string]any{"category": product.Category, "product": product.Product})

	c.JSON(http.StatusCreated, gin.H{"product": product})
}
