package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"linkFlame/domain"
	"linkFlame/pkg/logger"
	"linkFlame/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	SearchProducts(ctx context.Context, filter domain.CatalogFilter) (domain.ProductPage, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type CatalogHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type ListProductsQuery struct {
	Search        string  `query:"search"`
	Category      string  `query:"category"`
	MinPrice      float64 `query:"min_price" validate:"gte=0"`
	MaxPrice      float64 `query:"max_price" validate:"gte=0"`
	MinRating     float64 `query:"min_rating" validate:"gte=0,lte=5"`
	GreenOnly     bool    `query:"green_only"`
	CreatedAfter  string  `query:"created_after"`
	CreatedBefore string  `query:"created_before"`
	Sort          string  `query:"sort"`
	Page          int     `query:"page"`
	PageSize      int     `query:"page_size"`
}

type CreateProductRequest struct {
	SKU             string  `json:"sku"`
	ProductName     string  `json:"product_name" validate:"required"`
	Description     string  `json:"description"`
	CategoryID      uint64  `json:"category_id"`
	ProductCategory string  `json:"product_category" validate:"required"`
	IsGreenTag      bool    `json:"is_green_tag"`
	CO2SavedGrams   int64   `json:"co2_saved_grams" validate:"gte=0"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	SalePrice       float64 `json:"sale_price" validate:"gte=0"`
	Stock           int64   `json:"stock" validate:"gte=0"`
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	started := time.Now()

	var q ListProductsQuery
	if err := c.Bind(&q); err != nil {
		logger.Error("Failed to bind catalog query", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	filter := domain.CatalogFilter{
		Search:    q.Search,
		Category:  q.Category,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.MinRating,
		GreenOnly: q.GreenOnly,
		Sort:      q.Sort,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}

	if q.CreatedAfter != "" {
		t, err := time.Parse(time.RFC3339, q.CreatedAfter)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "created_after must be RFC3339"})
		}
		filter.CreatedAfter = t
	}
	if q.CreatedBefore != "" {
		t, err := time.Parse(time.RFC3339, q.CreatedBefore)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "created_before must be RFC3339"})
		}
		filter.CreatedBefore = t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.catalogService.SearchProducts(ctx, filter)
	if err != nil {
		logger.Error("Failed to search products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.CatalogQueryLatency.Observe(time.Since(started).Seconds())

	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) GetProductByID(c echo.Context) error {
	productId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.catalogService.GetProductByID(ctx, productId)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		SKU:             req.SKU,
		ProductName:     req.ProductName,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		ProductCategory: req.ProductCategory,
		IsGreenTag:      req.IsGreenTag,
		CO2SavedGrams:   req.CO2SavedGrams,
		Price:           req.Price,
		SalePrice:       req.SalePrice,
		Stock:           req.Stock,
	}

	newProduct, err := h.catalogService.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create Product", err)
		if err.Error() == "product name is required" ||
			err.Error() == "product category is required" ||
			err.Error() == "price must be greater than 0" ||
			err.Error() == "stock cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product successfully created",
		"product": newProduct,
	})
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	productId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ID:              productId,
		SKU:             req.SKU,
		ProductName:     req.ProductName,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		ProductCategory: req.ProductCategory,
		IsGreenTag:      req.IsGreenTag,
		CO2SavedGrams:   req.CO2SavedGrams,
		Price:           req.Price,
		SalePrice:       req.SalePrice,
		Stock:           req.Stock,
	}

	updateProduct, err := h.catalogService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update Product", err)
		if err.Error() == "product not found" || err.Error() == "product not found or already deleted" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "product ID is required" ||
			err.Error() == "product name is required" ||
			err.Error() == "price must be greater than 0" ||
			err.Error() == "stock cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updateProduct,
	})
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	productId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteProduct(ctx, productId); err != nil {
		logger.Error("Failed to delete Product", err)
		if err.Error() == "product not found" || err.Error() == "invalid product id" ||
			err.Error() == "product not found or already deleted" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productId,
	})
}
