package rest

import (
	"context"
	"net/http"
	"strconv"

	"linkFlame/business/cart"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CartService interface {
	AddItem(ctx context.Context, userID uint, productID uint64, quantity int64) error
	GetCart(ctx context.Context, userID uint) (cart.CartView, error)
	UpdateQuantity(ctx context.Context, userID uint, productID uint64, quantity int64) error
	RemoveItem(ctx context.Context, userID uint, productID uint64) error
	ClearCart(ctx context.Context, userID uint) error
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.cartService.AddItem(c.Request().Context(), user_id, req.ProductID, req.Quantity); err != nil {
		logger.Error("Failed to add cart item", err)
		if err.Error() == "quantity must be positive" || err.Error() == "not enough stock" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("item added to cart"))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	view, err := h.cartService.GetCart(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to load cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	productId, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.cartService.UpdateQuantity(c.Request().Context(), user_id, productId, req.Quantity); err != nil {
		logger.Error("Failed to update cart item", err)
		if err.Error() == "cart item not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("cart updated"))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	productId, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), user_id, productId); err != nil {
		logger.Error("Failed to remove cart item", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("item removed"))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	if err := h.cartService.ClearCart(c.Request().Context(), user_id); err != nil {
		logger.Error("Failed to clear cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("cart cleared"))
}
