package rest

import (
	"context"
	"net/http"
	"strconv"

	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type WishlistService interface {
	Add(ctx context.Context, userID uint, productID uint64) error
	List(ctx context.Context, userID uint) ([]domain.Product, error)
	Remove(ctx context.Context, userID uint, productID uint64) error
}

type WishlistHandler struct {
	wishlistService WishlistService
}

func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

func (h *WishlistHandler) Add(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	productId, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	if err := h.wishlistService.Add(c.Request().Context(), user_id, productId); err != nil {
		logger.Error("Failed to add wishlist item", err)
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "product already in wishlist" {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("added to wishlist"))
}

func (h *WishlistHandler) List(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	products, err := h.wishlistService.List(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to list wishlist", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	productId, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	if err := h.wishlistService.Remove(c.Request().Context(), user_id, productId); err != nil {
		logger.Error("Failed to remove wishlist item", err)
		if err.Error() == "wishlist item not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("removed from wishlist"))
}
