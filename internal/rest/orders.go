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

type OrdersService interface {
	GetMyOrders(ctx context.Context, userID uint) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID uint64, userID uint) (domain.Order, error)
}

type OrdersHandler struct {
	ordersService OrdersService
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
	}
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	orders, err := h.ordersService.GetMyOrders(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *OrdersHandler) GetOrder(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	orderId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	order, err := h.ordersService.GetOrder(c.Request().Context(), orderId, user_id)
	if err != nil {
		if err.Error() == "order not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get order", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
