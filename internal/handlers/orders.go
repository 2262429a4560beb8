package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
	"github.com/mimyohi/shop-admin-sub001/internal/store"
)

// OrderDirectory is implemented by store.Orders.
type OrderDirectory interface {
	List(ctx context.Context, f store.OrderListFilter) ([]models.Order, int64, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

// GetOrders lists orders for the admin console, newest first.
func GetOrders(orders OrderDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		start, err := parseDateParam(c.Query("startDate"), false)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		end, err := parseDateParam(c.Query("endDate"), true)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := store.OrderListFilter{
			Status: strings.TrimSpace(c.Query("status")),
			Start:  start,
			End:    end,
			Page:   page,
			Limit:  limit,
		}

		list, total, err := orders.List(c.Request.Context(), filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		c.JSON(http.StatusOK, gin.H{
			"data": list,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

// GetOrderByNumber returns one order for the console's cancel dialog.
func GetOrderByNumber(orders OrderDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/:orderNumber"
		defer handlePanic(c, route)

		orderNumber := strings.TrimSpace(c.Param("orderNumber"))
		if orderNumber == "" {
			respondWithError(c, http.StatusBadRequest, route, "orderNumber required")
			return
		}

		order, err := orders.FindByNumber(c.Request.Context(), orderNumber)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
