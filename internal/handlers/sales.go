package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
	"github.com/mimyohi/shop-admin-sub001/internal/service"
)

// SalesAggregator is implemented by service.SalesService.
type SalesAggregator interface {
	Aggregate(ctx context.Context, start, end *time.Time) ([]models.ProductSales, error)
}

/*
GET /admin/api/sales?startDate=...&endDate=...

Both bounds optional, RFC3339 or plain date. A plain-date endDate covers the
whole day so the window stays inclusive on both ends.
*/
func GetSales(svc SalesAggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/sales"
		defer handlePanic(c, route)

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

		results, err := svc.Aggregate(c.Request.Context(), start, end)
		if err != nil {
			if errors.Is(err, service.ErrAggregationFailed) {
				log.Printf("[%s] %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "sales aggregation failed")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": results})
	}
}

// parseDateParam accepts RFC3339 timestamps and plain dates. For an end bound
// a plain date is pushed to the last instant of that day.
func parseDateParam(raw string, endOfDay bool) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
