package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mimyohi/shop-admin-sub001/internal/payment"
	"github.com/mimyohi/shop-admin-sub001/internal/service"
)

type refundAccountRequest struct {
	Bank       string `json:"bank" binding:"required"`
	Number     string `json:"number" binding:"required"`
	HolderName string `json:"holderName" binding:"required"`
}

type cancelOrderRequest struct {
	PaymentID     string                `json:"paymentId"`
	OrderID       string                `json:"orderId"`
	Reason        string                `json:"reason"`
	RefundAccount *refundAccountRequest `json:"refundAccount"`
}

// OrderCanceller is implemented by service.CancelService.
type OrderCanceller interface {
	Cancel(ctx context.Context, req service.CancelRequest) (service.CancelResult, error)
}

/*
POST /admin/api/orders/cancel

200 {success, message, data?}           clean cancellation
200 {success, message, warning}         payment cancelled, ledger work left over
400 {error}                             validation / no-payment mismatch
<gateway status> {error}                gateway rejection, passed through verbatim
500 {error}                             unexpected failure

404 is never returned here: once the gateway accepted the cancellation a
missing order must not look like a failed request.
*/
func CancelOrder(svc OrderCanceller) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/orders/cancel"
		defer handlePanic(c, route)

		var req cancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		cancelReq := service.CancelRequest{
			PaymentID: strings.TrimSpace(req.PaymentID),
			OrderID:   strings.TrimSpace(req.OrderID),
			Reason:    req.Reason,
		}
		if req.RefundAccount != nil {
			cancelReq.RefundAccount = &payment.RefundAccount{
				Bank:       strings.TrimSpace(req.RefundAccount.Bank),
				Number:     strings.TrimSpace(req.RefundAccount.Number),
				HolderName: strings.TrimSpace(req.RefundAccount.HolderName),
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		result, err := svc.Cancel(ctx, cancelReq)
		if err != nil {
			var gatewayErr *payment.GatewayError
			switch {
			case errors.As(err, &gatewayErr):
				log.Printf("[%s] gateway rejected payment %s: %d %s",
					route, cancelReq.PaymentID, gatewayErr.StatusCode, gatewayErr.Message)
				c.JSON(gatewayErr.StatusCode, gin.H{"error": gatewayErr.Message})
			case errors.Is(err, service.ErrInvalidRequest),
				errors.Is(err, service.ErrOrderNotFound),
				errors.Is(err, service.ErrPaymentRequired):
				respondWithError(c, http.StatusBadRequest, route, err.Error())
			default:
				log.Printf("[%s] cancel failed: %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			}
			return
		}

		body := gin.H{"success": true, "message": "order cancelled"}
		if result.Gateway != nil {
			body["message"] = "payment cancelled"
			body["data"] = result.Gateway
		}
		if result.Status == service.StatusCompletedWithWarning {
			body["warning"] = result.WarningText()
		}
		c.JSON(http.StatusOK, body)
	}
}
