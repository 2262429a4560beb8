package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
	"github.com/mimyohi/shop-admin-sub001/internal/notify"
	"github.com/mimyohi/shop-admin-sub001/internal/payment"
	"github.com/mimyohi/shop-admin-sub001/internal/store"
)

// Errors surfaced to the HTTP boundary before any side effect happened.
var (
	ErrInvalidRequest  = errors.New("orderId or paymentId is required")
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentRequired = errors.New("order has a payment amount and must be cancelled through the payment gateway")
)

const defaultCancelReason = "admin request"

// ResultStatus distinguishes a clean cancellation from one that left ledger
// work behind for manual reconciliation.
type ResultStatus int

const (
	StatusCompleted ResultStatus = iota
	StatusCompletedWithWarning
)

// Warning names the piece of the cancellation that did not land. The payment
// side is already committed when these occur, so they downgrade to warnings
// instead of failing the operation.
type Warning string

const (
	WarnOrderNotFound      Warning = "order lookup failed after payment cancellation"
	WarnRecoveryFailed     Warning = "coupon/point recovery incomplete"
	WarnStatusUpdateFailed Warning = "order status update failed"
)

// CancelRequest is the orchestrator input. OrderID is the human-facing order
// number; at least one of OrderID and PaymentID must be present.
type CancelRequest struct {
	PaymentID     string
	OrderID       string
	Reason        string
	RefundAccount *payment.RefundAccount
}

// CancelResult is returned on overall success. Gateway holds the gateway's
// response payload when a payment was cancelled upstream.
type CancelResult struct {
	Status   ResultStatus
	Warnings []Warning
	Gateway  map[string]interface{}
}

func (r *CancelResult) warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
	r.Status = StatusCompletedWithWarning
}

// WarningText joins the warnings for the response body.
func (r CancelResult) WarningText() string {
	parts := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		parts = append(parts, string(w))
	}
	return strings.Join(parts, "; ")
}

type cancelOrderStore interface {
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	MarkCancelled(ctx context.Context, id primitive.ObjectID) error
}

type restorer interface {
	Restore(ctx context.Context, orderNumber string) RestoreResult
}

type paymentGateway interface {
	CancelPayment(ctx context.Context, paymentID string, params payment.CancelParams) (map[string]interface{}, error)
}

type notifier interface {
	Send(ctx context.Context, phone string, notice notify.CancelNotice) notify.Result
}

// CancelService orchestrates order cancellation: payment gateway call, coupon
// and point recovery, order status update and the customer notification.
type CancelService struct {
	orders   cancelOrderStore
	recovery restorer
	gateway  paymentGateway
	notifier notifier
}

func NewCancelService(orders cancelOrderStore, recovery restorer, gateway paymentGateway, notifier notifier) *CancelService {
	return &CancelService{orders: orders, recovery: recovery, gateway: gateway, notifier: notifier}
}

// Cancel runs one of two branches.
//
// Without a payment id the order must carry no charge: the recovery and
// status update run, and any failure there downgrades to a warning because
// the ledger recovery may already be partially applied.
//
// With a payment id the gateway is called first; a gateway rejection aborts
// with zero ledger mutation. Once the gateway accepted, the local sequence
// runs the same way, and even a missing order only produces a warning — the
// upstream cancellation cannot be rolled back from here.
func (s *CancelService) Cancel(ctx context.Context, req CancelRequest) (CancelResult, error) {
	if req.PaymentID == "" && req.OrderID == "" {
		return CancelResult{}, ErrInvalidRequest
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultCancelReason
	}

	if req.PaymentID == "" {
		order, err := s.orders.FindByNumber(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return CancelResult{}, ErrOrderNotFound
			}
			return CancelResult{}, err
		}
		if order.TotalAmount > 0 {
			return CancelResult{}, ErrPaymentRequired
		}
		return s.finalize(ctx, order, reason), nil
	}

	if req.RefundAccount != nil {
		log.Printf("[CANCEL] refund to %s %s (%s) for payment %s",
			req.RefundAccount.Bank,
			payment.MaskAccountNumber(req.RefundAccount.Number),
			req.RefundAccount.HolderName,
			req.PaymentID,
		)
	}

	payload, err := s.gateway.CancelPayment(ctx, req.PaymentID, payment.CancelParams{
		Reason:        reason,
		RefundAccount: req.RefundAccount,
	})
	if err != nil {
		return CancelResult{}, err
	}

	result := CancelResult{Status: StatusCompleted, Gateway: payload}
	if req.OrderID == "" {
		return result, nil
	}

	order, err := s.orders.FindByNumber(ctx, req.OrderID)
	if err != nil {
		log.Printf("[CANCEL] order %s lookup failed after gateway cancel: %v", req.OrderID, err)
		result.warn(WarnOrderNotFound)
		return result, nil
	}

	finalized := s.finalize(ctx, order, reason)
	for _, w := range finalized.Warnings {
		result.warn(w)
	}
	return result, nil
}

// finalize runs recovery, then the status update, then the best-effort
// notification, in that order. Recovery and status failures become warnings;
// a notification failure is logged and otherwise invisible.
func (s *CancelService) finalize(ctx context.Context, order *models.Order, reason string) CancelResult {
	result := CancelResult{Status: StatusCompleted}

	restore := s.recovery.Restore(ctx, order.OrderNumber)
	if !restoreComplete(order, restore) {
		log.Printf("[CANCEL] recovery incomplete for order %s: coupon=%t points=%t err=%v",
			order.OrderNumber, restore.CouponRestored, restore.PointsRestored, restore.Err)
		result.warn(WarnRecoveryFailed)
	}

	if err := s.orders.MarkCancelled(ctx, order.ID); err != nil {
		log.Printf("[CANCEL] status update failed for order %s: %v", order.OrderNumber, err)
		result.warn(WarnStatusUpdateFailed)
	}

	if order.UserPhone != "" {
		sent := s.notifier.Send(ctx, order.UserPhone, notify.CancelNotice{
			OrderNumber:  order.OrderNumber,
			CustomerName: order.UserName,
			TotalAmount:  order.TotalAmount,
			Reason:       reason,
		})
		if !sent.Success {
			log.Printf("[CANCEL] notification failed for order %s: %v", order.OrderNumber, sent.Err)
		}
	}

	return result
}

// restoreComplete checks the flags only for reversals the order actually
// needed.
func restoreComplete(order *models.Order, restore RestoreResult) bool {
	if !restore.Success {
		return false
	}
	if order.UserCouponID != nil && !restore.CouponRestored {
		return false
	}
	if order.UsedPoints > 0 && order.UserID != nil && !restore.PointsRestored {
		return false
	}
	return true
}
