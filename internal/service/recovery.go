package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
	"github.com/mimyohi/shop-admin-sub001/internal/store"
)

// RestoreResult reports what the recovery engine managed to reverse. The two
// flags are independent: a coupon failure never blocks the point refund and
// vice versa.
type RestoreResult struct {
	Success        bool
	CouponRestored bool
	PointsRestored bool
	Err            error
}

type recoveryOrderStore interface {
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

type couponStore interface {
	Release(ctx context.Context, id primitive.ObjectID) error
}

type pointStore interface {
	Balance(ctx context.Context, userID primitive.ObjectID) (*models.UserPoints, error)
	SaveBalance(ctx context.Context, userID primitive.ObjectID, points, totalUsed int) error
	AppendHistory(ctx context.Context, entry models.PointHistory) error
}

// RecoveryEngine reverses the financial side effects of an order: the coupon
// reservation and the point debit. Each reversal runs only when the order
// actually carries one.
//
// Restore has no already-restored guard. Releasing a coupon twice rewrites
// the same values, but refunding points twice double-credits the balance;
// callers must not invoke it again for an order they already recovered.
type RecoveryEngine struct {
	orders  recoveryOrderStore
	coupons couponStore
	points  pointStore
}

func NewRecoveryEngine(orders recoveryOrderStore, coupons couponStore, points pointStore) *RecoveryEngine {
	return &RecoveryEngine{orders: orders, coupons: coupons, points: points}
}

// Restore looks up the order and attempts both reversals. Only a failed order
// lookup short-circuits; every other failure is recorded in the flags and
// logged for manual reconciliation.
func (e *RecoveryEngine) Restore(ctx context.Context, orderNumber string) RestoreResult {
	order, err := e.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return RestoreResult{Err: fmt.Errorf("order %s lookup failed: %w", orderNumber, err)}
	}

	result := RestoreResult{Success: true}

	if order.UserCouponID != nil {
		if err := e.coupons.Release(ctx, *order.UserCouponID); err != nil {
			log.Printf("[RECOVERY] coupon release failed for order %s: %v", orderNumber, err)
		} else {
			result.CouponRestored = true
		}
	}

	if order.UsedPoints > 0 && order.UserID != nil {
		if err := e.refundPoints(ctx, order); err != nil {
			log.Printf("[RECOVERY] point refund failed for order %s: %v", orderNumber, err)
		} else {
			result.PointsRestored = true
		}
	}

	return result
}

func (e *RecoveryEngine) refundPoints(ctx context.Context, order *models.Order) error {
	currentPoints := 0
	currentTotalUsed := 0

	balance, err := e.points.Balance(ctx, *order.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if balance != nil {
		currentPoints = balance.Points
		currentTotalUsed = balance.TotalUsed
	}

	totalUsed := currentTotalUsed - order.UsedPoints
	if totalUsed < 0 {
		totalUsed = 0
	}

	if err := e.points.SaveBalance(ctx, *order.UserID, currentPoints+order.UsedPoints, totalUsed); err != nil {
		return err
	}

	return e.points.AppendHistory(ctx, models.PointHistory{
		UserID:  *order.UserID,
		Points:  order.UsedPoints,
		Type:    models.PointTypeEarn,
		Reason:  fmt.Sprintf("order %s cancelled", order.OrderNumber),
		OrderID: order.OrderNumber,
	})
}
