package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
	"github.com/mimyohi/shop-admin-sub001/internal/notify"
	"github.com/mimyohi/shop-admin-sub001/internal/payment"
	"github.com/mimyohi/shop-admin-sub001/internal/store"
)

var errTest = errors.New("boom")

type stubOrders struct {
	orders  map[string]*models.Order
	findErr error
	markErr error

	findCalls int
	marked    []primitive.ObjectID

	list      []models.Order
	listErr   error
	listStart *time.Time
	listEnd   *time.Time
}

func (s *stubOrders) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	order, ok := s.orders[orderNumber]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrders) MarkCancelled(_ context.Context, id primitive.ObjectID) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, id)
	return nil
}

func (s *stubOrders) ListCreatedBetween(_ context.Context, start, end *time.Time) ([]models.Order, error) {
	s.listStart = start
	s.listEnd = end
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

type stubCoupons struct {
	releaseErr error
	released   []primitive.ObjectID
}

func (s *stubCoupons) Release(_ context.Context, id primitive.ObjectID) error {
	if s.releaseErr != nil {
		return s.releaseErr
	}
	s.released = append(s.released, id)
	return nil
}

type savedBalance struct {
	userID    primitive.ObjectID
	points    int
	totalUsed int
}

type stubPoints struct {
	balances   map[primitive.ObjectID]*models.UserPoints
	balanceErr error
	saveErr    error
	historyErr error

	saved   []savedBalance
	history []models.PointHistory
}

func (s *stubPoints) Balance(_ context.Context, userID primitive.ObjectID) (*models.UserPoints, error) {
	if s.balanceErr != nil {
		return nil, s.balanceErr
	}
	balance, ok := s.balances[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *balance
	return &copied, nil
}

func (s *stubPoints) SaveBalance(_ context.Context, userID primitive.ObjectID, points, totalUsed int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, savedBalance{userID: userID, points: points, totalUsed: totalUsed})
	if s.balances == nil {
		s.balances = map[primitive.ObjectID]*models.UserPoints{}
	}
	s.balances[userID] = &models.UserPoints{UserID: userID, Points: points, TotalUsed: totalUsed}
	return nil
}

func (s *stubPoints) AppendHistory(_ context.Context, entry models.PointHistory) error {
	if s.historyErr != nil {
		return s.historyErr
	}
	s.history = append(s.history, entry)
	return nil
}

type gatewayCall struct {
	paymentID string
	params    payment.CancelParams
}

type stubGateway struct {
	payload map[string]interface{}
	err     error
	calls   []gatewayCall
}

func (s *stubGateway) CancelPayment(_ context.Context, paymentID string, params payment.CancelParams) (map[string]interface{}, error) {
	s.calls = append(s.calls, gatewayCall{paymentID: paymentID, params: params})
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

type stubRestorer struct {
	result RestoreResult
	calls  []string
}

func (s *stubRestorer) Restore(_ context.Context, orderNumber string) RestoreResult {
	s.calls = append(s.calls, orderNumber)
	return s.result
}

type sentNotice struct {
	phone  string
	notice notify.CancelNotice
}

type stubNotifier struct {
	result notify.Result
	sent   []sentNotice
}

func (s *stubNotifier) Send(_ context.Context, phone string, notice notify.CancelNotice) notify.Result {
	s.sent = append(s.sent, sentNotice{phone: phone, notice: notice})
	return s.result
}
