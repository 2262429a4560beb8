package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
)

func strptr(s string) *string { return &s }

func orderWithItems(items ...models.OrderItem) models.Order {
	return models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "ORD-agg",
		Items:       items,
		CreatedAt:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregateItemFormula(t *testing.T) {
	productID := primitive.NewObjectID()
	orders := &stubOrders{list: []models.Order{
		orderWithItems(models.OrderItem{
			ProductID:    productID,
			ProductName:  "Hanko stamp",
			ProductPrice: 10000,
			Quantity:     2,
			OptionID:     strptr("opt-1"),
			OptionName:   "Large",
			OptionPrice:  500,
			SelectedAddons: []models.AddonSelection{
				{ID: "ad-1", Name: "Gift wrap", Price: 1000, Quantity: 1},
			},
		}),
	}}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)

	product := results[0]
	require.Equal(t, productID.Hex(), product.ProductID)
	require.Equal(t, 20000, product.BaseSales)
	require.Equal(t, 1000, product.OptionSales)
	require.Equal(t, 2000, product.AddonSales)
	require.Equal(t, 23000, product.TotalSales)
	require.Equal(t, 2, product.TotalQuantity)
	require.Equal(t, 1, product.OrderCount)
}

func TestAggregateOptionBreakdownExcludesAddons(t *testing.T) {
	productID := primitive.NewObjectID()
	orders := &stubOrders{list: []models.Order{
		orderWithItems(models.OrderItem{
			ProductID:    productID,
			ProductName:  "Hanko stamp",
			ProductPrice: 10000,
			Quantity:     2,
			OptionID:     strptr("opt-1"),
			OptionName:   "Large",
			OptionPrice:  500,
			SelectedAddons: []models.AddonSelection{
				{ID: "ad-1", Name: "Gift wrap", Price: 1000, Quantity: 2},
			},
		}),
	}}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)

	require.Len(t, results[0].Options, 1)
	option := results[0].Options[0]
	require.Equal(t, "opt-1", option.OptionID)
	require.Equal(t, 21000, option.Sales, "base + option only, addons excluded")
	require.Equal(t, 2, option.Quantity)
	require.Equal(t, 1, option.OrderCount)

	require.Len(t, results[0].Addons, 1)
	addon := results[0].Addons[0]
	require.Equal(t, "ad-1", addon.AddonID)
	require.Equal(t, 4000, addon.Sales)
	require.Equal(t, 4, addon.Quantity, "addon quantity times item quantity")
	require.Equal(t, 1, addon.OrderCount)
}

func TestAggregateNoOptionSentinel(t *testing.T) {
	productID := primitive.NewObjectID()
	orders := &stubOrders{list: []models.Order{
		orderWithItems(models.OrderItem{
			ProductID:    productID,
			ProductName:  "Plain stamp",
			ProductPrice: 5000,
			Quantity:     1,
		}),
	}}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Options, 1)
	require.Equal(t, "none", results[0].Options[0].OptionID)
	require.Equal(t, 5000, results[0].Options[0].Sales)
}

func TestAggregateTotalsMatchPerItemFormula(t *testing.T) {
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()

	items := []models.OrderItem{
		{ProductID: productA, ProductName: "A", ProductPrice: 1200, Quantity: 3, OptionPrice: 100},
		{ProductID: productA, ProductName: "A", ProductPrice: 1200, Quantity: 1,
			SelectedAddons: []models.AddonSelection{{ID: "x", Name: "X", Price: 250, Quantity: 2}}},
		{ProductID: productB, ProductName: "B", ProductPrice: 800, Quantity: 5},
	}
	orders := &stubOrders{list: []models.Order{orderWithItems(items[0], items[1]), orderWithItems(items[2])}}

	expected := 0
	for _, item := range items {
		addon := 0
		for _, a := range item.SelectedAddons {
			addon += a.Price * a.Quantity
		}
		expected += (item.ProductPrice+item.OptionPrice)*item.Quantity + addon*item.Quantity
	}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.NoError(t, err)
	total := 0
	for _, product := range results {
		total += product.TotalSales
	}
	require.Equal(t, expected, total)
}

func TestAggregateSortsDescendingBySales(t *testing.T) {
	big := primitive.NewObjectID()
	small := primitive.NewObjectID()
	orders := &stubOrders{list: []models.Order{
		orderWithItems(
			models.OrderItem{ProductID: small, ProductName: "Small", ProductPrice: 100, Quantity: 1},
			models.OrderItem{ProductID: big, ProductName: "Big", ProductPrice: 9000, Quantity: 2,
				OptionID: strptr("o1"), OptionName: "First", OptionPrice: 10},
			models.OrderItem{ProductID: big, ProductName: "Big", ProductPrice: 9000, Quantity: 5,
				OptionID: strptr("o2"), OptionName: "Second", OptionPrice: 20},
		),
	}}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, results[i-1].TotalSales, results[i].TotalSales)
	}
	options := results[0].Options
	require.Len(t, options, 2)
	for i := 1; i < len(options); i++ {
		require.GreaterOrEqual(t, options[i-1].Sales, options[i].Sales)
	}
	require.Equal(t, "o2", options[0].OptionID)
}

func TestAggregatePassesWindowBounds(t *testing.T) {
	orders := &stubOrders{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	svc := NewSalesService(orders)
	_, err := svc.Aggregate(context.Background(), &start, &end)

	require.NoError(t, err)
	require.NotNil(t, orders.listStart)
	require.NotNil(t, orders.listEnd)
	require.True(t, orders.listStart.Equal(start))
	require.True(t, orders.listEnd.Equal(end))
}

func TestAggregateReadFailure(t *testing.T) {
	orders := &stubOrders{listErr: errTest}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.ErrorIs(t, err, ErrAggregationFailed)
	require.Nil(t, results, "no partial results")
}

func TestAggregateEmptyWindow(t *testing.T) {
	orders := &stubOrders{}

	svc := NewSalesService(orders)
	results, err := svc.Aggregate(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Empty(t, results)
}
