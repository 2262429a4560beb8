package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
)

// ErrAggregationFailed wraps any read failure during a sales query. No
// partial results are returned alongside it.
var ErrAggregationFailed = errors.New("sales aggregation failed")

// Sentinel option bucket for items sold without an option.
const (
	noOptionID   = "none"
	noOptionName = "No option"
)

type salesOrderStore interface {
	ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]models.Order, error)
}

// SalesService aggregates raw order items into per-product revenue
// breakdowns. Orders contribute regardless of payment status.
type SalesService struct {
	orders salesOrderStore
}

func NewSalesService(orders salesOrderStore) *SalesService {
	return &SalesService{orders: orders}
}

type productAccumulator struct {
	sales   models.ProductSales
	options map[string]*models.OptionSales
	addons  map[string]*models.AddonSales
}

// Aggregate scans every order created within the inclusive window (nil bounds
// leave that side open) and folds the embedded items into per-product totals.
//
// Per item: base = productPrice*quantity, option = optionPrice*quantity,
// addon = sum(addon.price*addon.quantity)*quantity. The option breakdown sums
// base+option only; add-on revenue is counted once, in the addon breakdown.
// Order counts increment once per item row at every level.
func (s *SalesService) Aggregate(ctx context.Context, start, end *time.Time) ([]models.ProductSales, error) {
	orders, err := s.orders.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}

	byProduct := map[string]*productAccumulator{}

	for _, order := range orders {
		for _, item := range order.Items {
			base := item.ProductPrice * item.Quantity
			option := item.OptionPrice * item.Quantity
			addon := 0
			for _, a := range item.SelectedAddons {
				addon += a.Price * a.Quantity * item.Quantity
			}

			key := item.ProductID.Hex()
			acc, ok := byProduct[key]
			if !ok {
				acc = &productAccumulator{
					sales: models.ProductSales{
						ProductID:   key,
						ProductName: item.ProductName,
					},
					options: map[string]*models.OptionSales{},
					addons:  map[string]*models.AddonSales{},
				}
				byProduct[key] = acc
			}

			acc.sales.BaseSales += base
			acc.sales.OptionSales += option
			acc.sales.AddonSales += addon
			acc.sales.TotalQuantity += item.Quantity
			acc.sales.OrderCount++

			optionID, optionName := noOptionID, noOptionName
			if item.OptionID != nil && *item.OptionID != "" {
				optionID, optionName = *item.OptionID, item.OptionName
			}
			opt, ok := acc.options[optionID]
			if !ok {
				opt = &models.OptionSales{OptionID: optionID, OptionName: optionName}
				acc.options[optionID] = opt
			}
			opt.Sales += base + option
			opt.Quantity += item.Quantity
			opt.OrderCount++

			for _, a := range item.SelectedAddons {
				ad, ok := acc.addons[a.ID]
				if !ok {
					ad = &models.AddonSales{AddonID: a.ID, AddonName: a.Name}
					acc.addons[a.ID] = ad
				}
				ad.Sales += a.Price * a.Quantity * item.Quantity
				ad.Quantity += a.Quantity * item.Quantity
				ad.OrderCount++
			}
		}
	}

	results := make([]models.ProductSales, 0, len(byProduct))
	for _, acc := range byProduct {
		acc.sales.TotalSales = acc.sales.BaseSales + acc.sales.OptionSales + acc.sales.AddonSales

		acc.sales.Options = make([]models.OptionSales, 0, len(acc.options))
		for _, opt := range acc.options {
			acc.sales.Options = append(acc.sales.Options, *opt)
		}
		sort.Slice(acc.sales.Options, func(i, j int) bool {
			a, b := acc.sales.Options[i], acc.sales.Options[j]
			if a.Sales != b.Sales {
				return a.Sales > b.Sales
			}
			return a.OptionName < b.OptionName
		})

		acc.sales.Addons = make([]models.AddonSales, 0, len(acc.addons))
		for _, ad := range acc.addons {
			acc.sales.Addons = append(acc.sales.Addons, *ad)
		}
		sort.Slice(acc.sales.Addons, func(i, j int) bool {
			a, b := acc.sales.Addons[i], acc.sales.Addons[j]
			if a.Sales != b.Sales {
				return a.Sales > b.Sales
			}
			return a.AddonName < b.AddonName
		})

		results = append(results, acc.sales)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalSales != results[j].TotalSales {
			return results[i].TotalSales > results[j].TotalSales
		}
		return results[i].ProductName < results[j].ProductName
	})

	return results, nil
}
