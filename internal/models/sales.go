package models

// OptionSales is the per-option revenue breakdown within a product. Sales here
// covers base + option revenue only; add-on revenue lives in AddonSales so the
// two breakdowns never double-count.
type OptionSales struct {
	OptionID   string `json:"optionId"`
	OptionName string `json:"optionName"`
	Sales      int    `json:"sales"`
	Quantity   int    `json:"quantity"`
	OrderCount int    `json:"orderCount"`
}

// AddonSales is the per-addon revenue breakdown within a product.
type AddonSales struct {
	AddonID    string `json:"addonId"`
	AddonName  string `json:"addonName"`
	Sales      int    `json:"sales"`
	Quantity   int    `json:"quantity"`
	OrderCount int    `json:"orderCount"`
}

// ProductSales is the per-product aggregate computed fresh on every sales
// query; it is never persisted. OrderCount counts order-item rows, not
// distinct orders.
type ProductSales struct {
	ProductID     string        `json:"productId"`
	ProductName   string        `json:"productName"`
	BaseSales     int           `json:"baseSales"`
	OptionSales   int           `json:"optionSales"`
	AddonSales    int           `json:"addonSales"`
	TotalSales    int           `json:"totalSales"`
	TotalQuantity int           `json:"totalQuantity"`
	OrderCount    int           `json:"orderCount"`
	Options       []OptionSales `json:"options"`
	Addons        []AddonSales  `json:"addons"`
}
