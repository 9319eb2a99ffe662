package dto

import "github.com/shopspring/decimal"

type HourlyPoint struct {
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
}

type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ShiftSummary is one shift with its product breakdown sorted by name.
type ShiftSummary struct {
	Shift    int               `json:"shift"`
	Quantity int64             `json:"quantity"`
	Revenue  int64             `json:"revenue"`
	Products []ProductQuantity `json:"products"`
}

// DashboardResponse is GET /v1/dashboard. Slices are never null.
type DashboardResponse struct {
	GeneratedAt   string            `json:"generated_at"`
	Count         int               `json:"count"`
	TotalQuantity int64             `json:"total_quantity"`
	TotalRevenue  int64             `json:"total_revenue"`
	RecentRevenue int64             `json:"recent_revenue"`
	AverageSale   decimal.Decimal   `json:"average_sale"`
	Hourly        []HourlyPoint     `json:"hourly"`
	Cumulative    []int64           `json:"cumulative"`
	Products      []ProductQuantity `json:"products"`
	Shifts        []ShiftSummary    `json:"shifts"`
}
