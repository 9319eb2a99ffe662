package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordSaleRequest is the body of POST /v1/sales. Name and price come from
// the catalog item, never from the client.
type RecordSaleRequest struct {
	ItemID      uint  `json:"item_id"      validate:"required"`
	Quantity    int64 `json:"quantity"     validate:"required,min=1,max=10000"`
	ShiftNumber *int  `json:"shift_number" validate:"omitempty,min=1"`
}

// ExportQuery is bound from the query string of GET /v1/sales/export.
type ExportQuery struct {
	Format string `form:"format,default=csv" validate:"oneof=csv xlsx"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID          uint   `json:"id"`
	ItemName    string `json:"item_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Total       int64  `json:"total"`
	ShiftNumber *int   `json:"shift_number"`
	CreatedAt   string `json:"created_at"` // shop-local, YYYY-MM-DD HH:MM:SS
}

// SaleListResponse is GET /v1/sales: every record plus the grand total.
type SaleListResponse struct {
	Data       []SaleResponse `json:"data"`
	Count      int            `json:"count"`
	GrandTotal int64          `json:"grand_total"`
}
