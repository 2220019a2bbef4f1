package purchase

import "time"

// TaxCodeStandard is the consumption tax category stamped on detail rows.
const TaxCodeStandard = "10"

// Trade is one checkout event: a header row holding aggregate totals.
// Written once with final totals and immutable afterwards.
type Trade struct {
	ID               int64     `json:"trd_id"`
	TradeAt          time.Time `json:"trade_at"`
	EmployeeCode     string    `json:"emp_cd"`
	StoreCode        string    `json:"store_cd"`
	POSNumber        string    `json:"pos_no"`
	TotalAmount      int64     `json:"total_amount"`
	TotalAmountExTax int64     `json:"total_amount_ex_tax"`

	Details []TradeDetail `json:"details,omitempty"`
}

// TradeDetail is one row per purchased unit. Product fields are snapshots
// captured at sale time; they are never updated when the master changes.
type TradeDetail struct {
	ID          int64  `json:"dtl_id"`
	TradeID     int64  `json:"trd_id"`
	ProductID   int64  `json:"prd_id"`
	ProductCode string `json:"prd_code"`
	ProductName string `json:"prd_name"`
	UnitPrice   int64  `json:"prd_price"`
	TaxCode     string `json:"tax_cd"`
}
