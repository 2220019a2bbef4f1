package purchase

// CartItem is one line of an incoming cart. Price is accepted as a display
// hint from the client; totals are always recomputed from the catalog.
type CartItem struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gte=1"`
	Price     int64 `json:"price,omitempty"`
}

// RecordPurchaseRequest is the body of POST /purchases. The legacy
// client-supplied totals are tolerated on the wire but never trusted.
type RecordPurchaseRequest struct {
	Items        []CartItem `json:"items" validate:"min=1,dive"`
	Total        int64      `json:"total,omitempty"`
	TotalWithTax int64      `json:"totalWithTax,omitempty"`
}

// Receipt is the success response for a recorded purchase. A failed
// purchase never carries a trade id.
type Receipt struct {
	Success          bool  `json:"success"`
	TradeID          int64 `json:"trd_id"`
	TotalAmount      int64 `json:"total_amount"`
	TotalAmountExTax int64 `json:"total_amount_ex_tax"`
}
