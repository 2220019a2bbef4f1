package catalog

// Product is one row of the product master. The purchase engine snapshots
// these fields onto detail rows at sale time.
type Product struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
