package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-pos/meridian-pos/internal/catalog"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

var validate = validator.New()

// ProductResolver looks up a catalog entry by id. Satisfied by
// *catalog.Service.
type ProductResolver interface {
	GetByID(ctx context.Context, id int64) (*catalog.Product, error)
}

// Register identifies the operator, store, and terminal stamped on every
// trade header. Injected from configuration rather than taken from the
// client.
type Register struct {
	EmployeeCode string
	StoreCode    string
	POSNumber    string
}

// Service is the purchase transaction engine: it validates a cart,
// resolves products, computes totals, and persists header plus details in
// one unit of work.
type Service struct {
	repo     Repository
	products ProductResolver
	register Register
	now      func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, products ProductResolver, register Register) *Service {
	return &Service{
		repo:     repo,
		products: products,
		register: register,
		now:      time.Now,
	}
}

type resolvedItem struct {
	product  *catalog.Product
	quantity int64
}

// Record registers a purchase. On success exactly one header row and one
// detail row per unit exist; on any failure no rows exist at all.
// Each call creates a fresh trade, so resubmitting an identical cart is
// not idempotent.
func (s *Service) Record(ctx context.Context, req RecordPurchaseRequest) (*Receipt, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", httpx.ErrValidation)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: each item needs a product id and a quantity of at least 1", httpx.ErrValidation)
	}

	// Resolve every product before touching storage. A single unresolved
	// reference fails the whole cart; nothing is skipped silently.
	resolved := make([]resolvedItem, 0, len(req.Items))
	var totalExTax int64
	for _, item := range req.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, resolvedItem{product: product, quantity: item.Quantity})
		totalExTax += product.Price * item.Quantity
	}

	// Client-sent totals are display hints only; the stored amounts come
	// from the catalog prices.
	totalAmount := withTax(totalExTax)

	trade := Trade{
		TradeAt:          s.now(),
		EmployeeCode:     s.register.EmployeeCode,
		StoreCode:        s.register.StoreCode,
		POSNumber:        s.register.POSNumber,
		TotalAmount:      totalAmount,
		TotalAmountExTax: totalExTax,
	}

	var tradeID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.InsertTrade(ctx, trade)
		if err != nil {
			return fmt.Errorf("insert trade: %w", err)
		}
		tradeID = id

		for _, item := range resolved {
			detail := TradeDetail{
				TradeID:     tradeID,
				ProductID:   item.product.ID,
				ProductCode: item.product.Code,
				ProductName: item.product.Name,
				UnitPrice:   item.product.Price,
				TaxCode:     TaxCodeStandard,
			}
			for n := int64(0); n < item.quantity; n++ {
				if _, err := repo.InsertDetail(ctx, detail); err != nil {
					return fmt.Errorf("insert trade detail: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Receipt{
		Success:          true,
		TradeID:          tradeID,
		TotalAmount:      totalAmount,
		TotalAmountExTax: totalExTax,
	}, nil
}
