package purchase

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	InsertTrade(ctx context.Context, t Trade) (int64, error)
	InsertDetail(ctx context.Context, d TradeDetail) (int64, error)
	GetTrade(ctx context.Context, id int64) (*Trade, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

// WithTx rebinds the repository onto a single transaction so the header
// insert and every detail insert commit or roll back together.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) InsertTrade(ctx context.Context, t Trade) (int64, error) {
	const query = `
		INSERT INTO trades (trade_at, emp_cd, store_cd, pos_no, total_amt, ttl_amt_ex_tax)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING trd_id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		t.TradeAt, t.EmployeeCode, t.StoreCode, t.POSNumber,
		t.TotalAmount, t.TotalAmountExTax,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertDetail(ctx context.Context, d TradeDetail) (int64, error) {
	const query = `
		INSERT INTO trade_details (trd_id, prd_id, prd_code, prd_name, prd_price, tax_cd)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING dtl_id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		d.TradeID, d.ProductID, d.ProductCode, d.ProductName, d.UnitPrice, d.TaxCode,
	).Scan(&id)
	return id, err
}

func (r *repository) GetTrade(ctx context.Context, id int64) (*Trade, error) {
	const headerQuery = `
		SELECT trd_id, trade_at, emp_cd, store_cd, pos_no, total_amt, ttl_amt_ex_tax
		FROM trades WHERE trd_id = $1`

	var t Trade
	err := r.db.QueryRow(ctx, headerQuery, id).Scan(
		&t.ID, &t.TradeAt, &t.EmployeeCode, &t.StoreCode, &t.POSNumber,
		&t.TotalAmount, &t.TotalAmountExTax,
	)
	if err != nil {
		return nil, err
	}

	const detailQuery = `
		SELECT dtl_id, trd_id, prd_id, prd_code, prd_name, prd_price, tax_cd
		FROM trade_details WHERE trd_id = $1 ORDER BY dtl_id`

	rows, err := r.db.Query(ctx, detailQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d TradeDetail
		if err := rows.Scan(&d.ID, &d.TradeID, &d.ProductID, &d.ProductCode, &d.ProductName, &d.UnitPrice, &d.TaxCode); err != nil {
			return nil, err
		}
		t.Details = append(t.Details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &t, nil
}
