package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested product does not exist in the master.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	ListCodes(ctx context.Context, limit int) ([]string, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	const query = `SELECT prd_id, code, name, price FROM products WHERE prd_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Product, error) {
	const query = `SELECT prd_id, code, name, price FROM products WHERE code = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, code))
}

// ListCodes returns up to limit product codes, most recently added first.
// Used by the cache warmup job.
func (r *repository) ListCodes(ctx context.Context, limit int) ([]string, error) {
	const query = `SELECT code FROM products ORDER BY prd_id DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *repository) scanOne(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
