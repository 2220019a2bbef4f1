package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
	_ "github.com/meridian-pos/meridian-pos/testing"
)

type mockRepository struct {
	byID   map[int64]*Product
	byCode map[string]*Product
	calls  int
}

func newMockRepository(products ...*Product) *mockRepository {
	m := &mockRepository{
		byID:   make(map[int64]*Product),
		byCode: make(map[string]*Product),
	}
	for _, p := range products {
		m.byID[p.ID] = p
		m.byCode[p.Code] = p
	}
	return m
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	m.calls++
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (*Product, error) {
	m.calls++
	p, ok := m.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) ListCodes(ctx context.Context, limit int) ([]string, error) {
	var codes []string
	for code := range m.byCode {
		if len(codes) >= limit {
			break
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func newCachedService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(repo, NewCache(client, time.Minute))
}

func TestGetByCodeReturnsProduct(t *testing.T) {
	repo := newMockRepository(&Product{ID: 1, Code: "4901085653463", Name: "Cafe au Lait 500ml", Price: 180})
	svc := newCachedService(t, repo)

	p, err := svc.GetByCode(context.Background(), "4901085653463")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, int64(180), p.Price)
}

func TestGetByCodeCachesLookups(t *testing.T) {
	repo := newMockRepository(&Product{ID: 1, Code: "4901085653463", Name: "Cafe au Lait 500ml", Price: 180})
	svc := newCachedService(t, repo)
	ctx := context.Background()

	_, err := svc.GetByCode(ctx, "4901085653463")
	require.NoError(t, err)
	_, err = svc.GetByCode(ctx, "4901085653463")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls, "second lookup must come from the cache")
}

func TestGetByCodeUnknownMapsToNotFound(t *testing.T) {
	svc := newCachedService(t, newMockRepository())

	_, err := svc.GetByCode(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestGetByCodeRejectsBlankCode(t *testing.T) {
	svc := newCachedService(t, newMockRepository())

	_, err := svc.GetByCode(context.Background(), "  ")
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestGetByIDUnknownMapsToNotFound(t *testing.T) {
	svc := newCachedService(t, newMockRepository())

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestGetByIDReturnsProduct(t *testing.T) {
	repo := newMockRepository(&Product{ID: 7, Code: "4901777318772", Name: "Black Tea 450ml", Price: 150})
	svc := newCachedService(t, repo)

	p, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "4901777318772", p.Code)
}

func TestWarmCachePreloadsProducts(t *testing.T) {
	repo := newMockRepository(
		&Product{ID: 1, Code: "A", Name: "First", Price: 100},
		&Product{ID: 2, Code: "B", Name: "Second", Price: 200},
	)
	svc := newCachedService(t, repo)

	warmed, err := svc.WarmCache(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, warmed)

	callsAfterWarmup := repo.calls
	_, err = svc.GetByCode(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, callsAfterWarmup, repo.calls, "warmed lookup must hit the cache")
}
