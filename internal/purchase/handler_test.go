package purchase

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/meridian-pos/meridian-pos/testing"
)

func newTestRouter(t *testing.T) (chi.Router, *mockRepository) {
	t.Helper()
	svc, repo := newTestService()
	handler := NewHandler(nil, svc, nil)
	r := chi.NewRouter()
	r.Route("/purchases", handler.MountRoutes)
	return r, repo
}

func postPurchase(t *testing.T, router chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestRecordEndpointCreatesPurchase(t *testing.T) {
	router, repo := newTestRouter(t)

	res := postPurchase(t, router, `{"items":[{"product_id":101,"quantity":1},{"product_id":102,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var receipt Receipt
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &receipt))
	assert.True(t, receipt.Success)
	assert.NotZero(t, receipt.TradeID)
	assert.Equal(t, int64(420), receipt.TotalAmountExTax)
	assert.Equal(t, int64(462), receipt.TotalAmount)

	assert.Len(t, repo.detailsFor(receipt.TradeID), 3)
}

func TestRecordEndpointRejectsEmptyCart(t *testing.T) {
	router, repo := newTestRouter(t)

	res := postPurchase(t, router, `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Empty(t, repo.trades)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &problem))
	assert.Equal(t, "Validation Failed", problem["title"])
}

func TestRecordEndpointRejectsUnknownProduct(t *testing.T) {
	router, repo := newTestRouter(t)

	res := postPurchase(t, router, `{"items":[{"product_id":999,"quantity":1}]}`)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Empty(t, repo.trades)
	assert.Empty(t, repo.details)
}

func TestRecordEndpointRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	res := postPurchase(t, router, `{"items":`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestRecordEndpointHidesStorageInternals(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.txError = assert.AnError

	res := postPurchase(t, router, `{"items":[{"product_id":101,"quantity":1}]}`)
	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.NotContains(t, res.Body.String(), assert.AnError.Error())
	assert.NotContains(t, res.Body.String(), "trd_id")
}
