package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safecodph/safecod-api/internal/catalog"
)

func TestListProducts(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 6)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/products/prod_2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Dried Fish Bundle", p.Name)
	assert.Equal(t, 0.02, p.PriceSUI)

	rec = env.do(t, http.MethodGet, "/api/products/prod_999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
