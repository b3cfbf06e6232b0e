package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/safecodph/safecod-api/internal/catalog"
)

type ProductsHandler struct{}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Get("/api/products/{id}", h.get)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.List())
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := catalog.Find(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}
