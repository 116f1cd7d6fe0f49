package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TemirB/catalog-orders/internal/domain"
)

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.products.Create(r.Context(), req.Name, *req.Price)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p.Snapshot())
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ProductSnapshots(products))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Snapshot())
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.products.Update(r.Context(), chi.URLParam(r, "id"), req.Name, *req.Price)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Snapshot())
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
