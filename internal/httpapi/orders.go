package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TemirB/catalog-orders/internal/domain"
)

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.orders.Create(r.Context(), req.inputs())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o.Snapshot())
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.OrderSnapshots(orders))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (s *Server) addOrderItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.orders.AddItem(r.Context(), chi.URLParam(r, "id"), req.ProductID, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (s *Server) removeOrderItem(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}
