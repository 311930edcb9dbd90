package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/db"
)

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_product", err.Error())
		return
	}

	s.logger.Info("creating product", zap.String("name", payload.Name))

	created, err := s.store.CreateProduct(r.Context(), payload.toRecord())
	if err != nil {
		s.logger.Error("creating product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	s.logger.Info("product created", zap.Int64("product_id", created.ID))
	writeJSON(w, http.StatusCreated, payloadFrom(created))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "product id must be an integer")
		return
	}

	var payload ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_product", err.Error())
		return
	}

	s.logger.Info("updating product", zap.Int64("product_id", id))

	before, err := s.store.GetProductByID(r.Context(), id)
	if errors.Is(err, db.ErrProductNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("loading product", zap.Int64("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	updated, err := s.store.UpdateProduct(r.Context(), id, payload.toRecord())
	if err != nil {
		s.logger.Error("updating product", zap.Int64("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	if s.stock.Restocked(before.Available, updated.Available) {
		s.logger.Info("product restocked",
			zap.Int64("product_id", updated.ID), zap.String("name", updated.Name))
	}

	writeJSON(w, http.StatusOK, payloadFrom(updated))
}

func (s *Server) processOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}

	orderID, err := s.engine.ProcessOrder(r.Context(), id)
	if errors.Is(err, db.ErrOrderNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("processing order", zap.Int64("order_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, ProcessOrderResponse{ID: orderID})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
