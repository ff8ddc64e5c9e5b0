package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cobranca/internal/core"
	applog "cobranca/internal/log"
)

// createCustomerRequest mirrors the customer wire shape. TotalDebt arrives
// as a decimal number in reais and is converted to centavos by the Money
// unmarshaler.
type createCustomerRequest struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	TotalDebt core.Money `json:"totalDebt"`
}

type updateCustomerRequest struct {
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	TotalDebt core.Money `json:"totalDebt"`
}

// ackResponse is the mutation acknowledgement envelope.
type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListCustomers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list customers", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if list == nil {
		list = []core.Customer{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, "totalDebt must be a non-negative amount")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name and id are required")
		return
	}

	customer := core.Customer{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		Phone:     req.Phone,
		Email:     req.Email,
		TotalDebt: req.TotalDebt,
	}

	if err := s.store.CreateCustomer(r.Context(), customer); err != nil {
		switch {
		case errors.Is(err, core.ErrConflict):
			respondError(w, http.StatusConflict, "customer already exists")
		case errors.Is(err, core.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "totalDebt must be a non-negative amount")
		case errors.Is(err, core.ErrMissingID), errors.Is(err, core.ErrEmptyName):
			respondError(w, http.StatusBadRequest, "name and id are required")
		default:
			slog.ErrorContext(r.Context(), "Failed to save customer",
				applog.FieldCustomerID, customer.ID, applog.FieldError, err)
			respondError(w, http.StatusInternalServerError, "failed to save customer")
		}
		return
	}

	respondJSON(w, http.StatusCreated, ackResponse{Success: true, Message: "customer created"})
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, "totalDebt must be a non-negative amount")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := core.CustomerUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		TotalDebt: req.TotalDebt,
	}

	if err := s.store.UpdateCustomer(r.Context(), id, upd); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			respondError(w, http.StatusNotFound, "customer not found")
		case errors.Is(err, core.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "totalDebt must be a non-negative amount")
		default:
			slog.ErrorContext(r.Context(), "Failed to update customer",
				applog.FieldCustomerID, id, applog.FieldError, err)
			respondError(w, http.StatusInternalServerError, "failed to update customer")
		}
		return
	}

	respondJSON(w, http.StatusOK, ackResponse{Success: true, Message: "customer updated"})
}
