package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"rate/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// isValidationError distinguishes bad input (422) from infrastructure
// failures (500).
func isValidationError(err error) bool {
	return errors.Is(err, core.ErrEmptyName) ||
		errors.Is(err, core.ErrNameTooLong) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrNegativeAmount) ||
		errors.Is(err, core.ErrInvalidMonth)
}

type createPurchaseRequest struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
	Date   *core.Date `json:"date"`
}

func (s *Server) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// Date is optional; an omitted date means the purchase happened today.
	date := core.DateOf(time.Now())
	if req.Date != nil {
		date = *req.Date
	}

	p, err := s.purchases.CreatePurchase(r.Context(), req.Name, req.Amount, date)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to create purchase", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create purchase")
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := s.purchases.ListPurchases(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list purchases", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list purchases")
		return
	}
	if purchases == nil {
		purchases = []core.Purchase{}
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.ledger.ReadLedger(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to read ledger", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to read payments")
		return
	}
	if ledger == nil {
		ledger = core.Ledger{}
	}
	respondJSON(w, http.StatusOK, ledger)
}

type recordPaymentRequest struct {
	Month  core.Month `json:"month"`
	Amount core.Money `json:"amount"`
}

type paymentResponse struct {
	Month core.Month `json:"month"`
	Total core.Money `json:"total"`
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	total, err := s.ledger.RecordPayment(r.Context(), req.Month, req.Amount)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to record payment", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}

	respondJSON(w, http.StatusOK, paymentResponse{Month: req.Month, Total: total})
}

type correctMonthRequest struct {
	Amount core.Money `json:"amount"`
}

func (s *Server) handleCorrectMonth(w http.ResponseWriter, r *http.Request) {
	month, err := core.ParseMonth(r.PathValue("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	var req correctMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	total, err := s.ledger.CorrectMonth(r.Context(), month, req.Amount)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to correct month", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to correct month")
		return
	}

	respondJSON(w, http.StatusOK, paymentResponse{Month: month, Total: total})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	view, err := s.schedule.BuildSchedule(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build schedule", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build schedule")
		return
	}
	if view.Rows == nil {
		view.Rows = []core.ScheduleRow{}
	}
	respondJSON(w, http.StatusOK, view)
}
