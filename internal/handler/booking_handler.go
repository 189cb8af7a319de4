package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/auth"
	"github.com/atik94/mobile-resale-market-server/internal/model"
	"github.com/atik94/mobile-resale-market-server/internal/repository"

	"github.com/google/uuid"
)

type BookingService interface {
	CreateBooking(ctx context.Context, b *model.Booking) (model.InsertResult, error)
	BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error)
	Booking(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	CreatePaymentIntent(ctx context.Context, resalePrice float64, bookingID string) (string, error)
	RecordPayment(ctx context.Context, p *model.Payment) (model.InsertResult, error)
}

type BookingHandler struct {
	svc BookingService
	log *slog.Logger
}

func NewBookingHandler(svc BookingService, log *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

// ListBookings serves GET /bookings?email=. It runs behind Authorize and only
// lists the token holder's own bookings.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.Email != email {
		writeMessage(w, http.StatusForbidden, "forbidden access")
		return
	}

	bookings, err := h.svc.BookingsByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.Booking(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var b model.Booking
	if err := decodeJSON(r, &b); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.CreateBooking(r.Context(), &b)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// The client posts the booking it is paying for; only the id and price matter.
type paymentIntentRequest struct {
	BookingID   string      `json:"_id"`
	ResalePrice model.Price `json:"resalePrice" validate:"gt=0"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *BookingHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	secret, err := h.svc.CreatePaymentIntent(r.Context(), float64(req.ResalePrice), req.BookingID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

type recordPaymentRequest struct {
	BookingID     string  `json:"bookingId" validate:"required,uuid"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Email         string  `json:"email"`
}

// RecordPayment stores the payment and marks the booking paid. An unknown
// booking is 404 and leaves no payment behind.
func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed bookingId")
		return
	}

	p := &model.Payment{
		BookingID:     bookingID,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Email:         req.Email,
	}

	res, err := h.svc.RecordPayment(r.Context(), p)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
