package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(ctx context.Context, u *model.User) (model.InsertResult, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	HasRole(ctx context.Context, email string, role model.Role) (bool, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (model.DeleteResult, error)
	UpdateSellerStatus(ctx context.Context, id uuid.UUID, status model.SellerStatus) (model.UpdateResult, error)
}

type UserHandler struct {
	svc UserService
	log *slog.Logger
}

func NewUserHandler(svc UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type createUserRequest struct {
	Name   string             `json:"name"`
	Email  string             `json:"email" validate:"required,email"`
	Role   model.Role         `json:"role"`
	Status model.SellerStatus `json:"status" validate:"omitempty,oneof=pending verified"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	u := &model.User{Name: req.Name, Email: req.Email, Role: req.Role, Status: req.Status}
	if u.Role == model.RoleSeller && u.Status == "" {
		u.Status = model.StatusPending
	}

	res, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ListByRole serves GET /buyers and GET /sellers.
func (h *UserHandler) ListByRole(role model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.svc.ListByRole(r.Context(), role)
		if err != nil {
			respondError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// CheckRole serves the /users/{admin,sellers,buyers}/{email} lookups; key is
// the response field name.
func (h *UserHandler) CheckRole(role model.Role, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.svc.HasRole(r.Context(), chi.URLParam(r, "email"), role)
		if err != nil {
			respondError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{key: ok})
	}
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.DeleteUser(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type sellerStatusRequest struct {
	Status model.SellerStatus `json:"status" validate:"required,oneof=pending verified"`
}

func (h *UserHandler) UpdateSellerStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var req sellerStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.UpdateSellerStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
