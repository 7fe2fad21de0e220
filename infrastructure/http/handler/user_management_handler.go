package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/http/response"
)

// UserManagementHandler serves admin-only user account CRUD. Accounts are
// deactivated rather than deleted so audit attribution survives.
type UserManagementHandler struct {
	userUseCase inbound.UserManagementUseCase
	auth        *middleware.AuthMiddleware
}

func NewUserManagementHandler(userUseCase inbound.UserManagementUseCase, auth *middleware.AuthMiddleware) *UserManagementHandler {
	return &UserManagementHandler{
		userUseCase: userUseCase,
		auth:        auth,
	}
}

func (h *UserManagementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.auth.RequireAdmin(h.List)).Methods("GET")
	router.HandleFunc("/users", h.auth.RequireAdmin(h.Create)).Methods("POST")
	router.HandleFunc("/users/{id}", h.auth.RequireAuth(h.Get)).Methods("GET")
	router.HandleFunc("/users/{id}", h.auth.RequireAdmin(h.Update)).Methods("PATCH")
	router.HandleFunc("/users/{id}", h.auth.RequireAdmin(h.Deactivate)).Methods("DELETE")
}

func (h *UserManagementHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	var req inbound.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userUseCase.CreateUser(r.Context(), principal, req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "success", user)
}

func (h *UserManagementHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	var req inbound.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.ID = mux.Vars(r)["id"]

	user, err := h.userUseCase.UpdateUser(r.Context(), principal, req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", user)
}

func (h *UserManagementHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	if err := h.userUseCase.DeactivateUser(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserManagementHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	user, err := h.userUseCase.GetUser(r.Context(), principal, mux.Vars(r)["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", user)
}

func (h *UserManagementHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	q := r.URL.Query()

	req := inbound.ListUsersRequest{
		Name:   q.Get("name"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.Limit, _ = strconv.Atoi(q.Get("limit"))

	list, err := h.userUseCase.ListUsers(r.Context(), principal, req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", list)
}
