package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/http/response"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
	auth        *middleware.AuthMiddleware
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		auth:        auth,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/me", h.auth.RequireAuth(h.Me)).Methods("GET")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.UnprocessableEntity(w, "Username and password are required")
		return
	}
	req.ClientIP = middleware.GetClientIP(r)

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}
	user, err := h.authUseCase.Me(r.Context(), principal.ID)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", user)
}
