package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/domain"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/http/response"
)

// PendingActionHandler serves the approval workflow: submission, review,
// listing and the audit trail of applied actions.
type PendingActionHandler struct {
	approvalUseCase inbound.ApprovalUseCase
	auth            *middleware.AuthMiddleware
}

func NewPendingActionHandler(approvalUseCase inbound.ApprovalUseCase, auth *middleware.AuthMiddleware) *PendingActionHandler {
	return &PendingActionHandler{
		approvalUseCase: approvalUseCase,
		auth:            auth,
	}
}

func (h *PendingActionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/pending-actions", h.auth.RequireAdmin(h.List)).Methods("GET")
	router.HandleFunc("/pending-actions", h.auth.RequireAuth(h.Submit)).Methods("POST")
	router.HandleFunc("/pending-actions/my-requests", h.auth.RequireAuth(h.ListMine)).Methods("GET")
	router.HandleFunc("/pending-actions/{id}", h.auth.RequireAuth(h.Get)).Methods("GET")
	router.HandleFunc("/pending-actions/{id}", h.auth.RequireAdmin(h.Delete)).Methods("DELETE")
	router.HandleFunc("/pending-actions/{id}/approve", h.auth.RequireAdmin(h.Approve)).Methods("POST")
	router.HandleFunc("/pending-actions/{id}/reject", h.auth.RequireAdmin(h.Reject)).Methods("POST")
	router.HandleFunc("/audit/{module}/{id}", h.auth.RequireAdmin(h.History)).Methods("GET")
}

func (h *PendingActionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	var req inbound.SubmitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	action, err := h.approvalUseCase.SubmitAction(r.Context(), principal, req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusAccepted, "Submitted for approval", action)
}

func parseActionListRequest(r *http.Request) inbound.ListActionsRequest {
	q := r.URL.Query()
	req := inbound.ListActionsRequest{
		Status:      q.Get("status"),
		Module:      q.Get("module"),
		Operation:   q.Get("operation"),
		RequestedBy: q.Get("requested_by"),
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	return req
}

func (h *PendingActionHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	list, err := h.approvalUseCase.ListActions(r.Context(), principal, parseActionListRequest(r))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", list)
}

func (h *PendingActionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	list, err := h.approvalUseCase.ListMyActions(r.Context(), principal, parseActionListRequest(r))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", list)
}

func (h *PendingActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	action, err := h.approvalUseCase.GetAction(r.Context(), principal, mux.Vars(r)["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", action)
}

func (h *PendingActionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.approvalUseCase.ApproveAction)
}

func (h *PendingActionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.approvalUseCase.RejectAction)
}

func (h *PendingActionHandler) review(w http.ResponseWriter, r *http.Request, fn reviewFunc) {
	principal, _ := middleware.GetPrincipal(r.Context())

	req := inbound.ReviewActionRequest{ActionID: mux.Vars(r)["id"]}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
		req.ActionID = mux.Vars(r)["id"]
	}

	action, err := fn(r.Context(), principal, req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", action)
}

type reviewFunc func(ctx context.Context, reviewer domain.Principal, req inbound.ReviewActionRequest) (*domain.PendingAction, error)

func (h *PendingActionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	if err := h.approvalUseCase.DeleteAction(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PendingActionHandler) History(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.approvalUseCase.History(r.Context(), principal, vars["module"], vars["id"], limit)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", entries)
}
