package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/domain"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/http/response"
)

// EntityHandler serves CRUD plus CSV import/export for every managed
// module. The module tag is a path variable; validation happens in the
// use case so unknown modules consistently map to INVALID_MODULE.
type EntityHandler struct {
	entityUseCase inbound.EntityUseCase
	auth          *middleware.AuthMiddleware
}

func NewEntityHandler(entityUseCase inbound.EntityUseCase, auth *middleware.AuthMiddleware) *EntityHandler {
	return &EntityHandler{
		entityUseCase: entityUseCase,
		auth:          auth,
	}
}

func (h *EntityHandler) RegisterRoutes(router *mux.Router) {
	// export/import before the {id} routes so they are not shadowed
	router.HandleFunc("/{module}/export", h.auth.RequireAuth(h.Export)).Methods("GET")
	router.HandleFunc("/{module}/import", h.auth.RequireAuth(h.Import)).Methods("POST")
	router.HandleFunc("/{module}", h.auth.RequireAuth(h.List)).Methods("GET")
	router.HandleFunc("/{module}", h.auth.RequireAuth(h.Create)).Methods("POST")
	router.HandleFunc("/{module}/{id}", h.auth.RequireAuth(h.Get)).Methods("GET")
	router.HandleFunc("/{module}/{id}", h.auth.RequireAuth(h.Update)).Methods("PATCH")
	router.HandleFunc("/{module}/{id}", h.auth.RequireAuth(h.Delete)).Methods("DELETE")
}

// reserved query keys; everything else becomes a field filter.
var reservedListParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"sort":      true,
	"sort_desc": true,
}

func parseListRequest(r *http.Request) inbound.ListEntitiesRequest {
	q := r.URL.Query()
	req := inbound.ListEntitiesRequest{
		Sort:     q.Get("sort"),
		SortDesc: q.Get("sort_desc") == "true",
		Filters:  map[string]string{},
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	for key, values := range q {
		if reservedListParams[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		req.Filters[key] = values[0]
	}
	return req
}

func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	module := mux.Vars(r)["module"]

	list, err := h.entityUseCase.List(r.Context(), principal, module, parseListRequest(r))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", list)
}

func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	vars := mux.Vars(r)

	rec, err := h.entityUseCase.Get(r.Context(), principal, vars["module"], vars["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", rec)
}

func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	module := mux.Vars(r)["module"]

	var payload domain.Fields
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.entityUseCase.Create(r.Context(), principal, module, payload)
	if err != nil {
		response.Fail(w, err)
		return
	}
	writeMutationResult(w, result, http.StatusCreated)
}

func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	vars := mux.Vars(r)

	var patch domain.Fields
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.entityUseCase.Update(r.Context(), principal, vars["module"], vars["id"], patch)
	if err != nil {
		response.Fail(w, err)
		return
	}
	writeMutationResult(w, result, http.StatusOK)
}

func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	vars := mux.Vars(r)

	result, err := h.entityUseCase.Delete(r.Context(), principal, vars["module"], vars["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	writeMutationResult(w, result, http.StatusOK)
}

// writeMutationResult answers appliedStatus when the mutation took effect
// directly and 202 when it was captured as a pending action.
func writeMutationResult(w http.ResponseWriter, result *inbound.MutationResult, appliedStatus int) {
	if result.Applied {
		response.Success(w, appliedStatus, "success", result)
		return
	}
	response.Success(w, http.StatusAccepted, "Submitted for approval", result)
}

func (h *EntityHandler) Export(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	module := mux.Vars(r)["module"]

	// Buffer the CSV so a failure mid-export still produces a proper
	// error response instead of a truncated 200.
	var buf bytes.Buffer
	if err := h.entityUseCase.ExportCSV(r.Context(), principal, module, parseListRequest(r), &buf); err != nil {
		response.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, module))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

const maxImportSize = 10 << 20 // 10 MiB

func (h *EntityHandler) Import(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	module := mux.Vars(r)["module"]

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "CSV file is required under the 'file' field")
		return
	}
	defer file.Close()

	result, err := h.entityUseCase.ImportCSV(r.Context(), principal, module, file)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", result)
}
