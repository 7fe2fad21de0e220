package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/http/response"
)

// DocumentHandler serves file uploads attached to module records.
type DocumentHandler struct {
	documentUseCase inbound.DocumentUseCase
	auth            *middleware.AuthMiddleware
}

func NewDocumentHandler(documentUseCase inbound.DocumentUseCase, auth *middleware.AuthMiddleware) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		auth:            auth,
	}
}

func (h *DocumentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/documents", h.auth.RequireAuth(h.Upload)).Methods("POST")
	router.HandleFunc("/documents/{module}/{entity_id}", h.auth.RequireAuth(h.ListByEntity)).Methods("GET")
	router.HandleFunc("/documents/{id}/download", h.auth.RequireAuth(h.Download)).Methods("GET")
	router.HandleFunc("/documents/{id}", h.auth.RequireAuth(h.Delete)).Methods("DELETE")
}

const maxUploadSize = 25 << 20 // 25 MiB

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required under the 'file' field")
		return
	}
	defer file.Close()

	req := inbound.UploadDocumentRequest{
		Module:      r.FormValue("module"),
		EntityID:    r.FormValue("entity_id"),
		Label:       r.FormValue("label"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    header.Size,
		Body:        file,
	}
	if req.Module == "" || req.EntityID == "" {
		response.UnprocessableEntity(w, "module and entity_id are required")
		return
	}

	doc, err := h.documentUseCase.Upload(r.Context(), principal, req)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "success", doc)
}

func (h *DocumentHandler) ListByEntity(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	vars := mux.Vars(r)

	docs, err := h.documentUseCase.ListByEntity(r.Context(), principal, vars["module"], vars["entity_id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", docs)
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	doc, body, err := h.documentUseCase.Download(r.Context(), principal, mux.Vars(r)["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	defer body.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	io.Copy(w, body)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	if err := h.documentUseCase.Delete(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
