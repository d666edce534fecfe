package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"budgetly/internal/tags/service"
	httputil "budgetly/pkg/http"
	"budgetly/pkg/logger"
	"budgetly/pkg/request"
)

type TagHandler struct {
	service    service.TagService
	normalizer *request.Normalizer
	log        *logger.Logger
}

func NewTagHandler(service service.TagService, normalizer *request.Normalizer, log *logger.Logger) *TagHandler {
	return &TagHandler{
		service:    service,
		normalizer: normalizer,
		log:        log,
	}
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := request.FromHTTP(r, request.IntentCreate)
	if err != nil {
		h.log.Debug("Failed to read tag request", "error", err)
		h.writeError(w, "Create", httputil.BodyError(err))
		return
	}

	t := parseTag(h.normalizer, in)
	if err := h.service.Create(r.Context(), t); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, t); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	t, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, t); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TagHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	tags, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, tags, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

// Update serves both PUT and the form-style POST update route; both carry
// update intent.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	in, err := request.FromHTTP(r, request.IntentUpdate)
	if err != nil {
		h.log.Debug("Failed to read tag request", "error", err)
		h.writeError(w, "Update", httputil.BodyError(err))
		return
	}

	t, err := h.service.Update(r.Context(), ps.ByName("id"), parseTagUpdate(h.normalizer, in))
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, t); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TagHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *TagHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/tags", h.Create)
	router.GET("/api/v1/tags", h.GetAll)
	router.GET("/api/v1/tags/:id", h.GetByID)
	router.PUT("/api/v1/tags/:id", h.Update)
	router.POST("/api/v1/tags/:id/update", h.Update)
	router.DELETE("/api/v1/tags/:id", h.Delete)
}
