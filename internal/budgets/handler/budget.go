package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"budgetly/internal/budgets/service"
	httputil "budgetly/pkg/http"
	"budgetly/pkg/logger"
	"budgetly/pkg/request"
)

type BudgetHandler struct {
	service    service.BudgetService
	normalizer *request.Normalizer
	log        *logger.Logger
}

func NewBudgetHandler(service service.BudgetService, normalizer *request.Normalizer, log *logger.Logger) *BudgetHandler {
	return &BudgetHandler{
		service:    service,
		normalizer: normalizer,
		log:        log,
	}
}

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := request.FromHTTP(r, request.IntentCreate)
	if err != nil {
		h.log.Debug("Failed to read budget request", "error", err)
		h.writeError(w, "Create", httputil.BodyError(err))
		return
	}

	b, data := parseBudget(h.normalizer, in)
	if err := h.service.Create(r.Context(), b, data); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, b); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BudgetHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, b); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	budgets, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, budgets, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	in, err := request.FromHTTP(r, request.IntentUpdate)
	if err != nil {
		h.log.Debug("Failed to read budget request", "error", err)
		h.writeError(w, "Update", httputil.BodyError(err))
		return
	}

	update, data := parseBudgetUpdate(h.normalizer, in)
	b, err := h.service.Update(r.Context(), ps.ByName("id"), update, data)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, b); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BudgetHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BudgetHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/budgets", h.Create)
	router.GET("/api/v1/budgets", h.GetAll)
	router.GET("/api/v1/budgets/:id", h.GetByID)
	router.PUT("/api/v1/budgets/:id", h.Update)
	router.PATCH("/api/v1/budgets/:id", h.Update)
	router.DELETE("/api/v1/budgets/:id", h.Delete)
}
