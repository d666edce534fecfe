package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "budgetly/pkg/errors"
	"budgetly/pkg/validation"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestWriteError_StatusFromAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NotFoundWithID("Budget", "x"), http.StatusNotFound},
		{"invalid input", apperrors.InvalidInput("bad"), http.StatusBadRequest},
		{"conflict", apperrors.Conflict("dup"), http.StatusConflict},
		{"validation", apperrors.Validation("bad", nil), http.StatusUnprocessableEntity},
		{"wrapped", fmt.Errorf("outer: %w", apperrors.InvalidInput("bad")), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"payload", apperrors.PayloadTooLarge(10), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError returned %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestWriteError_ValidationDetails(t *testing.T) {
	errs := validation.Errors{}.
		Add("auto_budget_period", "auto-budget period is required").
		Add("auto_budget_currency_id", "auto-budget currency id or code is required")

	rec := httptest.NewRecorder()
	_ = WriteError(rec, apperrors.FromValidation("Budget validation failed", errs))

	resp := decode(t, rec)
	if resp.Code != apperrors.CodeValidation {
		t.Errorf("code = %s", resp.Code)
	}
	if len(resp.Details) != 2 {
		t.Errorf("expected one detail per field, got %v", resp.Details)
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperrors.Internal("db failed", errors.New("secret")).WithDetails(map[string]any{"query": "x"})
	_ = WriteError(rec, err)

	if resp := decode(t, rec); resp.Details != nil {
		t.Errorf("expected no details on 5xx, got %v", resp.Details)
	}
}

func TestExtractLimitOffset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags?limit=500&offset=-3", nil)
	limit, offset, err := ExtractLimitOffset(req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if limit != 100 || offset != 0 {
		t.Errorf("got limit=%d offset=%d", limit, offset)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tags?limit=ten", nil)
	if _, _, err := ExtractLimitOffset(req); !apperrors.IsAppError(err) {
		t.Errorf("expected app error, got %v", err)
	}
}

func TestBodyError(t *testing.T) {
	if got := BodyError(&http.MaxBytesError{Limit: 5}); got.StatusCode() != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d", got.StatusCode())
	}
	if got := BodyError(errors.New("bad json")); got.StatusCode() != http.StatusBadRequest {
		t.Errorf("status = %d", got.StatusCode())
	}
}
