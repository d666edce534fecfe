package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"budgetly/pkg/logger"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return f.err
}

func get(h *Handler, path string) (*httptest.ResponseRecorder, Response) {
	router := httprouter.New()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestHealth(t *testing.T) {
	rec, resp := get(NewHandler(fakePinger{err: errors.New("down")}, false, logger.Discard()), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
}

func TestReady(t *testing.T) {
	rec, resp := get(NewHandler(fakePinger{}, true, logger.Discard()), "/ready")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.Equal(t, "enabled", resp.Events)
}

func TestReady_DatabaseDown(t *testing.T) {
	rec, resp := get(NewHandler(fakePinger{err: errors.New("no reachable servers")}, false, logger.Discard()), "/ready")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "error", resp.Database)
	assert.Equal(t, "disabled", resp.Events)
}
