package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"budgetly/pkg/config"
	"budgetly/pkg/logger"
	"budgetly/pkg/middleware"
)

type routes func(*httprouter.Router)

func (f routes) RegisterRoutes(r *httprouter.Router) { f(r) }

func newTestApp() *Application {
	cfg := &config.Config{
		Port:           "8080",
		RequestTimeout: time.Second,
		MaxRequestSize: 64,
		Log:            logger.Discard(),
	}

	health := routes(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})
	api := routes(func(r *httprouter.Router) {
		r.POST("/api/v1/things", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusCreated)
		})
		r.GET("/api/v1/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
			panic("boom")
		})
	})

	a := NewApplication(cfg)
	a.SetApp(health, api)
	return a
}

func serve(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApplication_Routing(t *testing.T) {
	h := newTestApp().Handler()

	rec := serve(h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = serve(h, http.MethodPost, "/api/v1/things", "application/json", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestApplication_MiddlewareStack(t *testing.T) {
	h := newTestApp().Handler()

	rec := serve(h, http.MethodPost, "/api/v1/things", "text/plain", "x")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = serve(h, http.MethodPost, "/api/v1/things", "application/json", strings.Repeat("a", 128))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/panic", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
