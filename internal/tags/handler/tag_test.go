package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tagerrors "budgetly/internal/tags/errors"
	"budgetly/internal/tags/service"
	"budgetly/internal/tags/validator"
	"budgetly/pkg/config"
	mongotx "budgetly/pkg/db/mongo"
	"budgetly/pkg/kafka"
	"budgetly/pkg/logger"
	"budgetly/pkg/model"
	"budgetly/pkg/request"
	"budgetly/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

const tagID = "65f1a2b3c4d5e6f708192a3d"

type memoryTagRepository struct {
	tags map[string]*model.Tag
}

func (m *memoryTagRepository) Create(ctx context.Context, t *model.Tag) error {
	t.ID = tagID
	m.tags[t.ID] = t
	return nil
}

func (m *memoryTagRepository) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	if t, ok := m.tags[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, tagerrors.ErrNotFound
}

func (m *memoryTagRepository) FindByTag(ctx context.Context, tag string) (*model.Tag, error) {
	for _, t := range m.tags {
		if t.Tag == tag {
			return t, nil
		}
	}
	return nil, tagerrors.ErrNotFound
}

func (m *memoryTagRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Tag, error) {
	out := []*model.Tag{}
	for _, t := range m.tags {
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryTagRepository) Update(ctx context.Context, id string, t *model.Tag) error {
	m.tags[id] = t
	return nil
}

func (m *memoryTagRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.tags[id]; !ok {
		return tagerrors.ErrNotFound
	}
	delete(m.tags, id)
	return nil
}

func (m *memoryTagRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.tags)), nil
}

func (m *memoryTagRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestRouter(repo *memoryTagRepository) *httprouter.Router {
	log := logger.Discard()
	cfg := &config.Config{Log: log, ReadTimeout: time.Second}
	svc := service.NewTagService(repo, validator.NewTagValidator(log), kafka.NewEmitter(nil, "test", nil, log), cfg)
	h := NewTagHandler(svc, request.NewNormalizer(sanitizer.NewText(), log), log)

	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func storedTag() *model.Tag {
	return &model.Tag{
		ID:       tagID,
		Tag:      "holiday",
		Location: &model.Location{Longitude: "4.8952", Latitude: "52.3702", ZoomLevel: "6"},
	}
}

const form = "application/x-www-form-urlencoded"

func TestCreate_StoresLocationWhenFlagged(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPost, "/api/v1/tags", form,
		"tag=%3Ci%3Eholiday%3C%2Fi%3E&date=2024-03-05&has_location=1&longitude=4.8952&latitude=52.3702&zoom_level=6")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := repo.tags[tagID]
	require.NotNil(t, got)
	assert.Equal(t, "holiday", got.Tag)
	require.NotNil(t, got.Date)
	assert.Equal(t, 2024, got.Date.Year())
	require.NotNil(t, got.Location)
	assert.Equal(t, "52.3702", got.Location.Latitude)
}

func TestCreate_JSONBooleanFlagStoresLocation(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPost, "/api/v1/tags", "application/json",
		`{"tag":"work","has_location":true,"longitude":"4.9","latitude":"52.3","zoom_level":"6"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := repo.tags[tagID].Location
	require.NotNil(t, got)
	assert.Equal(t, model.Location{Longitude: "4.9", Latitude: "52.3", ZoomLevel: "6"}, *got)
}

func TestUpdate_JSONBooleanFlagOffClearsLocation(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPut, "/api/v1/tags/"+tagID, "application/json",
		`{"has_location":false,"longitude":"4.9","latitude":"52.3","zoom_level":"6"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, repo.tags[tagID].Location)
}

func TestCreate_IgnoresLocationWithoutFlag(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPost, "/api/v1/tags", "application/json",
		`{"tag":"work","longitude":"4.8952","latitude":"52.3702","zoom_level":"6"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, repo.tags[tagID].Location)
}

func TestCreate_InvalidCoordinatesReturn422(t *testing.T) {
	router := newTestRouter(&memoryTagRepository{tags: map[string]*model.Tag{}})

	rec := do(router, http.MethodPost, "/api/v1/tags", "application/json",
		`{"tag":"work","has_location":1,"longitude":"500","latitude":"52.3702","zoom_level":"6"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var resp struct {
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "longitude")
}

func TestCreate_DuplicateTagConflicts(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPost, "/api/v1/tags", "application/json", `{"tag":"holiday"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdate_IncompleteCoordinatesClearLocation(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPut, "/api/v1/tags/"+tagID, "application/json",
		`{"has_location":"1","longitude":"5.1","latitude":null,"zoom_level":"6"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, repo.tags[tagID].Location)
	assert.Equal(t, "holiday", repo.tags[tagID].Tag)
}

func TestUpdate_FormRouteReplacesLocation(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPost, "/api/v1/tags/"+tagID+"/update", form,
		"has_location=yes&longitude=-0.1276&latitude=51.5072&zoom_level=9")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := repo.tags[tagID].Location
	require.NotNil(t, got)
	assert.Equal(t, model.Location{Longitude: "-0.1276", Latitude: "51.5072", ZoomLevel: "9"}, *got)
}

func TestUpdate_WithoutLocationFieldsKeepsLocation(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPut, "/api/v1/tags/"+tagID, "application/json",
		`{"tag":"trip","description":"  summer\r\n2024  "}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := repo.tags[tagID]
	assert.Equal(t, "trip", got.Tag)
	require.NotNil(t, got.Description)
	assert.Equal(t, "summer\n2024", *got.Description)
	assert.NotNil(t, got.Location)
}

func TestUpdate_FlagOffClearsLocation(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodPut, "/api/v1/tags/"+tagID, form,
		"has_location=0&longitude=1&latitude=1&zoom_level=1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, repo.tags[tagID].Location)
}

func TestGetAndDelete(t *testing.T) {
	repo := &memoryTagRepository{tags: map[string]*model.Tag{tagID: storedTag()}}
	router := newTestRouter(repo)

	rec := do(router, http.MethodGet, "/api/v1/tags/"+tagID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/tags?limit=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/tags/"+tagID, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/tags/"+tagID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/tags/"+tagID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
