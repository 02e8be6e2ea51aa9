package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/taskmanager-server/internal/mocks"
	"github.com/dtroode/taskmanager-server/internal/model"
	"github.com/dtroode/taskmanager-server/internal/testutil"
)

func testAsset(body string) model.Asset {
	return model.Asset{
		Body:         io.NopCloser(strings.NewReader(body)),
		ContentType:  "text/css",
		Size:         int64(len(body)),
		ETag:         `"abc123"`,
		LastModified: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestAsset_Get(t *testing.T) {
	t.Parallel()

	store := mocks.NewAssetStore(t)
	store.On("Open", mock.Anything, "css/site.css").Return(testAsset("body{}"), nil)

	h := NewAsset(store, testutil.MakeNoopLogger())
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil), "*", "css/site.css")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.Equal(t, "text/css", rec.Header().Get("Content-Type"))
	assert.Equal(t, "6", rec.Header().Get("Content-Length"))
	assert.Equal(t, `"abc123"`, rec.Header().Get("ETag"))
	assert.Equal(t, "Thu, 02 Jan 2025 03:04:05 GMT", rec.Header().Get("Last-Modified"))
}

func TestAsset_Get_NotModified(t *testing.T) {
	t.Parallel()

	store := mocks.NewAssetStore(t)
	store.On("Open", mock.Anything, "logo.png").Return(testAsset("png"), nil)

	h := NewAsset(store, testutil.MakeNoopLogger())
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/static/logo.png", nil), "*", "logo.png")
	req.Header.Set("If-None-Match", `"abc123"`)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAsset_Get_PathIsCleaned(t *testing.T) {
	t.Parallel()

	store := mocks.NewAssetStore(t)
	store.On("Open", mock.Anything, "secret.txt").Return(model.Asset{}, model.ErrNotFound)

	h := NewAsset(store, testutil.MakeNoopLogger())
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/static/x", nil), "*", "../../secret.txt")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestAsset_Get_EmptyKey(t *testing.T) {
	t.Parallel()

	store := mocks.NewAssetStore(t)

	h := NewAsset(store, testutil.MakeNoopLogger())
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/static/", nil), "*", "")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAsset_Get_StoreFailure(t *testing.T) {
	t.Parallel()

	store := mocks.NewAssetStore(t)
	store.On("Open", mock.Anything, "a.txt").Return(model.Asset{}, errors.New("connection reset"))

	h := NewAsset(store, testutil.MakeNoopLogger())
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/static/a.txt", nil), "*", "a.txt")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
