package handler

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/taskmanager-server/internal/api/http/response"
	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/model"
)

const assetCacheControl = "public, max-age=3600"

// Asset serves public static files from object storage.
type Asset struct {
	store  model.AssetStore
	logger *logger.Logger
}

// NewAsset creates a new Asset handler.
func NewAsset(store model.AssetStore, logger *logger.Logger) *Asset {
	return &Asset{store: store, logger: logger}
}

// Get streams the object named by the wildcard path segment.
func (h *Asset) Get(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if key == "" {
		response.Error(w, r, apierror.NewErrAssetNotFound(key), h.logger)
		return
	}

	asset, err := h.store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, r, apierror.NewErrAssetNotFound(key), h.logger)
			return
		}
		response.Error(w, r, apierror.NewErrInternalServerError(err), h.logger)
		return
	}
	defer asset.Body.Close()

	header := w.Header()
	header.Set("Cache-Control", assetCacheControl)
	if asset.ETag != "" {
		header.Set("ETag", asset.ETag)
	}
	if !asset.LastModified.IsZero() {
		header.Set("Last-Modified", asset.LastModified.UTC().Format(http.TimeFormat))
	}

	if asset.ETag != "" && r.Header.Get("If-None-Match") == asset.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	contentType := asset.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	if asset.Size >= 0 {
		header.Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, asset.Body); err != nil {
		logger.FromContext(r.Context(), h.logger).Warn("Asset handler: failed to stream asset",
			"key", key,
			"error", err.Error())
	}
}
