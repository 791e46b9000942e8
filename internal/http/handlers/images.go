package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abhinandangithub01/PhotoSet/internal/ingest"
)

// maxUploadBytes caps one multipart upload. Product photos are comfortably
// below this; the limit only guards against accidental huge files.
const maxUploadBytes = 64 << 20

// ImagesUpload accepts a multipart batch-add under the "images" field.
// Non-image files are dropped silently, matching the file picker's filter.
func (a *App) ImagesUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	var files []ingest.File
	for _, hdr := range r.MultipartForm.File["images"] {
		f, err := hdr.Open()
		if err != nil {
			a.Logger.Warn().Err(err).Str("filename", hdr.Filename).Msg("handlers: open upload")
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			a.Logger.Warn().Err(err).Str("filename", hdr.Filename).Msg("handlers: read upload")
			continue
		}
		files = append(files, ingest.File{
			Name: hdr.Filename,
			MIME: hdr.Header.Get("Content-Type"),
			Data: data,
		})
	}
	added := a.Session.AddImages(files)
	a.json(w, http.StatusOK, map[string]any{
		"added":  added,
		"images": a.Session.Images(),
	})
}

// ImagesList returns the session's current upload list.
func (a *App) ImagesList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"images": a.Session.Images()})
}

// ImagesRemove drops one uploaded image.
func (a *App) ImagesRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.Session.RemoveImage(id) {
		a.error(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"images": a.Session.Images()})
}

// SessionReset discards uploads, results, and style selections.
func (a *App) SessionReset(w http.ResponseWriter, r *http.Request) {
	a.Session.Reset()
	a.json(w, http.StatusOK, map[string]string{"status": "reset"})
}
