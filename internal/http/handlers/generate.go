package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Abhinandangithub01/PhotoSet/internal/pipeline"
	"github.com/Abhinandangithub01/PhotoSet/pkg/zip"
)

// Generate launches a batch over the current uploads. It returns immediately
// with the all-pending ledger; progress streams via Events. The batch must
// outlive this request, so it is detached from the request's cancellation:
// once started, a run goes to completion.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	ledger, err := a.Session.Generate(context.WithoutCancel(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{"results": ledger.Snapshot()})
}

// Results returns the current ledger snapshot and progress indicator.
func (a *App) Results(w http.ResponseWriter, r *http.Request) {
	ledger := a.Session.Ledger()
	if ledger == nil {
		a.json(w, http.StatusOK, map[string]any{"results": []pipeline.Result{}})
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"results":  ledger.Snapshot(),
		"progress": ledger.Progress(),
	})
}

// Events streams ledger notifications for the current batch as server-sent
// events until the batch finishes or the client disconnects.
func (a *App) Events(w http.ResponseWriter, r *http.Request) {
	ledger := a.Session.Ledger()
	if ledger == nil {
		a.error(w, http.StatusNotFound, "not_found", "no batch has been started")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := ledger.Subscribe()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			writeEvent(w, ev)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev pipeline.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
}

// DownloadResult serves one successful result as a PNG attachment.
func (a *App) DownloadResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, ok := a.findResult(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "result not found")
		return
	}
	if result.Status != pipeline.StatusSuccess {
		a.error(w, http.StatusConflict, "conflict", "result is not ready for download")
		return
	}
	data, err := decodeDataURL(result.GeneratedURL)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "stored result is corrupt")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(result)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DownloadAll bundles every successful result of the current batch into one
// zip archive.
func (a *App) DownloadAll(w http.ResponseWriter, r *http.Request) {
	results := a.Session.Results()
	var assets []zip.Asset
	for _, result := range results {
		if result.Status != pipeline.StatusSuccess {
			continue
		}
		data, err := decodeDataURL(result.GeneratedURL)
		if err != nil {
			a.Logger.Warn().Str("result_id", result.ID).Msg("handlers: skipping corrupt result in archive")
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: downloadName(result),
			MIME:     "image/png",
			Data:     data,
		})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no successful results to download")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="photoset-results.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(zip.ArchiveAssets(assets))
}

func (a *App) findResult(id string) (pipeline.Result, bool) {
	for _, result := range a.Session.Results() {
		if result.ID == id {
			return result, true
		}
	}
	return pipeline.Result{}, false
}

func downloadName(result pipeline.Result) string {
	base := strings.TrimSuffix(result.Original.Filename, fileExt(result.Original.Filename))
	if base == "" {
		base = result.ID
	}
	return "photoset-" + base + ".png"
}

func fileExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx:]
	}
	return ""
}

func decodeDataURL(dataURL string) ([]byte, error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, fmt.Errorf("not a data url")
	}
	return base64.StdEncoding.DecodeString(dataURL[idx+1:])
}
