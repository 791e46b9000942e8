package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abhinandangithub01/PhotoSet/internal/catalog"
	"github.com/Abhinandangithub01/PhotoSet/internal/ingest"
)

// StyleGet returns the current selection plus the catalogs the selectors
// render, including custom backgrounds under their reserved labels.
func (a *App) StyleGet(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"config":            a.Session.StyleConfig(),
		"backgroundOptions": a.Session.BackgroundOptions(),
		"lightingMoods":     catalog.LightingMoods,
		"socialPostStyles":  catalog.SocialPostStyles,
		"campaignGoals":     catalog.CampaignGoals,
	})
}

type styleUpdateRequest struct {
	BackgroundTheme *string `json:"backgroundTheme"`
	LightingMood    *string `json:"lightingMood"`
	CustomPrompt    *string `json:"customPrompt"`
}

// StyleUpdate applies a partial update to the selection. Fields left out of
// the payload keep their current values; an explicit empty customPrompt
// clears the override.
func (a *App) StyleUpdate(w http.ResponseWriter, r *http.Request) {
	var req styleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.BackgroundTheme != nil {
		a.Session.SetBackgroundTheme(*req.BackgroundTheme)
	}
	if req.LightingMood != nil {
		a.Session.SetLightingMood(*req.LightingMood)
	}
	if req.CustomPrompt != nil {
		a.Session.SetCustomPrompt(*req.CustomPrompt)
	}
	a.json(w, http.StatusOK, map[string]any{"config": a.Session.StyleConfig()})
}

// BackgroundsList returns the custom-background catalog.
func (a *App) BackgroundsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"backgrounds": a.Session.CustomBackgrounds()})
}

// BackgroundsAdd uploads one custom background under the "background" field,
// optionally named by the "name" form value (default: the filename).
func (a *App) BackgroundsAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	fhs := r.MultipartForm.File["background"]
	if len(fhs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "background file is required")
		return
	}
	hdr := fhs[0]
	f, err := hdr.Open()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable background file")
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable background file")
		return
	}
	bg, err := a.Session.AddCustomBackground(r.FormValue("name"), ingest.File{
		Name: hdr.Filename,
		MIME: hdr.Header.Get("Content-Type"),
		Data: data,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"background": bg})
}

// BackgroundsRemove deletes a custom background; the selected theme resets
// when it referenced the removed entry.
func (a *App) BackgroundsRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.Session.RemoveCustomBackground(id) {
		a.error(w, http.StatusNotFound, "not_found", "background not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"backgrounds": a.Session.CustomBackgrounds(),
		"config":      a.Session.StyleConfig(),
	})
}
