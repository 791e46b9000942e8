package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SuggestScene returns a freeform scene prompt for one uploaded image,
// suitable for pasting into the custom style prompt.
func (a *App) SuggestScene(w http.ResponseWriter, r *http.Request) {
	suggestion, err := a.Session.SuggestScene(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}

// RecommendStyle asks the model for a preset pairing and applies it to the
// session's selectors.
func (a *App) RecommendStyle(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Session.RecommendStyle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"recommendation": rec,
		"config":         a.Session.StyleConfig(),
	})
}

// MarketingCopy generates headlines, body copy, and hashtags for one image.
func (a *App) MarketingCopy(w http.ResponseWriter, r *http.Request) {
	copyOut, err := a.Session.MarketingCopy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"copy": copyOut})
}

type campaignPlanRequest struct {
	Goal string `json:"goal"`
}

// CampaignPlan generates the 7-day posting plan for one image. An empty body
// selects the default campaign goal.
func (a *App) CampaignPlan(w http.ResponseWriter, r *http.Request) {
	var req campaignPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	plan, err := a.Session.CampaignPlan(r.Context(), chi.URLParam(r, "id"), req.Goal)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"plan": plan})
}

type socialPostRequest struct {
	PromoText string `json:"promoText"`
	Style     string `json:"style"`
}

// SocialPost generates a social-media ad image for one uploaded image and
// returns it as a data URL, mirroring how batch results are delivered.
func (a *App) SocialPost(w http.ResponseWriter, r *http.Request) {
	var req socialPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	data, err := a.Session.SocialPost(r.Context(), chi.URLParam(r, "id"), req.PromoText, req.Style)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"imageUrl": "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
	})
}
