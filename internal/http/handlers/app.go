// Package handlers exposes the studio session over a localhost HTTP surface.
// Every endpoint maps 1:1 to a session mutation or query; no state lives in
// the handlers themselves.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Abhinandangithub01/PhotoSet/internal/pipeline"
	"github.com/Abhinandangithub01/PhotoSet/internal/studio"
)

type App struct {
	Session *studio.Session
	Logger  zerolog.Logger
}

func NewApp(session *studio.Session, logger zerolog.Logger) *App {
	return &App{Session: session, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// fail maps session and pipeline errors onto HTTP status codes: configuration
// errors are client errors, everything else is an upstream failure.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrNoImages),
		errors.Is(err, studio.ErrEmptyPromoText),
		errors.Is(err, studio.ErrEmptyName):
		a.error(w, http.StatusUnprocessableEntity, "configuration", err.Error())
	case errors.Is(err, studio.ErrImageNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, studio.ErrGenerationInProgress):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	default:
		a.error(w, http.StatusBadGateway, "generation", err.Error())
	}
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
