// Package httpapi assembles the studio's localhost router.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Abhinandangithub01/PhotoSet/internal/http/handlers"
	"github.com/Abhinandangithub01/PhotoSet/internal/middleware"
)

// Options configures the router.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	// RateLimitPerMin caps model-backed requests per client per minute.
	// Zero disables the limiter.
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}

	// Only the endpoints that reach the generation API are limited; list and
	// upload operations stay unthrottled. One limiter instance so every
	// model-backed route shares the same window.
	limiter := func(next http.Handler) http.Handler { return next }
	if opts.RateLimitPerMin > 0 {
		limiter = middleware.RateLimit(opts.RateLimitPerMin, time.Minute)
	}
	limited := func(r chi.Router) chi.Router { return r.With(limiter) }

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/session", func(r chi.Router) {
		r.Post("/reset", app.SessionReset)

		r.Route("/images", func(r chi.Router) {
			r.Get("/", app.ImagesList)
			r.Post("/", app.ImagesUpload)
			r.Delete("/{id}", app.ImagesRemove)
			limited(r).Post("/{id}/suggest-scene", app.SuggestScene)
			limited(r).Post("/{id}/recommend-style", app.RecommendStyle)
			limited(r).Post("/{id}/marketing-copy", app.MarketingCopy)
			limited(r).Post("/{id}/campaign-plan", app.CampaignPlan)
			limited(r).Post("/{id}/social-post", app.SocialPost)
		})

		r.Route("/style", func(r chi.Router) {
			r.Get("/", app.StyleGet)
			r.Patch("/", app.StyleUpdate)
		})

		r.Route("/backgrounds", func(r chi.Router) {
			r.Get("/", app.BackgroundsList)
			r.Post("/", app.BackgroundsAdd)
			r.Delete("/{id}", app.BackgroundsRemove)
		})

		limited(r).Post("/generate", app.Generate)
		r.Get("/results", app.Results)
		r.Get("/events", app.Events)
		r.Get("/results/{id}/download", app.DownloadResult)
		r.Get("/results/download", app.DownloadAll)
	})

	return r
}
