// Package studio holds the single-user session state: the uploaded image
// list, the custom-background catalog, the style configuration, and the
// current generation ledger. All UI surfaces drive the session through the
// mutation entry points defined here.
package studio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Abhinandangithub01/PhotoSet/internal/catalog"
	"github.com/Abhinandangithub01/PhotoSet/internal/genai"
	"github.com/Abhinandangithub01/PhotoSet/internal/ingest"
	"github.com/Abhinandangithub01/PhotoSet/internal/pipeline"
	"github.com/Abhinandangithub01/PhotoSet/internal/storage"
	"github.com/Abhinandangithub01/PhotoSet/internal/style"
)

// customBackgroundsKey is the fixed persistence key for the custom-background
// catalog.
const customBackgroundsKey = "photoset-custom-bgs"

// Configuration errors, caught before any network call.
var (
	ErrGenerationInProgress = errors.New("studio: a generation batch is already running")
	ErrImageNotFound        = errors.New("studio: image not found")
	ErrEmptyPromoText       = errors.New("studio: promotional text is required")
	ErrEmptyName            = errors.New("studio: background name is required")
)

// Generator is the full generation-client contract the session depends on.
// *genai.Client satisfies it.
type Generator interface {
	pipeline.Enhancer
	SuggestScene(ctx context.Context, img genai.Image) (string, error)
	RecommendStyle(ctx context.Context, img genai.Image) (genai.StyleRecommendation, error)
	GenerateMarketingCopy(ctx context.Context, img genai.Image) (genai.MarketingCopy, error)
	GenerateCampaignPlan(ctx context.Context, img genai.Image, goal string) ([]genai.CampaignDay, error)
	SocialPost(ctx context.Context, img genai.Image, promoText, style string) ([]byte, error)
}

// Options configures a session.
type Options struct {
	Client Generator
	KV     storage.KV
	Logger zerolog.Logger
}

// Session is the observable state container for one user session. A zero
// session is not usable; construct with New.
type Session struct {
	mu sync.Mutex

	client Generator
	runner *pipeline.Runner
	kv     storage.KV
	logger zerolog.Logger

	images      []ingest.UploadedImage
	backgrounds []style.CustomBackground
	styleCfg    style.Config
	ledger      *pipeline.Ledger
	generating  bool
}

// New constructs a session with default style selections and the
// custom-background catalog restored from the persistence port. Restore
// failures are logged and leave the catalog empty; they never fail
// construction.
func New(opts Options) *Session {
	s := &Session{
		client:   opts.Client,
		runner:   pipeline.NewRunner(opts.Client, opts.Logger),
		kv:       opts.KV,
		logger:   opts.Logger,
		styleCfg: style.Default(),
	}
	s.loadBackgrounds()
	return s
}

// AddImages converts one batch-add of files and appends the accepted images
// to the session's list. Non-image files are silently dropped. Any change to
// the upload list discards the current ledger.
func (s *Session) AddImages(files []ingest.File) []ingest.UploadedImage {
	added := ingest.ConvertAll(files)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(added) > 0 {
		s.images = append(s.images, added...)
		s.ledger = nil
	}
	return added
}

// RemoveImage drops one uploaded image by id.
func (s *Session) RemoveImage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			s.ledger = nil
			return true
		}
	}
	return false
}

// Images returns a copy of the uploaded image list.
func (s *Session) Images() []ingest.UploadedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ingest.UploadedImage, len(s.images))
	copy(out, s.images)
	return out
}

// StyleConfig returns the current style selection.
func (s *Session) StyleConfig() style.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.styleCfg
}

// SetBackgroundTheme records the selected theme. The value is kept even when
// a custom prompt currently supersedes it.
func (s *Session) SetBackgroundTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styleCfg.BackgroundTheme = theme
}

// SetLightingMood records the selected lighting mood.
func (s *Session) SetLightingMood(mood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styleCfg.LightingMood = mood
}

// SetCustomPrompt sets (or, with an empty string, clears) the freeform
// override prompt.
func (s *Session) SetCustomPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styleCfg.CustomPrompt = prompt
}

// AddCustomBackground converts an uploaded file into a named custom
// background, appends it to the catalog, and persists the catalog.
func (s *Session) AddCustomBackground(name string, f ingest.File) (style.CustomBackground, error) {
	if name == "" {
		name = f.Name
	}
	if name == "" {
		return style.CustomBackground{}, ErrEmptyName
	}
	img, err := ingest.Convert(f)
	if err != nil {
		return style.CustomBackground{}, fmt.Errorf("studio: convert background: %w", err)
	}
	bg := style.CustomBackground{
		ID:       uuid.NewString(),
		Name:     name,
		MIMEType: img.MIMEType,
		Data:     img.Data,
		Base64:   img.Base64,
		DataURL:  img.DataURL,
	}
	s.mu.Lock()
	s.backgrounds = append(s.backgrounds, bg)
	s.persistBackgroundsLocked()
	s.mu.Unlock()
	return bg, nil
}

// RemoveCustomBackground drops a catalog entry by id. When the removed
// background is the currently selected theme, the theme resets to the first
// preset.
func (s *Session) RemoveCustomBackground(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.backgrounds {
		if s.backgrounds[i].ID != id {
			continue
		}
		if catalog.CustomThemeName(s.backgrounds[i].Name) == s.styleCfg.BackgroundTheme {
			s.styleCfg.BackgroundTheme = catalog.DefaultBackgroundTheme()
		}
		s.backgrounds = append(s.backgrounds[:i], s.backgrounds[i+1:]...)
		s.persistBackgroundsLocked()
		return true
	}
	return false
}

// CustomBackgrounds returns a copy of the custom-background catalog.
func (s *Session) CustomBackgrounds() []style.CustomBackground {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]style.CustomBackground, len(s.backgrounds))
	copy(out, s.backgrounds)
	return out
}

// BackgroundOptions lists every selectable theme: the presets followed by the
// custom backgrounds under their reserved labels.
func (s *Session) BackgroundOptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(catalog.BackgroundThemes)+len(s.backgrounds))
	out = append(out, catalog.BackgroundThemes...)
	for _, bg := range s.backgrounds {
		out = append(out, catalog.CustomThemeName(bg.Name))
	}
	return out
}

// Generate launches a batch over the current uploads with the current style.
// It rejects re-entrant starts while a batch is running; the guard only
// prevents new batches, never interrupts a running one. The previous ledger
// is replaced wholesale.
func (s *Session) Generate(ctx context.Context) (*pipeline.Ledger, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	images := make([]ingest.UploadedImage, len(s.images))
	copy(images, s.images)
	resolved := style.Resolve(s.styleCfg, s.backgrounds)

	// Start is non-blocking; holding the lock closes the window between the
	// re-entrancy check and the guard being set.
	ledger, err := s.runner.Start(ctx, images, resolved)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.ledger = ledger
	s.generating = true
	s.mu.Unlock()

	go func() {
		ledger.Wait()
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	return ledger, nil
}

// Ledger returns the current batch ledger, or nil before the first batch.
func (s *Session) Ledger() *pipeline.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger
}

// Results returns the current ledger snapshot, or nil before the first batch.
func (s *Session) Results() []pipeline.Result {
	if l := s.Ledger(); l != nil {
		return l.Snapshot()
	}
	return nil
}

// Reset discards the uploads, the ledger, and the style selection. The
// custom-background catalog survives, like browser session storage surviving
// a page reload.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = nil
	s.ledger = nil
	s.styleCfg = style.Default()
}

func (s *Session) imagePayload(id string) (genai.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, img := range s.images {
		if img.ID == id {
			return genai.Image{Data: img.Data, MIMEType: img.MIMEType}, nil
		}
	}
	return genai.Image{}, ErrImageNotFound
}

// SuggestScene asks the model for a freeform scene prompt for one uploaded
// image. Independent of the batch; failures never touch the ledger.
func (s *Session) SuggestScene(ctx context.Context, imageID string) (string, error) {
	img, err := s.imagePayload(imageID)
	if err != nil {
		return "", err
	}
	return s.client.SuggestScene(ctx, img)
}

// RecommendStyle asks the model to pick presets for one uploaded image and
// applies the recommendation to the session's selectors.
func (s *Session) RecommendStyle(ctx context.Context, imageID string) (genai.StyleRecommendation, error) {
	img, err := s.imagePayload(imageID)
	if err != nil {
		return genai.StyleRecommendation{}, err
	}
	rec, err := s.client.RecommendStyle(ctx, img)
	if err != nil {
		return genai.StyleRecommendation{}, err
	}
	s.mu.Lock()
	s.styleCfg.BackgroundTheme = rec.BackgroundTheme
	s.styleCfg.LightingMood = rec.LightingMood
	s.mu.Unlock()
	return rec, nil
}

// MarketingCopy generates text fragments for one uploaded image.
func (s *Session) MarketingCopy(ctx context.Context, imageID string) (genai.MarketingCopy, error) {
	img, err := s.imagePayload(imageID)
	if err != nil {
		return genai.MarketingCopy{}, err
	}
	return s.client.GenerateMarketingCopy(ctx, img)
}

// CampaignPlan generates the 7-day posting plan for one uploaded image.
func (s *Session) CampaignPlan(ctx context.Context, imageID, goal string) ([]genai.CampaignDay, error) {
	img, err := s.imagePayload(imageID)
	if err != nil {
		return nil, err
	}
	if goal == "" {
		goal = catalog.DefaultCampaignGoal()
	}
	return s.client.GenerateCampaignPlan(ctx, img, goal)
}

// SocialPost generates a social-media ad image for one uploaded image. An
// empty promotional text is a configuration error caught before any call.
func (s *Session) SocialPost(ctx context.Context, imageID, promoText, postStyle string) ([]byte, error) {
	if promoText == "" {
		return nil, ErrEmptyPromoText
	}
	img, err := s.imagePayload(imageID)
	if err != nil {
		return nil, err
	}
	if postStyle == "" {
		postStyle = catalog.DefaultSocialPostStyle()
	}
	return s.client.SocialPost(ctx, img, promoText, postStyle)
}

// persistBackgroundsLocked writes the catalog through the persistence port.
// Fire and forget: failures are logged, never surfaced.
func (s *Session) persistBackgroundsLocked() {
	if s.kv == nil {
		return
	}
	data, err := json.Marshal(s.backgrounds)
	if err != nil {
		s.logger.Error().Err(err).Msg("studio: marshal custom backgrounds")
		return
	}
	if err := s.kv.Set(customBackgroundsKey, data); err != nil {
		s.logger.Error().Err(err).Msg("studio: persist custom backgrounds")
	}
}

// loadBackgrounds restores the catalog from the persistence port, rebuilding
// raw bytes from the persisted base64 form.
func (s *Session) loadBackgrounds() {
	if s.kv == nil {
		return
	}
	data, ok, err := s.kv.Get(customBackgroundsKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("studio: load custom backgrounds")
		return
	}
	if !ok || len(data) == 0 {
		return
	}
	var backgrounds []style.CustomBackground
	if err := json.Unmarshal(data, &backgrounds); err != nil {
		s.logger.Error().Err(err).Msg("studio: decode custom backgrounds")
		return
	}
	for i := range backgrounds {
		raw, err := base64.StdEncoding.DecodeString(backgrounds[i].Base64)
		if err != nil {
			s.logger.Warn().Str("name", backgrounds[i].Name).Msg("studio: skipping undecodable custom background")
			continue
		}
		backgrounds[i].Data = raw
		s.backgrounds = append(s.backgrounds, backgrounds[i])
	}
}
