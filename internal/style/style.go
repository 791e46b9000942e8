// Package style holds the user's generation instructions and resolves them
// into the single directive sent to the model for a batch.
package style

import (
	"strings"

	"github.com/Abhinandangithub01/PhotoSet/internal/catalog"
)

// Config is the style selection for the next batch. A non-empty CustomPrompt
// supersedes the selectors entirely; the selectors keep their last values so
// clearing the prompt restores them.
type Config struct {
	BackgroundTheme string `json:"backgroundTheme"`
	LightingMood    string `json:"lightingMood"`
	CustomPrompt    string `json:"customPrompt"`
}

// Default returns the configuration a fresh session starts with.
func Default() Config {
	return Config{
		BackgroundTheme: catalog.DefaultBackgroundTheme(),
		LightingMood:    catalog.DefaultLightingMood(),
	}
}

// CustomBackground is a user-supplied reference image selectable in place of
// a preset theme. Its persisted JSON shape matches the session-storage layout.
type CustomBackground struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
	Base64   string `json:"base64"`
	DataURL  string `json:"dataUrl"`
}

// Resolved is the outcome of style resolution: exactly one instruction and at
// most one reference image, shared by every item of a batch.
type Resolved struct {
	Instruction string
	Reference   *CustomBackground
}

// Resolve maps a configuration and the custom-background catalog to the
// generation instruction. It never fails: an unresolvable custom background
// degrades to resolution without a reference image.
func Resolve(cfg Config, backgrounds []CustomBackground) Resolved {
	if prompt := strings.TrimSpace(cfg.CustomPrompt); prompt != "" {
		return Resolved{Instruction: prompt}
	}

	if name, ok := catalog.CustomThemeBase(cfg.BackgroundTheme); ok {
		resolved := Resolved{Instruction: cfg.LightingMood}
		for i := range backgrounds {
			if backgrounds[i].Name == name {
				bg := backgrounds[i]
				resolved.Reference = &bg
				break
			}
		}
		return resolved
	}

	return Resolved{Instruction: cfg.BackgroundTheme + " with " + cfg.LightingMood + " lighting"}
}
