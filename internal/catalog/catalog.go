// Package catalog holds the closed option lists a session can choose from.
// Selector widgets render these verbatim; the generation pipeline treats any
// value outside them as freeform text.
package catalog

import "strings"

// BackgroundThemes are the preset scene descriptions for the photo shoot.
var BackgroundThemes = []string{
	"A professional studio with a clean, seamless backdrop",
	"A rustic wooden surface with a warm, natural feel",
	"A sleek, modern kitchen countertop with stainless steel appliances",
	"A vibrant, colorful abstract background",
	"An outdoor setting with lush greenery and soft sunlight",
	"A minimalist concrete slab",
	"A cozy home interior with soft textiles",
}

// LightingMoods are the preset lighting treatments.
var LightingMoods = []string{
	"Soft and even studio lighting",
	"Dramatic, high-contrast lighting",
	"Warm, golden hour sunlight",
	"Cool, moody blue tones",
	"Bright and airy natural daylight",
	"Playful and colorful neon lights",
}

// SocialPostStyles are the preset design directions for single-post ads.
var SocialPostStyles = []string{
	"Bold & Punchy",
	"Elegant & Minimal",
	"Playful & Funky",
	"Modern & Geometric",
	"Natural & Organic",
	"Corporate & Clean",
	"Vintage & Retro",
}

// CampaignGoals are the preset objectives for the 7-day campaign planner.
var CampaignGoals = []string{
	"Launch a new product",
	"Promote a seasonal sale",
	"Increase brand engagement",
	"Highlight product features",
	"Share customer testimonials",
	"Run a flash sale",
}

// customThemePrefix marks a background theme that refers to a user-supplied
// reference image instead of a preset scene.
const customThemePrefix = "Custom: "

func DefaultBackgroundTheme() string { return BackgroundThemes[0] }

func DefaultLightingMood() string { return LightingMoods[0] }

func DefaultSocialPostStyle() string { return SocialPostStyles[0] }

func DefaultCampaignGoal() string { return CampaignGoals[0] }

// CustomThemeName builds the selectable label for a custom background.
func CustomThemeName(name string) string {
	return customThemePrefix + name
}

// IsCustomTheme reports whether theme refers to a custom background.
func IsCustomTheme(theme string) bool {
	return strings.HasPrefix(theme, customThemePrefix)
}

// CustomThemeBase strips the custom prefix, returning the background's name.
// The second result is false when theme is not a custom reference.
func CustomThemeBase(theme string) (string, bool) {
	if !IsCustomTheme(theme) {
		return "", false
	}
	return strings.TrimPrefix(theme, customThemePrefix), true
}

// ContainsBackgroundTheme reports whether theme is one of the presets.
func ContainsBackgroundTheme(theme string) bool {
	return contains(BackgroundThemes, theme)
}

// ContainsLightingMood reports whether mood is one of the presets.
func ContainsLightingMood(mood string) bool {
	return contains(LightingMoods, mood)
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
