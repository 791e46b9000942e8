package style

import (
	"testing"

	"github.com/Abhinandangithub01/PhotoSet/internal/catalog"
)

func TestDefaultSelectsFirstPresets(t *testing.T) {
	cfg := Default()
	if cfg.BackgroundTheme != catalog.DefaultBackgroundTheme() {
		t.Fatalf("default theme = %q, want first preset", cfg.BackgroundTheme)
	}
	if cfg.LightingMood != catalog.DefaultLightingMood() {
		t.Fatalf("default mood = %q, want first preset", cfg.LightingMood)
	}
	if cfg.CustomPrompt != "" {
		t.Fatalf("default custom prompt = %q, want empty", cfg.CustomPrompt)
	}
}

func TestResolvePresetCombination(t *testing.T) {
	cfg := Config{
		BackgroundTheme: "A minimalist concrete slab",
		LightingMood:    "Cool, moody blue tones",
	}
	got := Resolve(cfg, nil)
	want := "A minimalist concrete slab with Cool, moody blue tones lighting"
	if got.Instruction != want {
		t.Fatalf("instruction = %q, want %q", got.Instruction, want)
	}
	if got.Reference != nil {
		t.Fatalf("preset resolution produced a reference image: %+v", got.Reference)
	}
}

func TestResolveCustomPromptSupersedesSelectors(t *testing.T) {
	cfg := Config{
		BackgroundTheme: "A minimalist concrete slab",
		LightingMood:    "Cool, moody blue tones",
		CustomPrompt:    "  floating on a mirror lake at dawn  ",
	}
	backgrounds := []CustomBackground{{Name: "Beach", Data: []byte("x")}}

	got := Resolve(cfg, backgrounds)
	if got.Instruction != "floating on a mirror lake at dawn" {
		t.Fatalf("instruction = %q, want trimmed custom prompt", got.Instruction)
	}
	if got.Reference != nil {
		t.Fatal("custom prompt resolution must not attach a reference image")
	}
}

func TestResolveWhitespacePromptFallsThrough(t *testing.T) {
	cfg := Config{
		BackgroundTheme: catalog.DefaultBackgroundTheme(),
		LightingMood:    catalog.DefaultLightingMood(),
		CustomPrompt:    "   \t ",
	}
	got := Resolve(cfg, nil)
	want := catalog.DefaultBackgroundTheme() + " with " + catalog.DefaultLightingMood() + " lighting"
	if got.Instruction != want {
		t.Fatalf("instruction = %q, want selector combination %q", got.Instruction, want)
	}
}

func TestResolveCustomBackground(t *testing.T) {
	beach := CustomBackground{
		ID:       "bg-1",
		Name:     "Beach",
		MIMEType: "image/jpeg",
		Data:     []byte("beach-bytes"),
	}
	cfg := Config{
		BackgroundTheme: catalog.CustomThemeName("Beach"),
		LightingMood:    "Warm, golden hour sunlight",
	}

	got := Resolve(cfg, []CustomBackground{beach})
	if got.Instruction != "Warm, golden hour sunlight" {
		t.Fatalf("instruction = %q, want lighting mood alone", got.Instruction)
	}
	if got.Reference == nil {
		t.Fatal("custom theme resolution lost the reference image")
	}
	if got.Reference.Name != "Beach" || string(got.Reference.Data) != "beach-bytes" {
		t.Fatalf("reference = %+v, want the Beach background", got.Reference)
	}
}

func TestResolveUnknownCustomNameDegradesToNoReference(t *testing.T) {
	cfg := Config{
		BackgroundTheme: catalog.CustomThemeName("Gone"),
		LightingMood:    "Warm, golden hour sunlight",
	}
	got := Resolve(cfg, []CustomBackground{{Name: "Beach"}})
	if got.Instruction != "Warm, golden hour sunlight" {
		t.Fatalf("instruction = %q, want lighting mood alone", got.Instruction)
	}
	if got.Reference != nil {
		t.Fatalf("reference = %+v, want nil for an unknown name", got.Reference)
	}
}
