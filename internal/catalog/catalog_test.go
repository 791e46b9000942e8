package catalog

import "testing"

func TestCustomThemeRoundTrip(t *testing.T) {
	theme := CustomThemeName("Marble Counter")
	if theme != "Custom: Marble Counter" {
		t.Fatalf("CustomThemeName = %q", theme)
	}
	if !IsCustomTheme(theme) {
		t.Fatalf("IsCustomTheme(%q) = false", theme)
	}
	base, ok := CustomThemeBase(theme)
	if !ok || base != "Marble Counter" {
		t.Fatalf("CustomThemeBase(%q) = %q, %v", theme, base, ok)
	}
}

func TestCustomThemeBaseRejectsPresets(t *testing.T) {
	for _, theme := range BackgroundThemes {
		if IsCustomTheme(theme) {
			t.Fatalf("preset %q misread as custom", theme)
		}
		if _, ok := CustomThemeBase(theme); ok {
			t.Fatalf("CustomThemeBase accepted preset %q", theme)
		}
	}
}

func TestDefaultsAreFirstEntries(t *testing.T) {
	if got := DefaultBackgroundTheme(); got != BackgroundThemes[0] {
		t.Fatalf("DefaultBackgroundTheme = %q", got)
	}
	if got := DefaultLightingMood(); got != LightingMoods[0] {
		t.Fatalf("DefaultLightingMood = %q", got)
	}
	if got := DefaultCampaignGoal(); got != CampaignGoals[0] {
		t.Fatalf("DefaultCampaignGoal = %q", got)
	}
}

func TestContainsMembership(t *testing.T) {
	if !ContainsBackgroundTheme(BackgroundThemes[2]) {
		t.Fatal("preset theme not recognized")
	}
	if ContainsBackgroundTheme("a volcano") {
		t.Fatal("freeform theme recognized as preset")
	}
	if !ContainsLightingMood(LightingMoods[3]) {
		t.Fatal("preset mood not recognized")
	}
	if ContainsLightingMood("strobe") {
		t.Fatal("freeform mood recognized as preset")
	}
}
