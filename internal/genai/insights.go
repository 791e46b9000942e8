package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abhinandangithub01/PhotoSet/internal/catalog"
)

// StyleRecommendation is the model's suggested preset pairing for a product
// photo, with the reasoning behind it.
type StyleRecommendation struct {
	BackgroundTheme string `json:"backgroundTheme"`
	LightingMood    string `json:"lightingMood"`
	Reasoning       string `json:"reasoning"`
}

// MarketingCopy is a set of ready-to-paste text fragments for one product.
type MarketingCopy struct {
	Headlines []string `json:"headlines"`
	Body      []string `json:"body"`
	Hashtags  []string `json:"hashtags"`
}

// CampaignDay is one entry of a 7-day posting plan.
type CampaignDay struct {
	Day          int      `json:"day"`
	Theme        string   `json:"theme"`
	Caption      string   `json:"caption"`
	Hashtags     []string `json:"hashtags"`
	CallToAction string   `json:"callToAction"`
}

// campaignPlanDays is the fixed length of a generated campaign plan.
const campaignPlanDays = 7

func (c *Client) invokeJSON(ctx context.Context, prompt string, img Image, out any) error {
	resp, err := c.invoke(ctx, c.textModel, geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{imagePart(img), {Text: prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.5,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return err
	}
	text := stripCodeFence(collectText(resp))
	if text == "" {
		return &GenerationError{Op: "analyze", Message: "the model returned an empty response"}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode model payload: %w", err)
	}
	return nil
}

// SuggestScene asks the model for a freeform scene description tailored to
// the product, suitable as a custom style prompt.
func (c *Client) SuggestScene(ctx context.Context, img Image) (string, error) {
	resp, err := c.invoke(ctx, c.textModel, geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{imagePart(img), {Text: sceneSuggestionPrompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:    0.8,
			CandidateCount: 1,
		},
	})
	if err != nil {
		return "", err
	}
	text := collectText(resp)
	if text == "" {
		return "", &GenerationError{Op: "suggest scene", Message: "the model returned an empty suggestion"}
	}
	return text, nil
}

// RecommendStyle asks the model to pick a preset background and lighting for
// the product. Values outside the known catalogs are tolerated: they are
// logged and passed through unchanged.
func (c *Client) RecommendStyle(ctx context.Context, img Image) (StyleRecommendation, error) {
	var rec StyleRecommendation
	if err := c.invokeJSON(ctx, buildRecommendStylePrompt(), img, &rec); err != nil {
		return StyleRecommendation{}, err
	}
	if !catalog.ContainsBackgroundTheme(rec.BackgroundTheme) || !catalog.ContainsLightingMood(rec.LightingMood) {
		c.logger.Warn().
			Str("background_theme", rec.BackgroundTheme).
			Str("lighting_mood", rec.LightingMood).
			Msg("genai: recommendation outside the preset catalogs")
	}
	return rec, nil
}

// GenerateMarketingCopy produces headlines, body copy, and hashtags for the
// product photo.
func (c *Client) GenerateMarketingCopy(ctx context.Context, img Image) (MarketingCopy, error) {
	var copyOut MarketingCopy
	if err := c.invokeJSON(ctx, marketingCopyPrompt, img, &copyOut); err != nil {
		return MarketingCopy{}, err
	}
	if len(copyOut.Headlines) == 0 && len(copyOut.Body) == 0 && len(copyOut.Hashtags) == 0 {
		return MarketingCopy{}, &GenerationError{Op: "marketing copy", Message: "the model returned no usable copy"}
	}
	return copyOut, nil
}

// GenerateCampaignPlan produces the ordered 7-day posting plan for the given
// campaign goal. A plan of any other length is treated as a failure.
func (c *Client) GenerateCampaignPlan(ctx context.Context, img Image, goal string) ([]CampaignDay, error) {
	var plan []CampaignDay
	if err := c.invokeJSON(ctx, buildCampaignPlanPrompt(goal), img, &plan); err != nil {
		return nil, err
	}
	if len(plan) != campaignPlanDays {
		return nil, &GenerationError{
			Op:      "campaign plan",
			Message: fmt.Sprintf("expected %d daily entries, got %d", campaignPlanDays, len(plan)),
		}
	}
	for i := range plan {
		if plan[i].Day == 0 {
			plan[i].Day = i + 1
		}
	}
	return plan, nil
}
