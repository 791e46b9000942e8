package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func productImage() Image {
	return Image{Data: []byte("product"), MIMEType: "image/png"}
}

func TestSuggestSceneReturnsText(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, textResponse("On a sunlit marble shelf beside eucalyptus sprigs")), nil
	})

	got, err := client.SuggestScene(context.Background(), productImage())
	if err != nil {
		t.Fatalf("SuggestScene returned error: %v", err)
	}
	if got != "On a sunlit marble shelf beside eucalyptus sprigs" {
		t.Fatalf("SuggestScene = %q", got)
	}
}

func TestSuggestSceneEmptyIsGenerationError(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
	})

	_, err := client.SuggestScene(context.Background(), productImage())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}

func TestRecommendStyleUsesJSONResponseMode(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		return jsonResponse(http.StatusOK, textResponse(`{"backgroundTheme":"A minimalist concrete slab","lightingMood":"Cool, moody blue tones","reasoning":"matches the product"}`)), nil
	})

	rec, err := client.RecommendStyle(context.Background(), productImage())
	if err != nil {
		t.Fatalf("RecommendStyle returned error: %v", err)
	}
	if rec.BackgroundTheme != "A minimalist concrete slab" || rec.LightingMood != "Cool, moody blue tones" {
		t.Fatalf("recommendation = %+v", rec)
	}
	if rec.Reasoning == "" {
		t.Fatal("recommendation lost the reasoning")
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.ResponseMimeType != "application/json" {
		t.Fatalf("generation config = %+v, want application/json response mode", captured.GenerationConfig)
	}
}

func TestRecommendStyleToleratesOffCatalogValues(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, textResponse(`{"backgroundTheme":"On the moon","lightingMood":"Earthshine","reasoning":"bold"}`)), nil
	})

	rec, err := client.RecommendStyle(context.Background(), productImage())
	if err != nil {
		t.Fatalf("RecommendStyle returned error: %v", err)
	}
	if rec.BackgroundTheme != "On the moon" || rec.LightingMood != "Earthshine" {
		t.Fatalf("off-catalog values were altered: %+v", rec)
	}
}

func TestRecommendStyleStripsCodeFence(t *testing.T) {
	fenced := "```json\n{\"backgroundTheme\":\"A minimalist concrete slab\",\"lightingMood\":\"Cool, moody blue tones\",\"reasoning\":\"r\"}\n```"
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, textResponse(fenced)), nil
	})

	rec, err := client.RecommendStyle(context.Background(), productImage())
	if err != nil {
		t.Fatalf("RecommendStyle returned error: %v", err)
	}
	if rec.BackgroundTheme != "A minimalist concrete slab" {
		t.Fatalf("recommendation = %+v", rec)
	}
}

func TestGenerateMarketingCopy(t *testing.T) {
	payload := `{"headlines":["Shine brighter"],"body":["Our best yet."],"hashtags":["#new"]}`
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, textResponse(payload)), nil
	})

	got, err := client.GenerateMarketingCopy(context.Background(), productImage())
	if err != nil {
		t.Fatalf("GenerateMarketingCopy returned error: %v", err)
	}
	if len(got.Headlines) != 1 || got.Headlines[0] != "Shine brighter" {
		t.Fatalf("headlines = %v", got.Headlines)
	}
	if len(got.Body) != 1 || len(got.Hashtags) != 1 {
		t.Fatalf("copy = %+v", got)
	}
}

func TestGenerateMarketingCopyRejectsEmptyPayload(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, textResponse(`{"headlines":[],"body":[],"hashtags":[]}`)), nil
	})

	_, err := client.GenerateMarketingCopy(context.Background(), productImage())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}

func campaignPayload(days int) string {
	entries := make([]string, days)
	for i := range entries {
		entries[i] = `{"theme":"t","caption":"c","hashtags":["#h"],"callToAction":"cta"}`
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func TestGenerateCampaignPlanSevenDays(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		return jsonResponse(http.StatusOK, textResponse(campaignPayload(7))), nil
	})

	plan, err := client.GenerateCampaignPlan(context.Background(), productImage(), "Run a flash sale")
	if err != nil {
		t.Fatalf("GenerateCampaignPlan returned error: %v", err)
	}
	if len(plan) != 7 {
		t.Fatalf("plan has %d days, want 7", len(plan))
	}
	for i, day := range plan {
		if day.Day != i+1 {
			t.Fatalf("day %d numbered %d, want sequential fill", i, day.Day)
		}
	}
	if prompt := captured.Contents[0].Parts[1].Text; !strings.Contains(prompt, "Run a flash sale") {
		t.Fatalf("prompt = %q, want the campaign goal embedded", prompt)
	}
}

func TestGenerateCampaignPlanWrongLengthFails(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, textResponse(campaignPayload(5))), nil
	})

	_, err := client.GenerateCampaignPlan(context.Background(), productImage(), "Launch a new product")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if !strings.Contains(genErr.Message, "7") {
		t.Fatalf("message = %q, want the expected length named", genErr.Message)
	}
}
