package genai

import (
	"fmt"
	"strings"

	"github.com/Abhinandangithub01/PhotoSet/internal/catalog"
)

const sceneSuggestionPrompt = `As a creative director for product photography, look at this product and describe, in one or two vivid sentences, an original scene that would showcase it beautifully. Describe only the scene itself (setting, surfaces, lighting, atmosphere), not the product. Answer with the description alone, no preamble.`

const marketingCopyPrompt = `You are a senior social media copywriter. Study this product photo and write marketing copy for it.

Return ONLY a valid JSON object with the keys:
- "headlines": 3 short, punchy headline options
- "body": 2 body copy options of one to two sentences each
- "hashtags": 8 relevant hashtags, each starting with '#'`

func buildEnhancePrompt(instruction string, hasReference bool) string {
	var b strings.Builder
	b.WriteString(`You are an expert AI photo editor specialized in product photography enhancement.
The first image is the user's product photo and the product must remain the visual focal point.
`)
	if hasReference {
		b.WriteString(`The second image is a reference background; recompose the product into that scene.
`)
	}
	b.WriteString(`Your task is to generate a professional-style product photoshoot image by:
1. Seamlessly blending the product into the scene described as: "` + instruction + `"
2. Enhancing the product's colors and details to make it pop without altering its natural appearance.
3. Maintaining high resolution suitable for e-commerce presentation and social media.
4. Composing the photo with visual balance, leaving clean space around the product for marketing overlays.
5. Using a realistic photographic style unless the description requests a more artistic or stylized look.
Generate a cohesive, market-ready product photo. Do not add any text or watermark to the generated image.`)
	return b.String()
}

func buildSocialPostPrompt(promoText, style string) string {
	return fmt.Sprintf(`You are a social media ad designer. Create a square social-media ad image from this product photo.
Design style: %q.
Composite the promotional text %q into the image with typography matching the design style.
Keep the product clearly visible and the text legible at feed size. Return the result as an image.`, style, promoText)
}

func buildRecommendStylePrompt() string {
	return fmt.Sprintf(`As a professional product photographer, analyze the following product image. Based on the product's characteristics (type, color, texture, likely target audience), suggest the optimal background and lighting.

Choose one background theme from this list: %s.
Choose one lighting mood from this list: %s.

Provide a brief reasoning for your choices, explaining why they would make the product more appealing for e-commerce.

Return ONLY a valid JSON object with the keys "backgroundTheme", "lightingMood", and "reasoning".`,
		strings.Join(catalog.BackgroundThemes, ", "),
		strings.Join(catalog.LightingMoods, ", "))
}

func buildCampaignPlanPrompt(goal string) string {
	return fmt.Sprintf(`You are a social media campaign strategist. Plan a 7-day posting campaign for the product in this photo. The campaign objective is: %q.

Return ONLY a valid JSON array of exactly 7 objects, one per day in order, each with the keys:
- "day": the day number (1 through 7)
- "theme": a short name for that day's angle
- "caption": a ready-to-post caption
- "hashtags": 4 to 6 hashtags, each starting with '#'
- "callToAction": one clear call to action`, goal)
}
