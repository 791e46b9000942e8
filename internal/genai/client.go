// Package genai is a lightweight facade over the Gemini generateContent API.
// It is the session's only network dependency: photo enhancement, scene and
// style suggestions, marketing copy, campaign plans, and social-post ads all
// go through this client.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-2.5-flash-image-preview"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client issues single-shot generateContent calls. All operations are
// idempotent to retry; the client keeps no state between calls and enforces
// no timeout beyond the underlying transport's.
type Client struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Image is an inline image payload: raw bytes plus the declared media type.
type Image struct {
	Data     []byte
	MIMEType string
}

// GenerationError reports that the model declined to produce the requested
// output (for example a safety refusal), as opposed to a transport failure.
type GenerationError struct {
	Op      string
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("genai: %s: %s", e.Op, e.Message)
}

// NewClient constructs a Gemini client with sane defaults. Callers may
// provide a nil HTTP client; a reusable one with a generous timeout is
// created in that case.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	textModel := strings.TrimSpace(opts.TextModel)
	if textModel == "" {
		textModel = defaultTextModel
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = defaultImageModel
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		textModel:  textModel,
		imageModel: imageModel,
		httpClient: client,
		logger:     opts.Logger,
	}
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature        float64  `json:"temperature,omitempty"`
	CandidateCount     int      `json:"candidateCount,omitempty"`
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

func imagePart(img Image) geminiPart {
	return geminiPart{InlineData: &geminiInlineData{
		MimeType: img.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	}}
}

func (c *Client) invoke(ctx context.Context, model string, payload geminiGenerateContentRequest) (*geminiGenerateContentResponse, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return nil, fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var out geminiGenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	return &out, nil
}

// firstImage scans the candidates for an inline image part and returns its
// decoded bytes, or nil when the response carries none.
func firstImage(resp *geminiGenerateContentResponse) []byte {
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil || len(data) == 0 {
				continue
			}
			return data
		}
	}
	return nil
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *geminiGenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				b.WriteString(part.Text)
			}
		}
		break
	}
	return strings.TrimSpace(b.String())
}

// stripCodeFence removes a surrounding markdown code fence, which some model
// revisions wrap JSON payloads in despite the response mime type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// EnhanceImage submits one product photo with the resolved instruction and an
// optional reference background. It returns the generated image bytes, or a
// GenerationError when the model responds without an image.
func (c *Client) EnhanceImage(ctx context.Context, img Image, instruction string, reference *Image) ([]byte, error) {
	parts := []geminiPart{imagePart(img)}
	if reference != nil {
		parts = append(parts, imagePart(*reference))
	}
	parts = append(parts, geminiPart{Text: buildEnhancePrompt(instruction, reference != nil)})

	resp, err := c.invoke(ctx, c.imageModel, geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	})
	if err != nil {
		return nil, err
	}
	data := firstImage(resp)
	if len(data) == 0 {
		c.logger.Warn().Str("model", c.imageModel).Msg("genai: enhance returned no image part")
		return nil, &GenerationError{Op: "enhance", Message: "the model did not return an image; it may have declined the request"}
	}
	c.logger.Debug().Str("model", c.imageModel).Int("bytes", len(data)).Msg("genai: enhanced product photo")
	return data, nil
}

// SocialPost renders a social-media ad: the product photo restyled with the
// promotional text composited in the requested design style.
func (c *Client) SocialPost(ctx context.Context, img Image, promoText, style string) ([]byte, error) {
	parts := []geminiPart{
		imagePart(img),
		{Text: buildSocialPostPrompt(promoText, style)},
	}
	resp, err := c.invoke(ctx, c.imageModel, geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	})
	if err != nil {
		return nil, err
	}
	data := firstImage(resp)
	if len(data) == 0 {
		c.logger.Warn().Str("model", c.imageModel).Msg("genai: social post returned no image part")
		return nil, &GenerationError{Op: "social post", Message: "the model did not return an image; it may have declined the request"}
	}
	return data, nil
}
