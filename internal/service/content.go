package service

import (
	"context"
	"strconv"
	"strings"

	"inza-store/internal/config"

	"go.uber.org/zap"
)

// GenerationOptions describes the product listing to generate content for.
type GenerationOptions struct {
	ProductName string `json:"product_name" validate:"required"`
	Category    string `json:"category,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Language    string `json:"language,omitempty"`
	Length      string `json:"length,omitempty"` // short, medium, long
	Tone        string `json:"tone,omitempty"`   // professional, casual, luxury, technical
}

// GeneratedContent is the structured listing content produced by a
// generator.
type GeneratedContent struct {
	Description       string            `json:"description"`
	Features          []string          `json:"features"`
	Specifications    map[string]string `json:"specifications"`
	SuggestedPrice    int64             `json:"suggested_price,omitempty"`
	SuggestedCategory string            `json:"suggested_category,omitempty"`
	ImagePrompt       string            `json:"image_prompt,omitempty"`
}

// ContentGenerator produces listing content for a product. Implementations
// are swapped at construction time; callers never know which one they hold.
type ContentGenerator interface {
	Generate(ctx context.Context, options GenerationOptions) (*GeneratedContent, error)
}

// NewContentGenerator selects the generator implementation from config:
// the Gemini-backed one when a usable API key is configured, the
// deterministic mock otherwise.
func NewContentGenerator(cfg config.AIConfig, logger *zap.Logger) ContentGenerator {
	if cfg.UseMock || len(cfg.GeminiAPIKey) < 10 {
		logger.Info("Content generation running in mock mode")
		return NewMockContentGenerator()
	}
	return NewGeminiContentGenerator(cfg.GeminiAPIKey)
}

// Labels of the line-oriented response format both generators produce.
const (
	labelDescription    = "DESCRIPTION:"
	labelFeatures       = "FEATURES:"
	labelSpecifications = "SPECIFICATIONS:"
	labelSuggestedPrice = "SUGGESTED_PRICE:"
	labelCategory       = "CATEGORY:"
	labelImagePrompt    = "IMAGE_PROMPT:"
)

// parseGeneratedContent converts the labeled-line model output into
// structured content. Unknown lines are ignored; a suggested category equal
// to the requested one is dropped.
func parseGeneratedContent(text string, options GenerationOptions) *GeneratedContent {
	result := &GeneratedContent{
		Features:       []string{},
		Specifications: map[string]string{},
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, labelDescription):
			result.Description = strings.TrimSpace(strings.TrimPrefix(line, labelDescription))
		case strings.HasPrefix(line, labelFeatures):
			raw := strings.TrimSpace(strings.TrimPrefix(line, labelFeatures))
			for _, f := range strings.Split(raw, "|") {
				if f = strings.TrimSpace(f); f != "" {
					result.Features = append(result.Features, f)
				}
			}
		case strings.HasPrefix(line, labelSpecifications):
			raw := strings.TrimSpace(strings.TrimPrefix(line, labelSpecifications))
			for _, spec := range strings.Split(raw, "|") {
				key, value, ok := strings.Cut(spec, ":")
				if ok && strings.TrimSpace(key) != "" && strings.TrimSpace(value) != "" {
					result.Specifications[strings.TrimSpace(key)] = strings.TrimSpace(value)
				}
			}
		case strings.HasPrefix(line, labelSuggestedPrice):
			raw := strings.TrimSpace(strings.TrimPrefix(line, labelSuggestedPrice))
			if price, err := strconv.ParseInt(raw, 10, 64); err == nil {
				result.SuggestedPrice = price
			}
		case strings.HasPrefix(line, labelCategory):
			category := strings.TrimSpace(strings.TrimPrefix(line, labelCategory))
			if category != "" && category != options.Category {
				result.SuggestedCategory = category
			}
		case strings.HasPrefix(line, labelImagePrompt):
			result.ImagePrompt = strings.TrimSpace(strings.TrimPrefix(line, labelImagePrompt))
		}
	}

	return result
}

// buildPrompt renders the generation instruction sent to the model.
func buildPrompt(options GenerationOptions) string {
	length := options.Length
	if length == "" {
		length = "medium"
	}
	tone := options.Tone
	if tone == "" {
		tone = "professional"
	}
	language := options.Language
	if language == "" {
		language = "French"
	}

	var b strings.Builder
	b.WriteString("Generate a " + length + " " + tone + " product description in " + language)
	b.WriteString(" for the product: \"" + options.ProductName + "\"")
	if options.Category != "" {
		b.WriteString(" in the " + options.Category + " category")
	}
	if options.Brand != "" {
		b.WriteString(" by " + options.Brand)
	}
	b.WriteString("\n\nStructure the answer exactly as:\n")
	b.WriteString(labelDescription + " [engaging main description]\n")
	b.WriteString(labelFeatures + " [3-5 key features separated by |]\n")
	b.WriteString(labelSpecifications + " [key:value pairs separated by |]\n")
	b.WriteString(labelSuggestedPrice + " [suggested price, digits only]\n")
	b.WriteString(labelCategory + " [suggested category if different]\n")
	b.WriteString(labelImagePrompt + " [detailed English prompt to generate a product image]")

	return b.String()
}
