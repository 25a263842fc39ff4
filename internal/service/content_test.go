package service

import (
	"context"
	"testing"

	"inza-store/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseGeneratedContent(t *testing.T) {
	text := `DESCRIPTION: Un casque audio immersif.
FEATURES: Réduction de bruit | Bluetooth 5.3 | 30h d'autonomie
SPECIFICATIONS: Poids:250g | Couleur:Noir
SUGGESTED_PRICE: 85000
CATEGORY: Audio
IMAGE_PROMPT: Studio photo of black wireless headphones
some line the model added on its own`

	content := parseGeneratedContent(text, GenerationOptions{ProductName: "Casque X", Category: "Accessoires"})

	assert.Equal(t, "Un casque audio immersif.", content.Description)
	assert.Equal(t, []string{"Réduction de bruit", "Bluetooth 5.3", "30h d'autonomie"}, content.Features)
	assert.Equal(t, map[string]string{"Poids": "250g", "Couleur": "Noir"}, content.Specifications)
	assert.Equal(t, int64(85000), content.SuggestedPrice)
	assert.Equal(t, "Audio", content.SuggestedCategory)
	assert.Equal(t, "Studio photo of black wireless headphones", content.ImagePrompt)
}

func TestParseGeneratedContent_DropsMatchingCategoryAndBadPrice(t *testing.T) {
	text := `DESCRIPTION: Produit.
SUGGESTED_PRICE: environ 50000
CATEGORY: Audio`

	content := parseGeneratedContent(text, GenerationOptions{ProductName: "Casque X", Category: "Audio"})

	assert.Empty(t, content.SuggestedCategory, "a category equal to the requested one is no suggestion")
	assert.Zero(t, content.SuggestedPrice, "non-numeric price is ignored")
	assert.Empty(t, content.Features)
	assert.Empty(t, content.Specifications)
}

func TestMockGenerator_IsDeterministicPerProductName(t *testing.T) {
	generator := NewMockContentGenerator()
	ctx := context.Background()

	options := GenerationOptions{ProductName: "iPhone 15", Category: "Téléphones"}

	first, err := generator.Generate(ctx, options)
	require.NoError(t, err)
	second, err := generator.Generate(ctx, options)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first.Description, "iPhone 15")
	assert.NotEmpty(t, first.Features)
	assert.NotEmpty(t, first.Specifications)
	assert.NotZero(t, first.SuggestedPrice)
	assert.Contains(t, first.ImagePrompt, "iPhone 15")
}

func TestMockGenerator_HighHashNamesStayInRange(t *testing.T) {
	generator := NewMockContentGenerator()
	ctx := context.Background()

	// Names whose FNV-32a hash has the sign bit set; indexing must stay
	// in bounds regardless of the platform's int width.
	for _, name := range []string{"Chargeur rapide", "Clavier mécanique", "Lampe LED"} {
		content, err := generator.Generate(ctx, GenerationOptions{ProductName: name})
		require.NoError(t, err)
		assert.Contains(t, content.Description, name)
	}
}

func TestMockGenerator_FillsDefaultCategory(t *testing.T) {
	generator := NewMockContentGenerator()

	content, err := generator.Generate(context.Background(), GenerationOptions{ProductName: "Tablette"})
	require.NoError(t, err)

	assert.Equal(t, "Général", content.SuggestedCategory)
}

func TestNewContentGenerator_SelectsImplementationFromConfig(t *testing.T) {
	logger := zap.NewNop()

	mock := NewContentGenerator(config.AIConfig{UseMock: true}, logger)
	_, ok := mock.(*mockContentGenerator)
	assert.True(t, ok, "mock mode must yield the offline generator")

	short := NewContentGenerator(config.AIConfig{GeminiAPIKey: "abc"}, logger)
	_, ok = short.(*mockContentGenerator)
	assert.True(t, ok, "an implausibly short key must fall back to the offline generator")

	real := NewContentGenerator(config.AIConfig{GeminiAPIKey: "a-plausible-looking-key"}, logger)
	_, ok = real.(*geminiContentGenerator)
	assert.True(t, ok, "a configured key must yield the Gemini generator")
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(GenerationOptions{
		ProductName: "Casque X",
		Category:    "Audio",
		Brand:       "JBL",
		Tone:        "luxury",
	})

	assert.Contains(t, prompt, `"Casque X"`)
	assert.Contains(t, prompt, "in the Audio category")
	assert.Contains(t, prompt, "by JBL")
	assert.Contains(t, prompt, "luxury")
	assert.Contains(t, prompt, "medium", "length defaults to medium")
	assert.Contains(t, prompt, "French", "language defaults to French")
	assert.Contains(t, prompt, labelDescription)
	assert.Contains(t, prompt, labelImagePrompt)
}
