package service

import (
	"context"
	"hash/fnv"
	"strings"
)

// mockContentGenerator serves canned listing content without any network
// call. The response is picked deterministically from the product name so
// repeated requests for the same product agree.
type mockContentGenerator struct {
	responses []string
}

// NewMockContentGenerator creates the offline ContentGenerator used in
// development and tests.
func NewMockContentGenerator() ContentGenerator {
	return &mockContentGenerator{
		responses: []string{
			labelDescription + ` {name} - Produit haut de gamme avec des caractéristiques exceptionnelles.
` + labelFeatures + ` Qualité supérieure | Design moderne | Performance optimale | Facile à utiliser
` + labelSpecifications + ` Matériau:Premium | Dimensions:Standard | Poids:Léger
` + labelSuggestedPrice + ` 299000
` + labelCategory + ` {category}
` + labelImagePrompt + ` Modern {name} product with sleek design and premium materials`,

			labelDescription + ` {name} - Solution innovante pour vos besoins quotidiens.
` + labelFeatures + ` Technologie avancée | Économique | Écologique | Garantie incluse
` + labelSpecifications + ` Durabilité:Haute | Certification:CE | Maintenance:Facile
` + labelSuggestedPrice + ` 149000
` + labelCategory + ` {category}
` + labelImagePrompt + ` Sustainable {name} with eco-friendly design and modern aesthetics`,
		},
	}
}

func (g *mockContentGenerator) Generate(_ context.Context, options GenerationOptions) (*GeneratedContent, error) {
	h := fnv.New32a()
	h.Write([]byte(options.ProductName))
	response := g.responses[h.Sum32()%uint32(len(g.responses))]

	category := options.Category
	if category == "" {
		category = "Général"
	}
	response = strings.ReplaceAll(response, "{name}", options.ProductName)
	response = strings.ReplaceAll(response, "{category}", category)

	return parseGeneratedContent(response, options), nil
}
