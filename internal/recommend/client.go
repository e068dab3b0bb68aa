// Package recommend asks a language model for a single complementary product
// suggestion after an add-to-cart. The call is strictly best-effort: any
// failure comes back as a user-visible string, never as an error, because a
// missing suggestion must not break the shopping flow.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com"
	model          = "gpt-4"
)

// Recommender produces a short outfit suggestion for a just-added product.
type Recommender interface {
	Recommend(ctx context.Context, product *models.Product, catalog []*models.Product) string
}

type openAIRecommender struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewOpenAIRecommender builds a Recommender backed by the OpenAI chat
// completions API. baseURL may be empty for the production endpoint.
func NewOpenAIRecommender(apiKey, baseURL string) Recommender {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &openAIRecommender{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (r *openAIRecommender) Recommend(ctx context.Context, product *models.Product, catalog []*models.Product) string {
	payload := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(product, catalog)}},
		Temperature: 0.7,
		MaxTokens:   150,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return recommendationUnavailable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return recommendationUnavailable(err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return recommendationUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return recommendationUnavailable(fmt.Errorf("status %d: %s", resp.StatusCode, string(b)))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return recommendationUnavailable(err)
	}
	if len(result.Choices) == 0 {
		return recommendationUnavailable(fmt.Errorf("empty choices"))
	}
	return strings.TrimSpace(result.Choices[0].Message.Content)
}

// buildPrompt mirrors the storefront's original advisor prompt: recommend one
// product from the catalog that pairs with the selected one, never the
// selected product itself.
func buildPrompt(product *models.Product, catalog []*models.Product) string {
	var sb strings.Builder
	sb.WriteString("Eres un asesor de moda para una tienda online de ropa.\n")
	sb.WriteString("Un cliente acaba de agregar el siguiente producto a su carrito:\n")
	fmt.Fprintf(&sb, "- Nombre: %s\n- Descripción: %s\n- Categoría: %s\n\n", product.Name, product.Description, product.Category)
	sb.WriteString("Tu tarea es recomendar un único producto adicional del siguiente catálogo que combine con este producto y mejore su look. Solo debes recomendar productos diferentes al seleccionado.\n\nCatálogo:\n")
	for _, p := range catalog {
		if p.Name == product.Name {
			continue
		}
		fmt.Fprintf(&sb, "- %s (%s): %s\n", p.Name, p.Category, p.Description)
	}
	sb.WriteString("\nGenera una recomendación amistosa, breve y persuasiva con este formato:\n\n")
	sb.WriteString("¡Excelente elección! 👌\nPara completar tu look, te sugerimos agregar [nombre del producto recomendado], que combina a la perfección con lo que ya elegiste.\n")
	return sb.String()
}

func recommendationUnavailable(err error) string {
	return fmt.Sprintf("⚠️ Error al generar recomendación: %v", err)
}

// NoopRecommender is used when no API key is configured; it suggests nothing.
type NoopRecommender struct{}

func (NoopRecommender) Recommend(context.Context, *models.Product, []*models.Product) string {
	return ""
}
